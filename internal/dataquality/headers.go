package dataquality

import "strings"

// HeaderOrigin reports whether a canonical header came from the explicit
// mapping table or was derived mechanically from an unknown source header.
type HeaderOrigin string

const (
	// HeaderMapped means the source header was found in Config.ColumnMapping.
	HeaderMapped HeaderOrigin = "mapped"
	// HeaderDerived means the canonical name was derived via the snake_case
	// fallback transform.
	HeaderDerived HeaderOrigin = "derived"
)

// MappedHeader is the result of resolving one source header: the canonical
// name plus how it was obtained, so header handling stays auditable.
type MappedHeader struct {
	Source    string
	Canonical string
	Origin    HeaderOrigin
}

// MapHeader resolves a single source header against the configured mapping.
// Unknown headers deterministically fall back to a lowercase snake_case
// transform so any input schema yields a stable canonical header set.
func MapHeader(header string, cfg Config) MappedHeader {
	if canonical, ok := cfg.ColumnMapping[header]; ok {
		return MappedHeader{Source: header, Canonical: canonical, Origin: HeaderMapped}
	}
	return MappedHeader{Source: header, Canonical: toSnakeCase(header), Origin: HeaderDerived}
}

// toSnakeCase trims the header and replaces spaces, hyphens and slashes with
// underscores before lowercasing.
func toSnakeCase(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(" ", "_", "-", "_", "/", "_")
	return strings.ToLower(replacer.Replace(s))
}
