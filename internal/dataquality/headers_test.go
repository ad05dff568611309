package dataquality

import "testing"

// TestMapHeader tests source header resolution.
//
// WHY: Header renaming decides which cell lands in which canonical column.
// The explicit mapping must win over the fallback, and unknown headers must
// resolve deterministically so repeated imports produce identical schemas.
func TestMapHeader(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("uses explicit mapping when present", func(t *testing.T) {
		got := MapHeader("Price per Unit EUR", cfg)

		if got.Canonical != "price_per_unit_eur" {
			t.Errorf("Canonical = %q, want %q", got.Canonical, "price_per_unit_eur")
		}
		if got.Origin != HeaderMapped {
			t.Errorf("Origin = %q, want %q", got.Origin, HeaderMapped)
		}
	})

	t.Run("derives snake_case for unknown headers", func(t *testing.T) {
		cases := []struct {
			input string
			want  string
		}{
			{"Settlement Date", "settlement_date"},
			{"  Account-Number  ", "account_number"},
			{"Fees/Commission", "fees_commission"},
			{"notes", "notes"},
		}

		for _, tc := range cases {
			got := MapHeader(tc.input, cfg)
			if got.Canonical != tc.want {
				t.Errorf("MapHeader(%q).Canonical = %q, want %q", tc.input, got.Canonical, tc.want)
			}
			if got.Origin != HeaderDerived {
				t.Errorf("MapHeader(%q).Origin = %q, want %q", tc.input, got.Origin, HeaderDerived)
			}
		}
	})

	t.Run("explicit mapping is case sensitive", func(t *testing.T) {
		// "ticker" is not a mapping key; it falls through to the derived path
		// and still lands on the same canonical name.
		got := MapHeader("ticker", cfg)

		if got.Canonical != "ticker" {
			t.Errorf("Canonical = %q, want %q", got.Canonical, "ticker")
		}
		if got.Origin != HeaderDerived {
			t.Errorf("Origin = %q, want %q", got.Origin, HeaderDerived)
		}
	})
}
