package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// Defaults for the transaction source. The worksheet name stays fixed to
// "Transactions" unless overridden because the maintained workbook uses that
// tab name.
const (
	DefaultWorkbookName  = "Transactions"
	DefaultWorksheetName = "Transactions"

	// workbookJSONPath is the optional JSON fallback for the workbook name:
	// {"workbook_name": "..."}.
	workbookJSONPath = "config/workbook.json"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	CORS         CORSConfig
	Source       SourceConfig
	PriceRefresh PriceRefreshConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SourceConfig describes where raw transactions come from.
//
// Kind selects the source implementation: "xlsx" (local workbook), "csv"
// (local file) or "sheet" (Google Sheets CSV export). Workbook resolution
// follows a priority order so deployments can switch sheets without code
// changes: SOURCE_WORKBOOK env var, then config/workbook.json, then the
// default.
type SourceConfig struct {
	Kind          string
	Path          string // xlsx/csv file path
	SpreadsheetID string // sheet kind only
	Workbook      string
	Worksheet     string
	Token         string // sheet access token, optionally fernet-encrypted at rest
}

// PriceRefreshConfig controls the optional scheduled quote-cache warm-up.
// Valuations themselves are always computed on request; the schedule only
// pre-fills the lookup cache.
type PriceRefreshConfig struct {
	Enabled  bool
	Schedule string // cron expression
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	token, err := loadSourceToken()
	if err != nil {
		return nil, err
	}

	workbook := resolveWorkbookName()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Source: SourceConfig{
			Kind:          getEnv("SOURCE_KIND", "xlsx"),
			Path:          getEnv("SOURCE_PATH", fmt.Sprintf("./data/%s.xlsx", workbook)),
			SpreadsheetID: os.Getenv("SOURCE_SPREADSHEET_ID"),
			Workbook:      workbook,
			Worksheet:     getEnv("SOURCE_WORKSHEET", DefaultWorksheetName),
			Token:         token,
		},
		PriceRefresh: PriceRefreshConfig{
			Enabled:  os.Getenv("PRICE_REFRESH_ENABLED") == "true",
			Schedule: getEnv("PRICE_REFRESH_SCHEDULE", "@hourly"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// resolveWorkbookName resolves the workbook name: environment variable first,
// then the optional JSON config file, then the default.
func resolveWorkbookName() string {
	if name := os.Getenv("SOURCE_WORKBOOK"); name != "" {
		return name
	}
	if name := workbookNameFromJSON(); name != "" {
		return name
	}
	return DefaultWorkbookName
}

func workbookNameFromJSON() string {
	data, err := os.ReadFile(workbookJSONPath)
	if err != nil {
		return ""
	}

	var payload struct {
		WorkbookName string `json:"workbook_name"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.WorkbookName
}

// loadSourceToken returns the sheet access token. When SOURCE_TOKEN_ENCRYPTED
// and FERNET_KEY are set the token is stored fernet-encrypted and decrypted
// here, so credentials never sit in plaintext in the environment file.
func loadSourceToken() (string, error) {
	encrypted := os.Getenv("SOURCE_TOKEN_ENCRYPTED")
	if encrypted == "" {
		return os.Getenv("SOURCE_TOKEN"), nil
	}

	rawKey := os.Getenv("FERNET_KEY")
	if rawKey == "" {
		return "", fmt.Errorf("SOURCE_TOKEN_ENCRYPTED is set but FERNET_KEY is missing")
	}

	keys, err := fernet.DecodeKeys(rawKey)
	if err != nil {
		return "", fmt.Errorf("invalid FERNET_KEY: %w", err)
	}

	token := fernet.VerifyAndDecrypt([]byte(encrypted), 0, keys)
	if token == nil {
		return "", fmt.Errorf("failed to decrypt SOURCE_TOKEN_ENCRYPTED")
	}

	return string(token), nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
