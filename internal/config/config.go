package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// QuantityPolicy selects which of the two historical BOM quantity rules is
// enforced: whole numbers capped at 100, or any positive decimal.
type QuantityPolicy string

const (
	QuantityPolicyInteger QuantityPolicy = "integer"
	QuantityPolicyDecimal QuantityPolicy = "decimal"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	BOM     BOMConfig
	Refresh RefreshConfig
	Sheets  SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// APIConfig points at the remote master-data REST API.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// BOMConfig holds BOM validation options.
type BOMConfig struct {
	QuantityPolicy QuantityPolicy
}

// RefreshConfig holds cache resynchronization scheduling.
type RefreshConfig struct {
	CronSchedule string
}

// SheetsConfig contains configuration for the optional Google Sheets import
// source. Leaving both fields empty disables the source.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the sheet import source is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	timeout, err := strconv.Atoi(getenvWithDefault("MASTERDATA_API_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("MASTERDATA_API_TIMEOUT_SECONDS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		API: APIConfig{
			BaseURL:        getenvWithDefault("MASTERDATA_API_BASE_URL", "https://api-assignment.inveesync.in"),
			TimeoutSeconds: timeout,
		},
		BOM: BOMConfig{
			QuantityPolicy: QuantityPolicy(getenvWithDefault("BOM_QUANTITY_POLICY", string(QuantityPolicyInteger))),
		},
		Refresh: RefreshConfig{
			CronSchedule: getenvWithDefault("CACHE_REFRESH_CRON", "*/15 * * * *"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_IMPORT_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.API.BaseURL == "" {
		return errors.New("MASTERDATA_API_BASE_URL must be provided")
	}

	if c.API.TimeoutSeconds <= 0 {
		return errors.New("MASTERDATA_API_TIMEOUT_SECONDS must be positive")
	}

	switch c.BOM.QuantityPolicy {
	case QuantityPolicyInteger, QuantityPolicyDecimal:
	default:
		return fmt.Errorf("BOM_QUANTITY_POLICY must be %q or %q", QuantityPolicyInteger, QuantityPolicyDecimal)
	}

	if c.Refresh.CronSchedule == "" {
		return errors.New("CACHE_REFRESH_CRON must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
