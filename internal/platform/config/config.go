package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL          string
	IsProduction         bool
	EnableDBCheck        bool
	PettyCashAccountCode string
	LedgerPageSize       int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("PETTY_CASH_ACCOUNT_CODE", "1150")
	viper.SetDefault("LEDGER_PAGE_SIZE", 50)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.PettyCashAccountCode = viper.GetString("PETTY_CASH_ACCOUNT_CODE")

	cfg.LedgerPageSize = viper.GetInt("LEDGER_PAGE_SIZE")
	if cfg.LedgerPageSize <= 0 {
		cfg.LedgerPageSize = 50
		log.Printf("Warning: Invalid LEDGER_PAGE_SIZE. Defaulting to %d.\n", cfg.LedgerPageSize)
	}

	return cfg, nil
}
