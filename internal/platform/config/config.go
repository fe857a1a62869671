package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// BaseCurrency is the currency all entry line amounts are recorded in.
	BaseCurrency string
	// CurrencyPrecision is the decimal precision of base-currency amounts; the
	// balance validation epsilon is one unit of this precision.
	CurrencyPrecision int32
	// FXGainAccountCode / FXLossAccountCode are the chart codes of the accounts
	// the revaluation engine books unrealized FX results against.
	FXGainAccountCode string
	FXLossAccountCode string

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
	// CORSAllowedOrigins lists allowed origins; "*" allows any.
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", "BGN")
	viper.SetDefault("CURRENCY_PRECISION", 2)
	viper.SetDefault("FX_GAIN_ACCOUNT_CODE", "724")
	viper.SetDefault("FX_LOSS_ACCOUNT_CODE", "624")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.BaseCurrency = strings.ToUpper(viper.GetString("BASE_CURRENCY"))
	if len(cfg.BaseCurrency) != 3 {
		log.Printf("Warning: BASE_CURRENCY %q is not a 3-letter code. Defaulting to BGN.\n", cfg.BaseCurrency)
		cfg.BaseCurrency = "BGN"
	}

	cfg.CurrencyPrecision = viper.GetInt32("CURRENCY_PRECISION")
	if cfg.CurrencyPrecision < 0 || cfg.CurrencyPrecision > 8 {
		log.Printf("Warning: CURRENCY_PRECISION %d out of range. Defaulting to 2.\n", cfg.CurrencyPrecision)
		cfg.CurrencyPrecision = 2
	}

	cfg.FXGainAccountCode = viper.GetString("FX_GAIN_ACCOUNT_CODE")
	cfg.FXLossAccountCode = viper.GetString("FX_LOSS_ACCOUNT_CODE")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")

	return cfg, nil
}
