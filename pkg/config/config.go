package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rate sources
	GSAAPIKey       string
	GSABaseURL      string
	DSSRBaseURL     string
	ExchangeBaseURL string
	SourceTimeout   time.Duration

	// Formatted rate limit, e.g. "60-M" for 60 requests per minute.
	RateLimit string

	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if
// present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("GSA_API_KEY", "")
	viper.SetDefault("GSA_BASE_URL", "")
	viper.SetDefault("DSSR_BASE_URL", "")
	viper.SetDefault("EXCHANGE_BASE_URL", "")
	viper.SetDefault("SOURCE_TIMEOUT", "15s")
	viper.SetDefault("RATE_LIMIT", "60-M")
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Exchange rate caching is disabled.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.GSAAPIKey = viper.GetString("GSA_API_KEY")
	if cfg.GSAAPIKey == "" {
		log.Println("Warning: GSA_API_KEY not set. Domestic lookups will fall back to the default cap.")
	}
	cfg.GSABaseURL = viper.GetString("GSA_BASE_URL")
	cfg.DSSRBaseURL = viper.GetString("DSSR_BASE_URL")
	cfg.ExchangeBaseURL = viper.GetString("EXCHANGE_BASE_URL")

	timeoutStr := viper.GetString("SOURCE_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for SOURCE_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
		}
	}
	cfg.SourceTimeout = timeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	return cfg, nil
}
