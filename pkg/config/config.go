package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	LoginRateLimit    string // ulule/limiter formatted rate, e.g. "5-M"
	CORSAllowOrigins  []string

	// Bootstrap operator created at startup when the operators table is
	// empty. Leaving the email unset skips bootstrapping.
	BootstrapOperatorName     string
	BootstrapOperatorEmail    string
	BootstrapOperatorPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("BOOTSTRAP_OPERATOR_NAME", "Administrator")
	viper.SetDefault("BOOTSTRAP_OPERATOR_EMAIL", "")
	viper.SetDefault("BOOTSTRAP_OPERATOR_PASSWORD", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.CORSAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")

	cfg.BootstrapOperatorName = viper.GetString("BOOTSTRAP_OPERATOR_NAME")
	cfg.BootstrapOperatorEmail = viper.GetString("BOOTSTRAP_OPERATOR_EMAIL")
	cfg.BootstrapOperatorPassword = viper.GetString("BOOTSTRAP_OPERATOR_PASSWORD")
	if cfg.BootstrapOperatorEmail != "" && cfg.BootstrapOperatorPassword == "" {
		log.Println("Warning: BOOTSTRAP_OPERATOR_EMAIL set without BOOTSTRAP_OPERATOR_PASSWORD; bootstrap will be skipped.")
	}

	return cfg, nil
}
