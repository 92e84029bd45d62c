package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	GeminiAPIKey        string // GEMINI_API_KEY for the image-analysis provider
	LedgerBridgeURL     string // base URL of the ledger bridge; empty = sandbox minter
	LedgerAPIKey        string
	CreditsPerHectare   float64 // fixed conversion rate, credits per verified hectare
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
}

// DefaultCreditsPerHectare applies when CREDITS_PER_HECTARE is unset.
const DefaultCreditsPerHectare = 5.0

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = viper.GetString("DATABASE_URL")
	}

	rate := viper.GetFloat64("CREDITS_PER_HECTARE")
	if rate <= 0 {
		rate = DefaultCreditsPerHectare
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		GeminiAPIKey:        viper.GetString("GEMINI_API_KEY"),
		LedgerBridgeURL:     viper.GetString("LEDGER_BRIDGE_URL"),
		LedgerAPIKey:        viper.GetString("LEDGER_API_KEY"),
		CreditsPerHectare:   rate,
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}
