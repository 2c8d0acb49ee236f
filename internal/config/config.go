package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultJWTAccessTTL    = "24h"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultListenAddr      = ":8080"
	defaultDatabaseURL     = "turfbook.db"
	defaultCurrency        = "inr"
	defaultProviderTimeout = "10s"
	defaultFrontendURL     = "http://localhost:5173"

	// Flat advance charged at checkout, in minor units of the currency
	// (30000 paise = Rs 300). Policy constant, not per-booking.
	defaultDepositMinor = 30000
)

type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	StripeSecretKey     string
	StripeWebhookSecret string
	DepositAmountMinor  int64
	Currency            string
	FrontendURL         string
	ProviderTimeout     time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.ProviderTimeout, err = parseDurationEnv("PAYMENT_PROVIDER_TIMEOUT", defaultProviderTimeout)
	if err != nil {
		return nil, err
	}

	cfg.StripeSecretKey = strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY"))
	cfg.StripeWebhookSecret = strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET"))
	cfg.Currency = getEnv("PAYMENT_CURRENCY", defaultCurrency)
	cfg.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", defaultFrontendURL), "/")
	cfg.DepositAmountMinor = defaultDepositMinor

	if cfg.AppEnv == "prod" {
		if cfg.JWTSecret == defaultJWTSecret {
			return nil, fmt.Errorf("JWT_SECRET must be set in prod")
		}
		if cfg.StripeSecretKey == "" || cfg.StripeWebhookSecret == "" {
			return nil, fmt.Errorf("STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET must be set in prod")
		}
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return d, nil
}
