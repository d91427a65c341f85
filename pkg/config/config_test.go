package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_StripeConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	os.Setenv("STRIPE_CACHE_TTL", "60")
	defer func() {
		os.Unsetenv("STRIPE_SECRET_KEY")
		os.Unsetenv("STRIPE_CACHE_TTL")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify Stripe config
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, 60, cfg.Stripe.CacheTTLSeconds)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("STRIPE_SECRET_KEY")
	os.Unsetenv("STRIPE_CACHE_TTL")
	os.Unsetenv("DB_NAME")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "https://api.stripe.com/v1", cfg.Stripe.BaseURL)
	assert.Equal(t, 300, cfg.Stripe.CacheTTLSeconds)
	assert.Equal(t, "medicaid_rates", cfg.Database.Database)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "rates",
		Password: "secret",
		Database: "medicaid_rates",
		SSLMode:  "require",
	}

	dsn := cfg.DatabaseDSN()
	assert.Equal(t, "host=db.internal port=5433 user=rates password=secret dbname=medicaid_rates sslmode=require", dsn)
}
