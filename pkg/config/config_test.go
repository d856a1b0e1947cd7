package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.App.Port)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without a url or address")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected default cors origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Recommend.Limit != 3 {
		t.Fatalf("expected default recommendation limit 3, got %d", cfg.Recommend.Limit)
	}
	if cfg.Loyalty.StartingPoints != 120 {
		t.Fatalf("expected 120 starting points, got %d", cfg.Loyalty.StartingPoints)
	}
	if !cfg.GiftCard.DefaultAmount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected default gift amount 25, got %s", cfg.GiftCard.DefaultAmount)
	}
	if got := cfg.Idempotency.TTL; got != 24*time.Hour {
		t.Fatalf("expected idempotency ttl 24h, got %v", got)
	}
	if cfg.Sessions.IdleTTL != 2*time.Hour || cfg.Sessions.SweepInterval != 5*time.Minute {
		t.Fatalf("unexpected session defaults %+v", cfg.Sessions)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvLoyaltyPointsPerDollar, "1.5")
	t.Setenv(EnvIdempotencyTTL, "1h")
	t.Setenv(EnvCORSAllowedOrigins, "https://cafe.example.com")
	t.Setenv(EnvSessionIdleTTL, "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !cfg.Redis.Enabled() {
		t.Fatalf("expected redis to be enabled")
	}
	if cfg.Loyalty.PointsPerDollar.String() != "1.5" {
		t.Fatalf("unexpected points per dollar %s", cfg.Loyalty.PointsPerDollar)
	}
	if cfg.Idempotency.TTL != time.Hour {
		t.Fatalf("unexpected ttl %v", cfg.Idempotency.TTL)
	}
	if cfg.Sessions.IdleTTL != 30*time.Minute {
		t.Fatalf("unexpected session idle ttl %v", cfg.Sessions.IdleTTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://cafe.example.com" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := map[string]struct {
		key   string
		value string
	}{
		"zero limit":            {key: EnvRecommendLimit, value: "0"},
		"negative weight":       {key: EnvRecommendWeightMilk, value: "-1"},
		"default above maximum": {key: EnvGiftCardDefaultAmount, value: "900"},
		"max below min":         {key: EnvGiftCardMaxAmount, value: "1"},
		"zero session ttl":      {key: EnvSessionIdleTTL, value: "0s"},
		"negative sweep":        {key: EnvSessionSweepInterval, value: "-1m"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			setMinimalEnv(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected %s=%s to be rejected", tc.key, tc.value)
			}
		})
	}
}

func TestAppConfigEnvironmentHelpers(t *testing.T) {
	if !(AppConfig{Env: "DEV"}).IsDev() {
		t.Fatal("expected DEV to be treated as dev")
	}
	if !(AppConfig{Env: "prod"}).IsProd() {
		t.Fatal("expected prod to be treated as prod")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvRedisURL, "")
}
