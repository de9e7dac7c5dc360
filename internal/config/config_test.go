package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("ORDER_RATE_LIMIT", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Production {
		t.Error("expected development mode by default")
	}
	if cfg.SessionSecret != DefaultSessionSecret {
		t.Errorf("expected the development secret fallback, got %q", cfg.SessionSecret)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.OrderRateLimit != 5 {
		t.Errorf("expected default order rate limit 5, got %d", cfg.OrderRateLimit)
	}
	if cfg.ViewRateLimit != 60 {
		t.Errorf("expected default view rate limit 60, got %d", cfg.ViewRateLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "per-env-secret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	if cfg.SessionSecret != "per-env-secret" {
		t.Errorf("expected secret from environment, got %q", cfg.SessionSecret)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h session TTL, got %v", cfg.SessionTTL)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("expected 2 brokers, got %v", cfg.KafkaBrokers)
	}
	if cfg.DBMaxOpenConns != 25 {
		t.Errorf("expected malformed int to fall back to 25, got %d", cfg.DBMaxOpenConns)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "store", DBPass: "pw", DBHost: "db", DBPort: "3306", DBName: "sonya_stores"}
	want := "store:pw@tcp(db:3306)/sonya_stores?parseTime=true&charset=utf8mb4"
	if got := cfg.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
