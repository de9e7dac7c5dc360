// Package config loads the typed runtime configuration from the environment.
// Unknown settings are simply not representable; every field is named here.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// DefaultSessionSecret signs admin tokens when SESSION_SECRET is unset. It is
// a development fallback and must never reach production.
const DefaultSessionSecret = "sonya-dev-secret"

type Config struct {
	Port       string
	Production bool

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr string

	KafkaBrokers []string
	KafkaTopic   string

	SessionSecret string
	SessionTTL    time.Duration

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	OrderRateLimit int // order submissions per minute per IP
	ViewRateLimit  int // track-view pings per minute per IP
}

// Load reads .env when present, then the environment, applying defaults for
// everything except the database name/host which default to local dev values.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           env("PORT", "8080"),
		Production:     env("APP_ENV", "development") == "production",
		DBHost:         env("DB_HOST", "127.0.0.1"),
		DBPort:         env("DB_PORT", "3306"),
		DBUser:         env("DB_USER", "root"),
		DBPass:         env("DB_PASS", ""),
		DBName:         env("DB_NAME", "sonya_stores"),
		DBMaxOpenConns: intEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: intEnv("DB_MAX_IDLE_CONNS", 10),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:   strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaTopic:     env("KAFKA_ORDER_TOPIC", "order-events"),
		SessionSecret:  env("SESSION_SECRET", ""),
		SessionTTL:     durationEnv("SESSION_TTL", 24*time.Hour),
		SMTPHost:       env("SMTP_HOST", ""),
		SMTPPort:       env("SMTP_PORT", "587"),
		SMTPUser:       env("SMTP_USER", ""),
		SMTPPass:       env("SMTP_PASS", ""),
		SMTPFrom:       env("SMTP_FROM", "orders@sonyastores.com"),
		OrderRateLimit: intEnv("ORDER_RATE_LIMIT", 5),
		ViewRateLimit:  intEnv("VIEW_RATE_LIMIT", 60),
	}

	if cfg.SessionSecret == "" {
		if cfg.Production {
			logger.Fatal().Msg("SESSION_SECRET is required in production")
		}
		logger.Warn().Msg("SESSION_SECRET not set, using development default")
		cfg.SessionSecret = DefaultSessionSecret
	}

	return cfg
}

// DSN builds the mysql connection string, parseTime so DATETIME scans into
// time.Time.
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPass + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
}

func env(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
