package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	APIBaseURL      string
	ListenAddr      string
	SessionStore    string
	DatabaseURL     string
	RefreshInterval time.Duration
	APITimeout      time.Duration
	Location        *time.Location
	SpendingLimit   decimal.Decimal
	CookieSecure    bool
	LogLevel        zerolog.Level
}

// Load читает .env (если есть) и переменные окружения.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL:   strings.TrimRight(getenv("API_BASE_URL", "http://127.0.0.1:8000/api"), "/"),
		ListenAddr:   getenv("LISTEN_ADDR", ":8080"),
		SessionStore: getenv("SESSION_STORE", StoreMemory),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	var err error
	if cfg.RefreshInterval, err = time.ParseDuration(getenv("REFRESH_INTERVAL", "10s")); err != nil || cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("некорректный REFRESH_INTERVAL: %q", os.Getenv("REFRESH_INTERVAL"))
	}
	if cfg.APITimeout, err = time.ParseDuration(getenv("API_TIMEOUT", "10s")); err != nil || cfg.APITimeout <= 0 {
		return nil, fmt.Errorf("некорректный API_TIMEOUT: %q", os.Getenv("API_TIMEOUT"))
	}
	if cfg.Location, err = time.LoadLocation(getenv("TIMEZONE", "America/Sao_Paulo")); err != nil {
		return nil, fmt.Errorf("некорректный TIMEZONE: %w", err)
	}
	cfg.SpendingLimit, err = decimal.NewFromString(getenv("DEFAULT_SPENDING_LIMIT", "2000"))
	if err != nil || !cfg.SpendingLimit.IsPositive() {
		return nil, fmt.Errorf("некорректный DEFAULT_SPENDING_LIMIT: %q", os.Getenv("DEFAULT_SPENDING_LIMIT"))
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		if cfg.CookieSecure, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("некорректный COOKIE_SECURE: %w", err)
		}
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(getenv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("некорректный LOG_LEVEL: %w", err)
	}

	switch cfg.SessionStore {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("SESSION_STORE=postgres требует DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("неизвестный SESSION_STORE: %q", cfg.SessionStore)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
