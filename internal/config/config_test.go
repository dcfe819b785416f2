package config_test

import (
	"testing"
	"time"

	"github.com/valeriaulyamaeva/ga-financas/internal/config"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"API_BASE_URL", "LISTEN_ADDR", "SESSION_STORE", "DATABASE_URL",
		"REFRESH_INTERVAL", "API_TIMEOUT", "TIMEZONE", "DEFAULT_SPENDING_LIMIT", "COOKIE_SECURE", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("ошибка загрузки конфигурации: %v", err)
	}
	if cfg.APIBaseURL != "http://127.0.0.1:8000/api" {
		t.Errorf("APIBaseURL = %s", cfg.APIBaseURL)
	}
	if cfg.ListenAddr != ":8080" || cfg.SessionStore != config.StoreMemory {
		t.Errorf("неожиданные значения по умолчанию: %+v", cfg)
	}
	if cfg.RefreshInterval != 10*time.Second || cfg.APITimeout != 10*time.Second {
		t.Errorf("неожиданные интервалы: %v %v", cfg.RefreshInterval, cfg.APITimeout)
	}
	if cfg.SpendingLimit.String() != "2000" {
		t.Errorf("SpendingLimit = %s", cfg.SpendingLimit)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_BASE_URL", "http://api.local/api/")
	t.Setenv("REFRESH_INTERVAL", "30s")
	t.Setenv("COOKIE_SECURE", "true")
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("ошибка загрузки конфигурации: %v", err)
	}
	if cfg.APIBaseURL != "http://api.local/api" {
		t.Errorf("завершающий '/' должен удаляться: %s", cfg.APIBaseURL)
	}
	if cfg.RefreshInterval != 30*time.Second || !cfg.CookieSecure {
		t.Errorf("переопределения не применены: %+v", cfg)
	}
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"DEFAULT_SPENDING_LIMIT": "-5",
		"REFRESH_INTERVAL":       "sempre",
		"SESSION_STORE":          "redis",
		"LOG_LEVEL":              "barulhento",
	}
	for key, value := range cases {
		clearEnv(t)
		t.Setenv(key, value)
		if _, err := config.FromEnv(); err == nil {
			t.Errorf("%s=%s должен давать ошибку", key, value)
		}
	}
}

func TestPostgresRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_STORE", "postgres")
	if _, err := config.FromEnv(); err == nil {
		t.Fatal("ожидалась ошибка без DATABASE_URL")
	}
}
