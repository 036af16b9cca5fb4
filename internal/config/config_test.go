package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/romanzzaa/petrol-price-bot/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Monitor.Interval != time.Hour {
		t.Errorf("Expected 1h interval, got %s", cfg.Monitor.Interval)
	}
	if cfg.Source.UserAgent != "BMW" {
		t.Errorf("Unexpected user agent %q", cfg.Source.UserAgent)
	}
	if cfg.Storage.Backend != config.BackendPostgres {
		t.Errorf("Expected postgres backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Expected port 5432, got %d", cfg.Database.Port)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("MONITOR_INTERVAL", "15m")
	t.Setenv("SOURCE_TIMEOUT", "3s")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "2")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Monitor.Interval != 15*time.Minute {
		t.Errorf("Expected 15m, got %s", cfg.Monitor.Interval)
	}
	if cfg.Source.Timeout != 3*time.Second {
		t.Errorf("Expected 3s, got %s", cfg.Source.Timeout)
	}
	if cfg.Storage.Backend != config.BackendRedis || cfg.Redis.DB != 2 {
		t.Errorf("Unexpected storage config %+v %+v", cfg.Storage, cfg.Redis)
	}
}

func TestLoadConfig_LegacyTokenVar(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TOKEN", "legacy:token")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Telegram.BotToken != "legacy:token" {
		t.Errorf("Expected legacy token, got %q", cfg.Telegram.BotToken)
	}
}

func TestValidate(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			Telegram: config.TelegramConfig{BotToken: "t"},
			Source:   config.SourceConfig{URL: "https://x", Timeout: time.Second},
			Monitor:  config.MonitorConfig{Interval: time.Minute},
			Storage:  config.StorageConfig{Backend: config.BackendRedis},
		}
	}

	cases := map[string]func(*config.Config){
		"no token":    func(c *config.Config) { c.Telegram.BotToken = "" },
		"no url":      func(c *config.Config) { c.Source.URL = "" },
		"no timeout":  func(c *config.Config) { c.Source.Timeout = 0 },
		"no interval": func(c *config.Config) { c.Monitor.Interval = 0 },
		"bad backend": func(c *config.Config) { c.Storage.Backend = "sqlite" },
	}

	ok := base()
	if err := ok.Validate(); err != nil {
		t.Fatalf("Base config should be valid: %v", err)
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TOKEN", "")

	_, err := config.LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Errorf("Expected token error, got %v", err)
	}
}
