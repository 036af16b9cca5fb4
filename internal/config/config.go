package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config - глобальная конфигурация бота
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Source   SourceConfig   `mapstructure:"source"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

type AppConfig struct {
	Env string `mapstructure:"env"` // "local", "prod"
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	Debug    bool   `mapstructure:"debug"`
}

// SourceConfig - страница с ценой и якорь для парсера
type SourceConfig struct {
	URL           string        `mapstructure:"url"`
	CardSelector  string        `mapstructure:"card_selector"`
	PriceSelector string        `mapstructure:"price_selector"`
	UserAgent     string        `mapstructure:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type MonitorConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // postgres | redis
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // пусто - только stdout
}

// LoadConfig читает .env (если есть), переменные окружения и дефолты.
// Ключ "source.url" соответствует переменной SOURCE_URL и т.д.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: No .env file found, relying on System Env Vars")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnv(v, "app.env")
	bindEnv(v, "telegram.bot_token", "telegram.debug")
	bindEnv(v, "source.url", "source.card_selector", "source.price_selector", "source.user_agent", "source.timeout")
	bindEnv(v, "monitor.interval")
	bindEnv(v, "storage.backend")
	bindEnv(v, "database.host", "database.port", "database.user", "database.password", "database.dbname", "database.sslmode")
	bindEnv(v, "redis.addr", "redis.password", "redis.db")
	bindEnv(v, "log.level", "log.file")

	// Исторически токен лежал в TOKEN
	if err := v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN", "TOKEN"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "local")

	v.SetDefault("source.url", "https://fuelprices.ru/szfo/speterburg")
	v.SetDefault("source.card_selector", "div.fuel-card.border-ai92")
	v.SetDefault("source.price_selector", `span[itemprop="price"]`)
	v.SetDefault("source.user_agent", "BMW")
	v.SetDefault("source.timeout", 15*time.Second)

	v.SetDefault("monitor.interval", time.Hour)

	v.SetDefault("storage.backend", BackendPostgres)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "petrolbot")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Validate - минимальные проверки, без которых бот не стартует
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required (TELEGRAM_BOT_TOKEN)")
	}
	if c.Source.URL == "" {
		return fmt.Errorf("source url cannot be empty")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("source timeout must be positive, got %s", c.Source.Timeout)
	}
	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor interval must be positive, got %s", c.Monitor.Interval)
	}
	switch c.Storage.Backend {
	case BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// bindEnv is a helper to bind multiple keys at once
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}
