// Package config loads server and CLI settings from defaults, an optional TOML file, a
// .env file and DIVVY_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/divvy/internal/money"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Bill    BillConfig    `mapstructure:"bill"`
	Paylink PaylinkConfig `mapstructure:"paylink"`
	Service ServiceConfig `mapstructure:"service"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	StaticPath string `mapstructure:"static_path"`
}

// StorageConfig selects the bill store.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"` // sqlite, postgres or memory
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresURL string `mapstructure:"postgres_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// BillConfig holds defaults for new bills.
type BillConfig struct {
	DefaultCurrency string `mapstructure:"default_currency"`
}

// PaylinkConfig configures payment links. Template wins over FintocUsername.
type PaylinkConfig struct {
	FintocUsername string `mapstructure:"fintoc_username"`
	Template       string `mapstructure:"template"`
}

// ServiceConfig tunes the bill service.
type ServiceConfig struct {
	MaxRetries int `mapstructure:"max_retries"`
}

// Load reads configuration from file and env. Env var overrides use prefix DIVVY_,
// e.g. DIVVY_STORAGE_DRIVER=postgres. DIVVY_CONFIG points at a config file; otherwise
// divvy.toml is looked up in the working directory.
func Load() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()

	// default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.static_path", "../frontend/static")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "./data/bills.db")
	v.SetDefault("storage.postgres_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("bill.default_currency", "USD")
	v.SetDefault("paylink.fintoc_username", "")
	v.SetDefault("paylink.template", "")
	v.SetDefault("service.max_retries", 3)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DIVVY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("divvy")
	}

	v.SetEnvPrefix("DIVVY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Bill.DefaultCurrency = string(money.NormalizeCurrency(c.Bill.DefaultCurrency))
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that would otherwise fail later at start-up.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	switch c.Storage.Driver {
	case "sqlite", "memory":
	case "postgres":
		if c.Storage.PostgresURL == "" {
			return errors.New("storage.postgres_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log.format %q", c.Log.Format)
	}
	if len(c.Bill.DefaultCurrency) != 3 {
		return fmt.Errorf("invalid bill.default_currency %q", c.Bill.DefaultCurrency)
	}
	if c.Service.MaxRetries < 1 {
		return fmt.Errorf("service.max_retries must be at least 1, got %d", c.Service.MaxRetries)
	}
	return nil
}
