package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray divvy.toml or .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.Storage.Driver)
	require.Equal(t, "./data/bills.db", cfg.Storage.SQLitePath)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, "USD", cfg.Bill.DefaultCurrency)
	require.Equal(t, 3, cfg.Service.MaxRetries)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9090

[storage]
driver = "memory"

[bill]
default_currency = "clp"

[paylink]
fintoc_username = "collector"
`), 0o644))
	t.Setenv("DIVVY_CONFIG", path)
	t.Setenv("DIVVY_LOG_LEVEL", "debug")
	t.Setenv("DIVVY_SERVER_PORT", "9191")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, "CLP", cfg.Bill.DefaultCurrency)
	require.Equal(t, "collector", cfg.Paylink.FintocUsername)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DIVVY_SERVICE_MAX_RETRIES=5\n"), 0o644))
	// godotenv sets the variable for the whole process; restore it afterwards.
	t.Setenv("DIVVY_SERVICE_MAX_RETRIES", "")
	os.Unsetenv("DIVVY_SERVICE_MAX_RETRIES")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Service.MaxRetries)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdir(t)
	t.Setenv("DIVVY_CONFIG", "/nonexistent/divvy.toml")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:  ServerConfig{Port: 8080},
		Storage: StorageConfig{Driver: "sqlite"},
		Log:     LogConfig{Format: "json"},
		Bill:    BillConfig{DefaultCurrency: "USD"},
		Service: ServiceConfig{MaxRetries: 3},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mysql" }},
		{name: "postgres without url", mutate: func(c *Config) { c.Storage.Driver = "postgres" }},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
		{name: "bad currency", mutate: func(c *Config) { c.Bill.DefaultCurrency = "DOLLARS" }},
		{name: "no retries", mutate: func(c *Config) { c.Service.MaxRetries = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}
