package config

import (
	"os"
	"path/filepath"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  name: shareit-test
database:
  path: "test.db"
api:
  http:
    port: 9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shareit-test", cfg.App.Name)
	assert.Equal(t, "test.db", cfg.Database.Path)
	assert.Equal(t, 9000, cfg.API.HTTP.Port)
	assert.Equal(t, models.DefaultUserHeader, cfg.API.UserHeader)
	assert.Equal(t, models.DefaultPageSize, cfg.Bookings.DefaultPageSize)
	assert.Equal(t, models.RateLimitRequests, cfg.API.RateLimit.Requests)
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("SHAREIT_TEST_DB", "/tmp/from-env.db")
	path := writeConfig(t, `
database:
  path: "${SHAREIT_TEST_DB}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.Database.Path)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := writeConfig(t, "database: [unclosed")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		path := writeConfig(t, "app:\n  name: x\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
	})
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{Path: "path"},
			API:      APIConfig{HTTP: APIHTTPConfig{Port: 8080}},
			Bookings: BookingsConfig{DefaultPageSize: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing database path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "port out of range", mutate: func(c *Config) { c.API.HTTP.Port = 70000 }, wantErr: true},
		{
			name: "metrics port clash",
			mutate: func(c *Config) {
				c.Monitoring.PrometheusEnabled = true
				c.Monitoring.PrometheusPort = 8080
			},
			wantErr: true,
		},
		{name: "zero page size", mutate: func(c *Config) { c.Bookings.DefaultPageSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
