package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_MODE", "PORT", "DATABASE_URL", "DATASET_SOURCE",
		"REDIS_ADDR", "REDIS_CHANNEL", "REQUEST_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_HEADERS", "NEO4J_URI",
	} {
		t.Setenv(key, "")
	}
	chdir(t, t.TempDir())
}

func writeYAML(t *testing.T, doc map[string]any) string {
	t.Helper()
	raw, err := yaml.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "techverse.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig(NewViper(), "")
	require.NoError(t, err)

	assert.Equal(t, "sqlite:data/app.db", cfg.DatabaseURL)
	assert.Equal(t, "data", cfg.DatasetSource)
	assert.Equal(t, ":3000", cfg.Address())
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "techverse:sse", cfg.Redis.Channel)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Otel.Enabled)
	assert.False(t, cfg.SeedOnStart())
	assert.NotEmpty(t, cfg.AllowedOrigins)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "DEV")
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/items")
	t.Setenv("DATASET_SOURCE", "s3://datasets/techverse")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc")

	cfg, err := LoadConfig(NewViper(), "")
	require.NoError(t, err)

	assert.True(t, cfg.SeedOnStart())
	assert.Equal(t, ":8081", cfg.Address())
	assert.Equal(t, "postgres://app:pw@db:5432/items", cfg.DatabaseURL)
	assert.Equal(t, "s3://datasets/techverse", cfg.DatasetSource)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Otel.Enabled)
	assert.Equal(t, "DEV", cfg.Otel.Environment)
	assert.Equal(t, map[string]string{"x-api-key": "abc"}, cfg.Otel.Headers)
}

func TestLoadConfigFile(t *testing.T) {
	clearConfigEnv(t)
	path := writeYAML(t, map[string]any{
		"port":                 "9090",
		"database_url":         "sqlite:/tmp/items.db",
		"cors_allowed_origins": []string{"https://items.example"},
		"request_timeout":      "2s",
	})

	cfg, err := LoadConfig(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Address())
	assert.Equal(t, "sqlite:/tmp/items.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://items.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigEnvBeatsFile(t *testing.T) {
	clearConfigEnv(t)
	path := writeYAML(t, map[string]any{"port": "9090"})
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Address())
}

func TestLoadConfigReadsDotenv(t *testing.T) {
	clearConfigEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("APP_ENV=DEV\nDATABASE_URL=sqlite:dev.db\n"), 0o644))

	cfg, err := LoadConfig(NewViper(), "")
	require.NoError(t, err)
	assert.True(t, cfg.SeedOnStart())
	assert.Equal(t, "sqlite:dev.db", cfg.DatabaseURL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearConfigEnv(t)
	_, err := LoadConfig(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAddressKeepsHostPort(t *testing.T) {
	assert.Equal(t, "127.0.0.1:3000", Config{Port: "127.0.0.1:3000"}.Address())
	assert.Equal(t, ":3000", Config{Port: " 3000 "}.Address())
}

// chdir is a Go 1.21 stand-in for testing.T.Chdir (added in Go 1.24): it
// changes the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
