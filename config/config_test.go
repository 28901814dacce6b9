package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nookcoder/library-console/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("LIBCTL_CONFIG_DIR", t.TempDir())

	cfg, err := config.Load("missing")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "library_token", cfg.Session.Key)
	assert.Equal(t, "/login", cfg.Routes.Login)
	assert.Equal(t, "/dashboard", cfg.Routes.Landing)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
api:
  base_url: "https://library.example.org"
  timeout: 5s
session:
  backend: "redis"
redis:
  addr: "redis:6379"
routes:
  landing: "/books"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "staging.yaml"), []byte(yaml), 0o600))
	t.Setenv("LIBCTL_CONFIG_DIR", dir)
	t.Setenv("LIBCTL_REDIS_DB", "2")
	t.Setenv("LIBCTL_API_TIMEOUT", "30s")

	cfg, err := config.Load("staging")
	require.NoError(t, err)
	assert.Equal(t, "https://library.example.org", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "/books", cfg.Routes.Landing)
	assert.Equal(t, "/login", cfg.Routes.Login, "unset keys keep their defaults")
}

func TestLoad_BadOverride(t *testing.T) {
	t.Setenv("LIBCTL_CONFIG_DIR", t.TempDir())
	t.Setenv("LIBCTL_REDIS_DB", "zero")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidRoutes(t *testing.T) {
	tests := []struct {
		name   string
		routes string
	}{
		{"relative landing", "routes:\n  landing: \"books\"\n"},
		{"root login", "routes:\n  login: \"/\"\n"},
		{"same paths", "routes:\n  login: \"/dashboard\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(tt.routes), 0o600))
			t.Setenv("LIBCTL_CONFIG_DIR", dir)

			_, err := config.Load("bad")
			assert.Error(t, err)
		})
	}
}
