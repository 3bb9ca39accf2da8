package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "weave.yaml", `
log_level: debug
format: json
width_inches: 24.5
server:
  port: 9090
redis:
  addr: localhost:6379
  ttl: 10m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset fields keep defaults")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 24.5, cfg.WidthInches)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.Metrics)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "weave:plan:", cfg.Redis.Prefix)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "weave.json", `{"color": "never", "server": {"port": 7000}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "log_level: [unclosed"},
		{"bad level", "log_level: loud"},
		{"bad color", "color: sometimes"},
		{"negative width", "width_inches: -1"},
		{"port out of range", "server:\n  port: 70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "weave.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}
