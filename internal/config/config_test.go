package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 8085

[database]
host = "localhost"
port = 5432
user = "salon"
password = "from-file"
dbname = "salon"

[logs]
level = "debug"

[scheduling]
grid_open = "08:00"
grid_close = "19:00"
grid_step_minutes = 30
timezone = "America/Sao_Paulo"

[redis]
enabled = true
addr = "localhost:6379"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "salon:appointments:events", cfg.Redis.Channel)
	assert.Contains(t, cfg.Database.DSN(), "dbname=salon")

	grid, err := cfg.Scheduling.Grid()
	require.NoError(t, err)
	assert.Equal(t, 22, grid.SlotCount())

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("INFERENCE_URL", "http://inference:9000")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "warn", cfg.Logs.Level)
	assert.Equal(t, "http://inference:9000", cfg.Inference.URL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing database", content: "[server]\nhttp_port = 8080\n"},
		{name: "bad grid", content: "[database]\nhost = \"h\"\ndbname = \"d\"\n[scheduling]\ngrid_open = \"20:00\"\ngrid_close = \"07:00\"\n"},
		{name: "bad timezone", content: "[database]\nhost = \"h\"\ndbname = \"d\"\n[scheduling]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "redis without addr", content: "[database]\nhost = \"h\"\ndbname = \"d\"\n[redis]\nenabled = true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
