package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
password = "secret"

[redis]
enabled = true
addr = "redis:6379"

[scheduling]
timezone = "Europe/Moscow"
contiguous_gap_check = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Scheduling.ContiguousGapCheck)
	assert.Equal(t, 10, cfg.Scheduling.CompletionAttemptsPerHour)
	assert.Equal(t, time.Minute, cfg.Scheduling.CalendarCacheTTL())

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown timezone", content: "[scheduling]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "bad port", content: "[server]\nhttp_port = 70000\n"},
		{name: "unknown key", content: "[server]\nhttp_prot = 8080\n"},
		{name: "redis without addr", content: "[redis]\nenabled = true\naddr = \"\"\n"},
		{name: "zero burst", content: "[scheduling]\ncompletion_attempt_burst = 0\n"},
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

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "appointments", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/appointments?sslmode=disable", d.DSN())
}
