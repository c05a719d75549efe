package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load from picking up a serenity.yaml outside the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "serenity_session", cfg.Session.CookieName)
	assert.Equal(t, 50, cfg.Chat.HistoryLimit)
	assert.Equal(t, "none", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.Attempts)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestFileEnvAndFlags(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "serenity.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  cors_origins: [https://a.example, https://b.example]
session:
  ttl: 2h
chat:
  history_limit: 20
llm:
  provider: mock
`), 0o600))

	t.Setenv("SERENITY_CHAT_HISTORY_LIMIT", "30")
	t.Setenv("SERENITY_LOG_LEVEL", "warn")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.String("db", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "9100", "--db", "/tmp/x.db"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "flag beats file")
	assert.Equal(t, "/tmp/x.db", cfg.DB)
	assert.Equal(t, 30, cfg.Chat.HistoryLimit, "env beats file")
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestUnsetFlagsKeepLowerLayers(t *testing.T) {
	isolate(t)
	t.Setenv("SERENITY_SERVER_PORT", "7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load("", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"ttl", func(c *Config) { c.Session.TTL = 0 }},
		{"cookie", func(c *Config) { c.Session.CookieName = "" }},
		{"history", func(c *Config) { c.Chat.HistoryLimit = 0 }},
		{"llm key", func(c *Config) { c.LLM.Provider = "anthropic" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
