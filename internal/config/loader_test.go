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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "surveyform.yaml", `
server:
  addr: ":9090"
  session_ttl: 5m
questions:
  local_bank: true
log:
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Server.SessionTTL)
	assert.True(t, cfg.Questions.LocalBank)
	assert.Equal(t, "console", cfg.Log.Format)

	// untouched keys keep their defaults
	assert.Equal(t, Default().Server.MaxSessions, cfg.Server.MaxSessions)
	assert.Equal(t, Default().Questions.Endpoint, cfg.Questions.Endpoint)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "surveyform.yaml", `
server:
  addr: ":9090"
  max_sessions: 10
log:
  level: warn
`)
	t.Setenv("SURVEYFORM_SERVER_ADDR", ":7070")
	t.Setenv("SURVEYFORM_SERVER_SHUTDOWN_GRACE", "3s")
	t.Setenv("SURVEYFORM_QUESTIONS_REQUEST_TIMEOUT", "2s")
	t.Setenv("SURVEYFORM_SERVER_SECURE_COOKIE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownGrace)
	assert.Equal(t, 2*time.Second, cfg.Questions.RequestTimeout)
	assert.True(t, cfg.Server.SecureCookie)
	assert.Equal(t, 10, cfg.Server.MaxSessions)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.yaml", "server: [unterminated"))
		require.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Setenv("SURVEYFORM_LOG_LEVEL", "chatty")
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.level")
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Server.MaxSessions = 0
	cfg.Questions.Endpoint = "/relative"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.addr")
	assert.Contains(t, err.Error(), "server.max_sessions")
	assert.Contains(t, err.Error(), "questions.endpoint")

	require.NoError(t, Default().Validate())
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"SURVEYFORM_SERVER_ADDR":           "server.addr",
		"SURVEYFORM_SERVER_SHUTDOWN_GRACE": "server.shutdown_grace",
		"SURVEYFORM_THEME_VARIANT":         "theme.variant",
		"SURVEYFORM_DEBUG":                 "debug",
	}
	for in, want := range cases {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "SURVEYFORM_THEME_VARIANT=dark\n")
	t.Setenv("SURVEYFORM_THEME_VARIANT", "")
	os.Unsetenv("SURVEYFORM_THEME_VARIANT")

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	t.Cleanup(func() { os.Unsetenv("SURVEYFORM_THEME_VARIANT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme.Variant)
}
