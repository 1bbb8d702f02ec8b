package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "memory", cfg.PreferenceDriver)
	assert.Equal(t, "zh", cfg.DefaultLanguage)
	assert.Equal(t, 10, cfg.CountdownSec)
	assert.Equal(t, 1000, cfg.StartBalance)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("GAME_SEED", "42")
	t.Setenv("SICBO_COUNTDOWN_SEC", "5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 5, cfg.CountdownSec)
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PREFERENCE_DRIVER=sqlite\nPREFERENCE_DSN=prefs.db\n"), 0o600))
	// godotenv never overrides set variables; Setenv registers the restore,
	// Unsetenv clears the way.
	t.Setenv("PREFERENCE_DRIVER", "")
	t.Setenv("PREFERENCE_DSN", "")
	os.Unsetenv("PREFERENCE_DRIVER")
	os.Unsetenv("PREFERENCE_DSN")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.PreferenceDriver)
	assert.Equal(t, "prefs.db", cfg.PreferenceDSN)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("SICBO_COUNTDOWN_SEC", "0")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate_LogFormat(t *testing.T) {
	cfg := Config{CountdownSec: 10, DefaultLanguage: "zh", LogFormat: "xml"}
	assert.Error(t, cfg.Validate())
}

func TestLoad_RejectsUnsupportedDefaultLanguage(t *testing.T) {
	t.Setenv("DEFAULT_LANGUAGE", "fr")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("DEFAULT_LANGUAGE", "en")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.DefaultLanguage)
}

func TestLoad_OriginPatterns(t *testing.T) {
	t.Setenv("WS_ORIGIN_PATTERNS", "localhost:5173,*.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:5173", "*.example.com"}, cfg.OriginPatterns)
}
