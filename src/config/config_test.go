package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"index-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	t.Setenv(EnvDatasetPath, "")
	t.Setenv(EnvGeminiAPIKey, "")

	cfg, err := Parse([]byte("name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/dump.csv", cfg.Dataset.Path)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, models.Range1M, cfg.Range())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())

	anchor, err := cfg.AnchorDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC), anchor)
}

func TestParseKeepsExplicitFalse(t *testing.T) {
	cfg, err := Parse([]byte("cache:\n  enabled: false\n"))
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"low port", "port: 80\n"},
		{"bad anchor", "anchor:\n  date: 23/03/2024\n"},
		{"bad range", "default_range: 2W\n"},
		{"bad log level", "log_level: loud\n"},
		{"bad request timeout", "dataset:\n  request_timeout: soon\n"},
		{"analysis without key", "analysis:\n  enabled: true\n"},
	}

	t.Setenv(EnvGeminiAPIKey, "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvDatasetPath, "/tmp/other.csv")
	t.Setenv(EnvGeminiAPIKey, "secret")

	cfg, err := Parse([]byte("analysis:\n  enabled: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.csv", cfg.Dataset.Path)
	assert.Equal(t, "secret", cfg.Analysis.APIKey)
	assert.Equal(t, 30*time.Second, cfg.AnalysisTimeout())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("INDEX_OBSERVER_TEST_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("INDEX_OBSERVER_TEST_KEY") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-dotenv", os.Getenv("INDEX_OBSERVER_TEST_KEY"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte("name: saved\nport: 9090\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.Name)
	assert.Equal(t, 9090, loaded.Port)
}
