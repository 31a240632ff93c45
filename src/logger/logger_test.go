package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerJSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "INFO", "json", "engine")

	l.Info("loaded %d rows", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "loaded 42 rows", entry["message"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "WARNING", "json", "engine")

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warning("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNamedLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "DEBUG", "json", "root").Named("server")

	l.Error("boom")
	assert.Contains(t, buf.String(), `"component":"server"`)
}

func TestNopLoggerDiscards(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Info("nothing")
		l.Error("nothing")
	})
}
