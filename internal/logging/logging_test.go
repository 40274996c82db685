package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: "json", Output: &buf}).With(String("backend", "cpu"))

	l.Info(context.Background(), "frame", Int("pixels", 12), Float("coherence", 0.5), Bool("playing", true))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "frame", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "cpu", rec["backend"])
	assert.Equal(t, 12.0, rec["pixels"])
	assert.Equal(t, 0.5, rec["coherence"])
	assert.Equal(t, true, rec["playing"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})

	l.Debug(context.Background(), "hidden")
	l.Info(context.Background(), "hidden too")
	l.Warn(context.Background(), "shown")
	l.Error(context.Background(), "failed", Err(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "error=boom")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]string{
		"debug": "DEBUG", "WARNING": "WARN", "error": "ERROR", "": "INFO", "verbose": "INFO",
	} {
		assert.Equal(t, want, parseLevel(in).Level().String(), in)
	}
}

func TestNewFromEnvDebugOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")

	l, ok := NewFromEnv(true).(*slogger)
	require.True(t, ok)
	assert.True(t, l.l.Enabled(context.Background(), -4))
}

func TestNoopDropsEverything(t *testing.T) {
	l := Noop().With(String("k", "v"))
	l.Debug(context.Background(), "x")
	l.Info(context.Background(), "x")
	l.Warn(context.Background(), "x")
	l.Error(context.Background(), "x")
	assert.Equal(t, noopLogger{}, l)
}
