package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/devicetel/tracecontext"
)

const testTraceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

func newObservedLogger(level zapcore.Level, tracingEnabled bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &LoggerClient{Zap: zap.New(core), tracingEnabled: tracingEnabled}, logs
}

func spanContext(t *testing.T) context.Context {
	t.Helper()
	tc, ok := tracecontext.ParseTraceparent(testTraceparent)
	require.True(t, ok)
	return tracecontext.ContextWith(context.Background(), tc)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		Debug:     zapcore.DebugLevel,
		Info:      zapcore.InfoLevel,
		Warning:   zapcore.WarnLevel,
		"WARN":    zapcore.WarnLevel,
		Error:     zapcore.ErrorLevel,
		" error ": zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for name, want := range cases {
		assert.Equal(t, want, parseLevel(name), name)
	}
}

func TestNewLoggerClient_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := newLoggerClient(Config{Level: Info, ServiceName: "sensor-node", EnableTracing: true}, &buf)

	l.InfoWithContext(spanContext(t), "reading published", errors.New("partial"), map[string]interface{}{
		"topic": "sensors/temperature",
	})
	l.Debug("suppressed", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "reading published", entry["msg"])
	assert.Equal(t, "sensor-node", entry["service"])
	assert.Equal(t, "partial", entry["error"])
	assert.Equal(t, "sensors/temperature", entry["topic"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry[TraceIDField])
	assert.Equal(t, "00f067aa0ba902b7", entry[SpanIDField])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "pid")
	assert.Contains(t, entry, "caller")
}

func TestNewLoggerClient_Defaults(t *testing.T) {
	t.Parallel()

	l := NewLoggerClient(Config{})
	require.NotNil(t, l.Zap)
	assert.False(t, l.tracingEnabled)
	assert.True(t, l.Zap.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Zap.Core().Enabled(zapcore.DebugLevel))
}

func TestLevels(t *testing.T) {
	t.Parallel()

	l, logs := newObservedLogger(zapcore.DebugLevel, false)
	l.Debug("d", nil)
	l.Info("i", nil)
	l.Warn("w", nil)
	l.Error("e", errors.New("boom"))

	ctx := context.Background()
	l.DebugWithContext(ctx, "dc", nil)
	l.InfoWithContext(ctx, "ic", nil)
	l.WarnWithContext(ctx, "wc", nil)
	l.ErrorWithContext(ctx, "ec", nil)

	want := []zapcore.Level{
		zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel,
		zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel,
	}
	entries := logs.All()
	require.Len(t, entries, len(want))
	for i, e := range entries {
		assert.Equal(t, want[i], e.Level, e.Message)
	}
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestDisabledLevelSkipsEntry(t *testing.T) {
	t.Parallel()

	l, logs := newObservedLogger(zapcore.WarnLevel, true)
	l.DebugWithContext(spanContext(t), "span started", nil)
	l.Info("exporter started", nil)
	assert.Zero(t, logs.Len())
}

func TestConvertToZapFields(t *testing.T) {
	t.Parallel()

	l, _ := newObservedLogger(zapcore.DebugLevel, false)

	assert.Empty(t, l.convertToZapFields(nil))

	fields := l.convertToZapFields(errors.New("x"),
		map[string]interface{}{"b": 2, "a": 1},
		map[string]interface{}{"c": 3},
	)
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"error", "a", "b", "c"}, keys)
}

func TestExtractTracingFields(t *testing.T) {
	t.Parallel()

	enabled, _ := newObservedLogger(zapcore.DebugLevel, true)
	disabled, _ := newObservedLogger(zapcore.DebugLevel, false)

	assert.Empty(t, disabled.extractTracingFields(spanContext(t)))
	assert.Empty(t, enabled.extractTracingFields(context.Background()))
	//nolint:staticcheck // nil context guard
	assert.Empty(t, enabled.extractTracingFields(nil))

	fields := enabled.extractTracingFields(spanContext(t))
	require.Len(t, fields, 2)
	assert.Equal(t, TraceIDField, fields[0].Key)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields[0].String)
	assert.Equal(t, "00f067aa0ba902b7", fields[1].String)
}

func TestNop(t *testing.T) {
	t.Parallel()

	l := Nop()
	require.NotNil(t, l.Zap)
	assert.NotPanics(t, func() {
		l.WarnWithContext(spanContext(t), "ignored", errors.New("x"))
	})

	var _ Logger = l
}
