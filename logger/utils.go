package logger

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field keys added by the *WithContext methods.
const (
	TraceIDField = "trace_id"
	SpanIDField  = "span_id"
)

// Debug logs at debug level: span registry events and export results.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.DebugLevel, msg, err, fields)
}

// Info logs lifecycle messages such as connects and starts.
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.InfoLevel, msg, err, fields)
}

// Warn logs recoverable problems: failed exports, unknown spans, an
// implausible clock.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.WarnLevel, msg, err, fields)
}

// Error logs failures the device cannot work around by itself.
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.ErrorLevel, msg, err, fields)
}

// Fatal logs and exits the process with status 1.
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.FatalLevel, msg, err, fields)
}

// DebugWithContext is Debug with trace correlation fields taken from ctx.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.DebugLevel, msg, err, fields)
}

// InfoWithContext is Info with trace correlation fields taken from ctx.
//
//	log.InfoWithContext(ctx, "command received", nil, map[string]interface{}{
//	    "topic": "devices/esp32-07/cmd",
//	})
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.InfoLevel, msg, err, fields)
}

// WarnWithContext is Warn with trace correlation fields taken from ctx.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.WarnLevel, msg, err, fields)
}

// ErrorWithContext is Error with trace correlation fields taken from ctx.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.ErrorLevel, msg, err, fields)
}

// FatalWithContext is Fatal with trace correlation fields taken from ctx.
func (l *LoggerClient) FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.FatalLevel, msg, err, fields)
}

// write skips field conversion entirely when the level is disabled, which
// keeps per-span debug calls cheap on small devices.
func (l *LoggerClient) write(ctx context.Context, level zapcore.Level, msg string, err error, fields []map[string]interface{}) {
	ce := l.Zap.Check(level, msg)
	if ce == nil {
		return
	}
	zf := l.convertToZapFields(err, fields...)
	if ctx != nil {
		zf = append(zf, l.extractTracingFields(ctx)...)
	}
	ce.Write(zf...)
}

// extractTracingFields returns trace_id and span_id for any valid span
// context in ctx, recording or remote. A context built by
// tracecontext.ContextWith after reading a traceparent qualifies.
func (l *LoggerClient) extractTracingFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}

	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.String(TraceIDField, sc.TraceID().String()),
		zap.String(SpanIDField, sc.SpanID().String()),
	}
}

// convertToZapFields flattens err and the field maps. Keys are emitted in
// sorted order per map; a key repeated in a later map is logged again.
func (l *LoggerClient) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var out []zap.Field
	if err != nil {
		out = append(out, zap.Error(err))
	}

	for _, m := range fields {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, zap.Any(k, m[k]))
		}
	}
	return out
}
