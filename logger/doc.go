// Package logger provides the structured zap logger used across devicetel.
//
// LoggerClient wraps a *zap.Logger with a small error-first API: every call
// takes a message, an optional error and any number of field maps. The
// *WithContext variants add trace_id and span_id when the context carries a
// valid span context, which includes the remote contexts produced by
// tracecontext.ContextWith, so device logs correlate with exported spans.
//
// Direct usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		EnableTracing: true,
//		ServiceName:   "sensor-node",
//	})
//	log.InfoWithContext(ctx, "reading published", nil, map[string]interface{}{
//		"topic": "sensors/temperature",
//	})
//
// With fx, supply a logger.Config and include FXModule, which provides both
// *LoggerClient and the Logger interface and flushes the logger on stop.
//
// Packages that log define their own narrow Logger interface with just the
// methods they call; *LoggerClient satisfies all of them. Nop returns a
// logger that discards everything, for tests and library defaults.
package logger
