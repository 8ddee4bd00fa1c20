package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient wraps the zap logger shared by the exporter, its transports
// and the device bridges.
//
// LoggerClient implements the Logger interface.
type LoggerClient struct {
	// Zap is the underlying logger, exposed for zap-specific needs such as
	// fx event logging.
	Zap *zap.Logger

	// tracingEnabled adds trace_id/span_id to *WithContext entries.
	tracingEnabled bool
}

// NewLoggerClient returns a JSON logger writing to stderr.
//
// Entries carry an ISO8601 "timestamp", a capitalised "level", the caller,
// and the "pid" and "service" fields.
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "sensor-node",
//	})
//	log.Info("exporter started", nil)
func NewLoggerClient(cfg Config) *LoggerClient {
	return newLoggerClient(cfg, os.Stderr)
}

func newLoggerClient(cfg Config, out io.Writer) *LoggerClient {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.MillisDurationEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(enc),
		zapcore.Lock(zapcore.AddSync(out)),
		zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
	)

	skip := cfg.CallerSkip
	if skip <= 0 {
		skip = 1
	}

	z := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(skip),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(
			zap.Int("pid", os.Getpid()),
			zap.String("service", cfg.ServiceName),
		),
	)
	return &LoggerClient{Zap: z, tracingEnabled: cfg.EnableTracing}
}

// Nop returns a LoggerClient that discards every entry.
func Nop() *LoggerClient {
	return &LoggerClient{Zap: zap.NewNop()}
}

// parseLevel maps a Config level name to a zap level. Unknown names,
// including the empty string, yield info.
func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case Debug:
		return zap.DebugLevel
	case Warning, "warn":
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
