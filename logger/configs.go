package logger

// Log level names accepted by Config.Level.
const (
	// Debug enables verbose output, including per-span registry events.
	Debug = "debug"

	// Info logs export activity and lifecycle messages.
	Info = "info"

	// Warning logs only unexpected but recoverable conditions, such as
	// ending an unknown span or an implausible wall clock.
	Warning = "warning"

	// Error logs only failed exports and broker errors.
	Error = "error"
)

// Config defines the configuration for the logger.
type Config struct {
	// Level determines the minimum log level that will be output.
	// Valid values are "debug", "info", "warning", and "error".
	Level string `yaml:"level" default:"info"`

	// EnableTracing adds trace_id and span_id to *WithContext log entries
	// whenever the context carries a valid span context, local or remote.
	EnableTracing bool `yaml:"enable_tracing" default:"true"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name"`

	// CallerSkip is the number of stack frames to skip when reporting the caller.
	// Default: 1
	CallerSkip int `yaml:"caller_skip" default:"1"`
}
