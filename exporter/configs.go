package exporter

import "context"

// Config controls the exporter façade. Transport settings live with the
// transport package that is wired in (otlphttp or kafka).
type Config struct {
	// Resource is attached to every exported document, e.g.
	// {"service.name": "greenhouse-node", "host.name": "esp32-07"}.
	Resource map[string]string `yaml:"resource"`

	// Sampled is the flags field written into traceparents built without
	// an explicit value.
	// Default: "01"
	Sampled string `yaml:"sampled" default:"01"`

	// SyncClock runs the clock's time sync on start when the clock supports it.
	// Default: true
	SyncClock bool `yaml:"sync_clock" default:"true"`
}

// Logger is the subset of logger.Logger used by the client.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Default values and well-known names.
const (
	DefaultSampled = "01"

	// DefaultSeverityText is the severity of SendLog records without one.
	DefaultSeverityText = "INFO"

	// MessageSpanName is the span name HandleMessage uses when none is given.
	MessageSpanName = "recv_message"

	// componentName identifies the exporter in observability events.
	componentName = "exporter"
)
