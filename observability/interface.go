package observability

import "time"

// Observer receives one event per completed export attempt or bridge
// operation. Components work without an observer; the metrics package
// provides the Prometheus-backed implementation.
type Observer interface {
	// ObserveOperation is called when an operation completes.
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a completed operation.
type OperationContext struct {
	// Component identifies the reporting package.
	// Examples: "otlphttp", "kafka", "mqtt", "exporter"
	Component string

	// Operation describes what was performed.
	// Examples: "export", "publish", "receive"
	Operation string

	// Resource identifies the primary target.
	// Examples:
	//   otlphttp: signal path ("/v1/traces")
	//   kafka:    topic ("otlp_spans")
	//   mqtt:     topic ("sensors/temperature")
	Resource string

	// SubResource carries secondary addressing (optional).
	// Examples: the OTLP signal name ("traces") for kafka sends
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the operation's error; nil means success. Non-2xx collector
	// answers are reported as errors wrapping transport.ErrNonSuccessStatus.
	Error error

	// Size is the payload size in bytes (optional).
	Size int64

	// Metadata carries extra operation-specific values (optional).
	// Examples: {"status_code": 503}, {"partition": 2}
	Metadata map[string]interface{}
}
