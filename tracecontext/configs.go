package tracecontext

// Carrier keys and wire constants for W3C trace-context propagation.
const (
	// TraceparentKey is the W3C header/field name.
	TraceparentKey = "traceparent"

	// TraceIDKey and ParentSpanIDKey are the plain fields written alongside
	// traceparent for consumers that do not speak W3C trace context.
	TraceIDKey      = "trace_id"
	ParentSpanIDKey = "parent_span_id"

	// Version is the only traceparent version this package produces.
	Version = "00"

	// DefaultSampled is the flags field used when the caller supplies none.
	DefaultSampled = "01"
)
