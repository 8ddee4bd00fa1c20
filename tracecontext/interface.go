package tracecontext

import "go.opentelemetry.io/otel/propagation"

// Carrier is any key/value store trace context can be read from or written to.
// HTTP headers (propagation.HeaderCarrier), plain string maps
// (propagation.MapCarrier) and decoded JSON payloads (PayloadCarrier) all
// satisfy it.
type Carrier = propagation.TextMapCarrier

// Fallback supplies the last-used ids consulted when a traceparent is built
// without explicit ids. The exporter client implements it.
type Fallback interface {
	LastTraceID() string
	LastParentSpanID() string
}
