package mqtt

import (
	"context"

	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/spans"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

// Telemetry is the part of exporter.Exporter the bridge records spans and
// logs through.
type Telemetry interface {
	StartTrace(ctx context.Context, name string, kind spans.Kind, attrs otlp.Attributes, parentTraceID, parentSpanID string) (traceID, spanID string, err error)
	EndTrace(ctx context.Context, spanID string) (spans.Span, bool, error)
	Log(ctx context.Context, traceID, spanID, body string, attrs otlp.Attributes) error
	InjectContext(carrier tracecontext.Carrier, traceID, spanID, sampled string) tracecontext.TraceContext
	ExtractContext(carrier tracecontext.Carrier) tracecontext.TraceContext
	ContextWithSpan(ctx context.Context, traceID, spanID string) context.Context
}

// Handler processes one received message. ctx carries the consumer span, so
// publishing from the handler continues the same trace.
type Handler func(ctx context.Context, msg Message) error

// Message is a decoded inbound message.
type Message struct {
	Topic string

	// Payload is the decoded JSON object, including any propagation fields.
	// Numbers are json.Number values.
	Payload map[string]interface{}

	// Raw is the message body as received.
	Raw []byte

	// Parent is the context extracted from the payload; empty for root traces.
	Parent tracecontext.TraceContext

	TraceID string
	SpanID  string
}
