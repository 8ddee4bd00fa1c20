package httptrace

import (
	"context"

	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/spans"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

// Telemetry is the part of exporter.Exporter used to trace HTTP exchanges.
type Telemetry interface {
	StartTrace(ctx context.Context, name string, kind spans.Kind, attrs otlp.Attributes, parentTraceID, parentSpanID string) (traceID, spanID string, err error)
	EndTrace(ctx context.Context, spanID string) (spans.Span, bool, error)
	InjectHeaders(carrier tracecontext.Carrier, traceID, spanID, sampled string) string
	ExtractContext(carrier tracecontext.Carrier) tracecontext.TraceContext
	ContextWithSpan(ctx context.Context, traceID, spanID string) context.Context
}
