package exporter

import (
	"context"

	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/spans"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

// Exporter is the telemetry surface offered to application code. *Client
// implements it; bridges such as mqtt and httptrace depend on this interface.
type Exporter interface {
	tracecontext.Fallback

	StartTrace(ctx context.Context, name string, kind spans.Kind, attrs otlp.Attributes, parentTraceID, parentSpanID string) (traceID, spanID string, err error)
	EndTrace(ctx context.Context, spanID string) (spans.Span, bool, error)

	ExportMetric(ctx context.Context, sample otlp.MetricSample) error
	SendGaugeMetric(ctx context.Context, name string, value int64, attrs otlp.Attributes) error
	SendCounterMetric(ctx context.Context, name string, value int64, attrs otlp.Attributes) error
	SendHistogramMetric(ctx context.Context, name string, sum float64, count uint64, bucketCounts []uint64, explicitBounds []float64, attrs otlp.Attributes) error

	Log(ctx context.Context, traceID, spanID, body string, attrs otlp.Attributes) error
	SendLog(ctx context.Context, body string, attrs otlp.Attributes, opts LogOptions) error

	BuildTraceparent(traceID, spanID, sampled string) string
	InjectContext(carrier tracecontext.Carrier, traceID, spanID, sampled string) tracecontext.TraceContext
	InjectHeaders(carrier tracecontext.Carrier, traceID, spanID, sampled string) string
	ExtractContext(carrier tracecontext.Carrier) tracecontext.TraceContext
	HandleMessage(ctx context.Context, name string, payload []byte, attrs otlp.Attributes) (traceID, spanID string, err error)

	ContextWithSpan(ctx context.Context, traceID, spanID string) context.Context
	ActiveSpans() []spans.Span
}

// LogOptions carries the optional fields of SendLog.
type LogOptions struct {
	// TraceID and SpanID are emitted only when set.
	TraceID string
	SpanID  string

	// SeverityText defaults to "INFO".
	SeverityText string

	// TimeUnixNano overrides the record timestamp; zero means now.
	TimeUnixNano int64
}
