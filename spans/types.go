package spans

import (
	"time"

	"github.com/aalemi-dev/devicetel/otlp"
)

// Span is an in-flight or finalized span record.
type Span struct {
	TraceID           string
	SpanID            string
	ParentSpanID      string
	Name              string
	Kind              Kind
	StartTimeUnixNano int64
	EndTimeUnixNano   int64
	Attributes        []otlp.KeyValue
}

// Ended reports whether the span has an end timestamp.
func (s Span) Ended() bool {
	return s.EndTimeUnixNano != 0
}

// Duration is the time between start and end, or zero while the span is active.
func (s Span) Duration() time.Duration {
	if !s.Ended() {
		return 0
	}
	return time.Duration(s.EndTimeUnixNano - s.StartTimeUnixNano)
}

// Record converts the span into its OTLP wire form.
func (s Span) Record() otlp.Span {
	attrs := s.Attributes
	if attrs == nil {
		attrs = []otlp.KeyValue{}
	}
	return otlp.Span{
		TraceID:           s.TraceID,
		SpanID:            s.SpanID,
		ParentSpanID:      s.ParentSpanID,
		Name:              s.Name,
		Kind:              int(s.Kind),
		StartTimeUnixNano: s.StartTimeUnixNano,
		EndTimeUnixNano:   s.EndTimeUnixNano,
		Attributes:        attrs,
	}
}

// StartOptions describes a span to open.
type StartOptions struct {
	Name string
	Kind Kind

	// TraceID continues an existing trace when set. It is normalized with
	// tracecontext.NormalizeTraceID; empty means start a new trace.
	TraceID string

	// ParentSpanID is recorded verbatim; empty marks a root span.
	ParentSpanID string

	Attributes []otlp.KeyValue
}
