package tracecontext

import (
	"fmt"
	"strings"

	"github.com/aalemi-dev/devicetel/ids"
)

// TraceContext is the ephemeral context carried across a transport boundary.
// Empty strings mean the field is absent.
type TraceContext struct {
	TraceID      string
	ParentSpanID string
	Sampled      string
}

// IsEmpty reports whether neither a trace id nor a parent span id is present.
func (tc TraceContext) IsEmpty() bool {
	return tc.TraceID == "" && tc.ParentSpanID == ""
}

// ParseTraceparent splits s into its four hyphen-delimited fields.
// Any other shape yields ok=false, which callers treat as "start a root trace".
// Version and flags are not validated.
func ParseTraceparent(s string) (TraceContext, bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 4 {
		return TraceContext{}, false
	}
	return TraceContext{
		TraceID:      parts[1],
		ParentSpanID: parts[2],
		Sampled:      parts[3],
	}, true
}

// ParseTraceparentStrict is ParseTraceparent for callers that want a distinct
// error value instead of an absent result.
func ParseTraceparentStrict(s string) (TraceContext, error) {
	tc, ok := ParseTraceparent(s)
	if !ok {
		return TraceContext{}, fmt.Errorf("%w: %q", ErrMalformedTraceparent, s)
	}
	return tc, nil
}

// Extract reads trace context from carrier. A traceparent key takes precedence
// over explicit trace_id / parent_span_id keys; a present but malformed
// traceparent yields an empty context. Missing context is never an error.
func Extract(carrier Carrier) TraceContext {
	if carrier == nil {
		return TraceContext{}
	}
	if key, ok := lookupKey(carrier, TraceparentKey); ok {
		tc, _ := ParseTraceparent(carrier.Get(key))
		return tc
	}
	return TraceContext{
		TraceID:      carrier.Get(TraceIDKey),
		ParentSpanID: carrier.Get(ParentSpanIDKey),
	}
}

// FormatTraceparent renders "00-{trace}-{span}-{sampled}", left-padding the
// trace id to 32 and the span id to 16 characters with zeros.
func FormatTraceparent(traceID, spanID, sampled string) string {
	if sampled == "" {
		sampled = DefaultSampled
	}
	return Version + "-" + zfill(traceID, ids.TraceIDLength) + "-" + zfill(spanID, ids.SpanIDLength) + "-" + sampled
}

// Builder produces traceparents and injects them into carriers, falling back to
// the last-used ids and then to freshly generated ones when ids are absent.
type Builder struct {
	fallback  Fallback
	generator ids.Generator
}

// NewBuilder returns a Builder. fallback may be nil; gen defaults to
// ids.NewGenerator().
func NewBuilder(fallback Fallback, gen ids.Generator) *Builder {
	if gen == nil {
		gen = ids.NewGenerator()
	}
	return &Builder{fallback: fallback, generator: gen}
}

// Build always returns a syntactically valid traceparent, even with no ids.
func (b *Builder) Build(traceID, spanID, sampled string) string {
	return FormatTraceparent(b.resolveTraceID(traceID), b.resolveSpanID(spanID), sampled)
}

// Inject writes traceparent plus the plain trace_id / parent_span_id fields
// into carrier and returns what was written.
func (b *Builder) Inject(carrier Carrier, traceID, spanID, sampled string) TraceContext {
	traceparent := b.Build(traceID, spanID, sampled)
	carrier.Set(TraceparentKey, traceparent)

	if traceID == "" && b.fallback != nil {
		traceID = b.fallback.LastTraceID()
	}
	if spanID == "" && b.fallback != nil {
		spanID = b.fallback.LastParentSpanID()
	}
	carrier.Set(TraceIDKey, traceID)
	carrier.Set(ParentSpanIDKey, spanID)

	tc, _ := ParseTraceparent(traceparent)
	return tc
}

// InjectHeaders writes only the traceparent header.
func (b *Builder) InjectHeaders(carrier Carrier, traceID, spanID, sampled string) string {
	traceparent := b.Build(traceID, spanID, sampled)
	carrier.Set(TraceparentKey, traceparent)
	return traceparent
}

func (b *Builder) resolveTraceID(traceID string) string {
	if traceID != "" {
		return traceID
	}
	if b.fallback != nil {
		if last := b.fallback.LastTraceID(); last != "" {
			return last
		}
	}
	return b.generator.NewTraceID()
}

func (b *Builder) resolveSpanID(spanID string) string {
	if spanID != "" {
		return spanID
	}
	if b.fallback != nil {
		if last := b.fallback.LastParentSpanID(); last != "" {
			return last
		}
	}
	return b.generator.NewSpanID()
}
