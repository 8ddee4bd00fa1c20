package spans

import (
	"context"
	"sort"

	"github.com/aalemi-dev/devicetel/clock"
	"github.com/aalemi-dev/devicetel/ids"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

// Registry tracks active spans by span id between Start and End.
//
// A Registry is not safe for concurrent use; callers serialise access.
// Spans that are never ended stay in the registry for its lifetime.
type Registry struct {
	clock  clock.Clock
	ids    ids.Generator
	logger Logger
	active map[string]*Span
}

// NewRegistry returns an empty registry stamping times from c and drawing
// identifiers from gen.
func NewRegistry(c clock.Clock, gen ids.Generator) *Registry {
	return &Registry{
		clock:  c,
		ids:    gen,
		active: make(map[string]*Span),
	}
}

// WithLogger sets the logger used for unknown-span warnings.
func (r *Registry) WithLogger(logger Logger) *Registry {
	r.logger = logger
	return r
}

// Start opens a span and returns its trace and span ids. The span id is
// always freshly generated.
func (r *Registry) Start(ctx context.Context, opts StartOptions) (traceID, spanID string) {
	traceID = tracecontext.NormalizeTraceID(opts.TraceID)
	if traceID == "" {
		traceID = r.ids.NewTraceID()
	}
	spanID = r.ids.NewSpanID()

	kind := opts.Kind
	if !kind.Valid() {
		kind = KindInternal
	}

	r.active[spanID] = &Span{
		TraceID:           traceID,
		SpanID:            spanID,
		ParentSpanID:      opts.ParentSpanID,
		Name:              opts.Name,
		Kind:              kind,
		StartTimeUnixNano: r.clock.NowUnixNano(),
		Attributes:        opts.Attributes,
	}

	if r.logger != nil {
		r.logger.DebugWithContext(ctx, "span created", nil, map[string]interface{}{
			"name":     opts.Name,
			"kind":     kind.String(),
			"trace_id": traceID,
			"span_id":  spanID,
		})
	}
	return traceID, spanID
}

// End finalizes the span, removes it from the registry and returns the record.
// Unknown or already-ended ids log a warning and return false.
func (r *Registry) End(ctx context.Context, spanID string) (Span, bool) {
	span, ok := r.active[spanID]
	if !ok {
		if r.logger != nil {
			r.logger.WarnWithContext(ctx, "attempted to end unknown span", nil, map[string]interface{}{
				"span_id": spanID,
			})
		}
		return Span{}, false
	}

	delete(r.active, spanID)
	span.EndTimeUnixNano = r.clock.NowUnixNano() + int64(EndBias)
	return *span, true
}

// Get returns a copy of an active span.
func (r *Registry) Get(spanID string) (Span, bool) {
	span, ok := r.active[spanID]
	if !ok {
		return Span{}, false
	}
	return *span, true
}

// Active returns copies of all active spans ordered by start time.
func (r *Registry) Active() []Span {
	out := make([]Span, 0, len(r.active))
	for _, span := range r.active {
		out = append(out, *span)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTimeUnixNano == out[j].StartTimeUnixNano {
			return out[i].SpanID < out[j].SpanID
		}
		return out[i].StartTimeUnixNano < out[j].StartTimeUnixNano
	})
	return out
}

// Len returns the number of active spans.
func (r *Registry) Len() int {
	return len(r.active)
}
