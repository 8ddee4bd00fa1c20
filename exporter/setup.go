package exporter

import (
	"context"
	"sync"

	"github.com/aalemi-dev/devicetel/clock"
	"github.com/aalemi-dev/devicetel/ids"
	"github.com/aalemi-dev/devicetel/observability"
	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/spans"
	"github.com/aalemi-dev/devicetel/tracecontext"
	"github.com/aalemi-dev/devicetel/transport"
)

// Client records spans, metrics and logs and ships each one as a
// single-record OTLP/JSON document through its transport.
//
// Delivery is best effort: transport errors and non-2xx answers are logged
// and reported to the observer, never returned. A Client is safe for
// concurrent use. The With* methods are meant for construction time only.
type Client struct {
	cfg Config

	// mu serialises access to the span registry
	mu       sync.Mutex
	registry *spans.Registry

	builder   *otlp.Builder
	codec     *tracecontext.Builder
	ids       ids.Generator
	clock     clock.Clock
	transport transport.Transport
	logger    Logger
	observer  observability.Observer

	// last-used ids, consulted by the codec; guarded separately so the
	// codec never needs mu
	lastMu           sync.RWMutex
	lastTraceID      string
	lastParentSpanID string
}

// NewClient creates a Client sending through t. A nil t discards everything.
// The clock defaults to an unsynced system clock and ids come from
// ids.NewGenerator().
func NewClient(cfg Config, t transport.Transport) *Client {
	if cfg.Sampled == "" {
		cfg.Sampled = DefaultSampled
	}
	if t == nil {
		t = transport.Discard
	}

	c := &Client{
		cfg:       cfg,
		builder:   otlp.NewBuilder(otlp.StringMap(cfg.Resource)),
		ids:       ids.NewGenerator(),
		clock:     clock.NewSystemClock(clock.Config{}),
		transport: t,
	}
	c.rebuild()
	c.lastTraceID = c.ids.NewTraceID()
	return c
}

// WithClock replaces the timestamp source.
func (c *Client) WithClock(clk clock.Clock) *Client {
	c.clock = clk
	c.rebuild()
	return c
}

// WithGenerator replaces the identifier source and redraws the initial
// fallback trace id from it.
func (c *Client) WithGenerator(gen ids.Generator) *Client {
	c.ids = gen
	c.rebuild()
	c.lastMu.Lock()
	c.lastTraceID = gen.NewTraceID()
	c.lastMu.Unlock()
	return c
}

// WithLogger attaches a logger. Without one the client is silent.
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	c.rebuild()
	return c
}

// WithObserver attaches an observer notified after every export attempt.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// WithResource replaces the resource attributes attached to every document.
func (c *Client) WithResource(resource otlp.Attributes) *Client {
	c.builder = otlp.NewBuilder(resource)
	return c
}

func (c *Client) rebuild() {
	registry := spans.NewRegistry(c.clock, c.ids)
	if c.logger != nil {
		registry = registry.WithLogger(c.logger)
	}
	c.registry = registry
	c.codec = tracecontext.NewBuilder(c, c.ids)
}

// Resource returns the resource attached to every document.
func (c *Client) Resource() otlp.Resource {
	return c.builder.Resource()
}

// StartTrace opens a span and makes it the fallback context for traceparents
// built without explicit ids. parentTraceID continues an existing trace and
// may be 32 hex characters or a decimal integer string; empty starts a new
// trace. parentSpanID is recorded verbatim.
func (c *Client) StartTrace(ctx context.Context, name string, kind spans.Kind, attrs otlp.Attributes, parentTraceID, parentSpanID string) (string, string, error) {
	if err := attrs.Validate(); err != nil {
		return "", "", err
	}

	c.mu.Lock()
	traceID, spanID := c.registry.Start(ctx, spans.StartOptions{
		Name:         name,
		Kind:         kind,
		TraceID:      parentTraceID,
		ParentSpanID: parentSpanID,
		Attributes:   attrs.KeyValues(),
	})
	c.mu.Unlock()

	c.setLast(traceID, spanID)
	return traceID, spanID, nil
}

// EndTrace finalizes the span and exports it to /v1/traces. An unknown or
// already-ended span id logs a warning and returns ok=false without sending.
// The returned error only reports encoding failures.
func (c *Client) EndTrace(ctx context.Context, spanID string) (spans.Span, bool, error) {
	c.mu.Lock()
	span, ok := c.registry.End(ctx, spanID)
	c.mu.Unlock()
	if !ok {
		return spans.Span{}, false, nil
	}

	doc := c.builder.BuildTrace(span.Record())
	return span, true, c.send(ctx, otlp.SignalTraces, doc)
}

// ExportMetric exports one metric point to /v1/metrics. A zero TimeUnixNano
// is stamped with the current time.
func (c *Client) ExportMetric(ctx context.Context, sample otlp.MetricSample) error {
	if err := sample.Attributes.Validate(); err != nil {
		return err
	}
	if sample.TimeUnixNano == 0 {
		sample.TimeUnixNano = c.clock.NowUnixNano()
	}

	doc, err := c.builder.BuildMetric(sample)
	if err != nil {
		return err
	}
	return c.send(ctx, otlp.SignalMetrics, doc)
}

// SendGaugeMetric exports an integer gauge point.
func (c *Client) SendGaugeMetric(ctx context.Context, name string, value int64, attrs otlp.Attributes) error {
	return c.ExportMetric(ctx, otlp.MetricSample{
		Name:       name,
		Kind:       otlp.KindGauge,
		Value:      value,
		Attributes: attrs,
	})
}

// SendCounterMetric exports a monotonic cumulative sum point.
func (c *Client) SendCounterMetric(ctx context.Context, name string, value int64, attrs otlp.Attributes) error {
	monotonic := true
	return c.ExportMetric(ctx, otlp.MetricSample{
		Name:        name,
		Kind:        otlp.KindSum,
		Value:       value,
		Attributes:  attrs,
		IsMonotonic: &monotonic,
		Temporality: otlp.TemporalityCumulative,
	})
}

// SendHistogramMetric exports a cumulative histogram point. Bucket counts
// and bounds are passed through as given.
func (c *Client) SendHistogramMetric(ctx context.Context, name string, sum float64, count uint64, bucketCounts []uint64, explicitBounds []float64, attrs otlp.Attributes) error {
	return c.ExportMetric(ctx, otlp.MetricSample{
		Name:           name,
		Kind:           otlp.KindHistogram,
		Attributes:     attrs,
		Temporality:    otlp.TemporalityCumulative,
		Count:          &count,
		Sum:            &sum,
		BucketCounts:   bucketCounts,
		ExplicitBounds: explicitBounds,
	})
}

// Log exports a log record correlated with traceID and spanID.
func (c *Client) Log(ctx context.Context, traceID, spanID, body string, attrs otlp.Attributes) error {
	if err := attrs.Validate(); err != nil {
		return err
	}
	doc := c.builder.BuildLog(otlp.Log{
		TimeUnixNano: c.clock.NowUnixNano(),
		Body:         body,
		Attributes:   attrs,
		TraceID:      traceID,
		SpanID:       spanID,
	})
	return c.send(ctx, otlp.SignalLogs, doc)
}

// SendLog exports a log record with a severity. Trace correlation is optional.
func (c *Client) SendLog(ctx context.Context, body string, attrs otlp.Attributes, opts LogOptions) error {
	if err := attrs.Validate(); err != nil {
		return err
	}
	severity := opts.SeverityText
	if severity == "" {
		severity = DefaultSeverityText
	}
	ts := opts.TimeUnixNano
	if ts == 0 {
		ts = c.clock.NowUnixNano()
	}

	doc := c.builder.BuildLog(otlp.Log{
		TimeUnixNano: ts,
		Body:         body,
		Attributes:   attrs,
		SeverityText: severity,
		TraceID:      opts.TraceID,
		SpanID:       opts.SpanID,
	})
	return c.send(ctx, otlp.SignalLogs, doc)
}

// LastTraceID implements tracecontext.Fallback.
func (c *Client) LastTraceID() string {
	c.lastMu.RLock()
	defer c.lastMu.RUnlock()
	return c.lastTraceID
}

// LastParentSpanID implements tracecontext.Fallback. It is the span id of
// the most recently started span, or empty before the first one.
func (c *Client) LastParentSpanID() string {
	c.lastMu.RLock()
	defer c.lastMu.RUnlock()
	return c.lastParentSpanID
}

// ActiveSpans returns copies of the spans started but not yet ended.
func (c *Client) ActiveSpans() []spans.Span {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Active()
}

func (c *Client) setLast(traceID, spanID string) {
	c.lastMu.Lock()
	defer c.lastMu.Unlock()
	c.lastTraceID = traceID
	c.lastParentSpanID = spanID
}
