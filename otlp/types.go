package otlp

// AnyValue is the OTLP value wrapper. This client only ever produces string values.
type AnyValue struct {
	StringValue string `json:"stringValue"`
}

// KeyValue is one OTLP attribute.
type KeyValue struct {
	Key   string   `json:"key"`
	Value AnyValue `json:"value"`
}

// String builds a pre-shaped string attribute.
func String(key, value string) KeyValue {
	return KeyValue{Key: key, Value: AnyValue{StringValue: value}}
}

// Resource is the static attribute set attached to every document.
type Resource struct {
	Attributes []KeyValue `json:"attributes"`
}

// Scope names the instrumentation scope.
type Scope struct {
	Name string `json:"name"`
}

// Span is the wire form of one finalized span.
type Span struct {
	TraceID           string     `json:"traceId"`
	SpanID            string     `json:"spanId"`
	ParentSpanID      string     `json:"parentSpanId"`
	Name              string     `json:"name"`
	Kind              int        `json:"kind"`
	StartTimeUnixNano int64      `json:"startTimeUnixNano"`
	EndTimeUnixNano   int64      `json:"endTimeUnixNano"`
	Attributes        []KeyValue `json:"attributes"`
}

// TracesDocument is the body of a /v1/traces export.
type TracesDocument struct {
	ResourceSpans []ResourceSpans `json:"resourceSpans"`
}

type ResourceSpans struct {
	Resource   Resource     `json:"resource"`
	ScopeSpans []ScopeSpans `json:"scopeSpans"`
}

type ScopeSpans struct {
	Scope Scope  `json:"scope"`
	Spans []Span `json:"spans"`
}

// MetricsDocument is the body of a /v1/metrics export.
type MetricsDocument struct {
	ResourceMetrics []ResourceMetrics `json:"resourceMetrics"`
}

type ResourceMetrics struct {
	Resource     Resource       `json:"resource"`
	ScopeMetrics []ScopeMetrics `json:"scopeMetrics"`
}

type ScopeMetrics struct {
	Scope   Scope    `json:"scope"`
	Metrics []Metric `json:"metrics"`
}

// Metric holds exactly one of Gauge, Sum or Histogram.
type Metric struct {
	Name      string     `json:"name"`
	Unit      string     `json:"unit"`
	Gauge     *Gauge     `json:"gauge,omitempty"`
	Sum       *Sum       `json:"sum,omitempty"`
	Histogram *Histogram `json:"histogram,omitempty"`
}

type Gauge struct {
	DataPoints []NumberDataPoint `json:"dataPoints"`
}

type Sum struct {
	DataPoints             []NumberDataPoint      `json:"dataPoints"`
	IsMonotonic            bool                   `json:"isMonotonic"`
	AggregationTemporality AggregationTemporality `json:"aggregationTemporality"`
}

type Histogram struct {
	DataPoints             []HistogramDataPoint   `json:"dataPoints"`
	AggregationTemporality AggregationTemporality `json:"aggregationTemporality"`
}

type NumberDataPoint struct {
	TimeUnixNano int64      `json:"timeUnixNano"`
	Attributes   []KeyValue `json:"attributes"`
	AsInt        int64      `json:"asInt"`
}

type HistogramDataPoint struct {
	TimeUnixNano   int64      `json:"timeUnixNano"`
	Attributes     []KeyValue `json:"attributes"`
	Count          uint64     `json:"count"`
	Sum            float64    `json:"sum"`
	BucketCounts   []uint64   `json:"bucketCounts"`
	ExplicitBounds []float64  `json:"explicitBounds"`
}

// LogsDocument is the body of a /v1/logs export.
type LogsDocument struct {
	ResourceLogs []ResourceLogs `json:"resourceLogs"`
}

type ResourceLogs struct {
	Resource  Resource    `json:"resource"`
	ScopeLogs []ScopeLogs `json:"scopeLogs"`
}

type ScopeLogs struct {
	Scope      Scope       `json:"scope"`
	LogRecords []LogRecord `json:"logRecords"`
}

// LogRecord is the wire form of one log entry. TraceId and SpanId keep the
// capitalisation existing collectors pipelines were configured against.
type LogRecord struct {
	TimeUnixNano int64      `json:"timeUnixNano"`
	TraceID      string     `json:"TraceId,omitempty"`
	SpanID       string     `json:"SpanId,omitempty"`
	Body         AnyValue   `json:"body"`
	Attributes   []KeyValue `json:"attributes"`
	SeverityText string     `json:"severityText,omitempty"`
}

// MetricSample describes a single metric point to export.
type MetricSample struct {
	Name         string
	Unit         string
	TimeUnixNano int64
	Attributes   Attributes
	Kind         MetricKind

	// Value is the asInt of gauge and sum points, and the histogram sum when Sum is nil.
	Value int64

	// IsMonotonic applies to sums; nil means true.
	IsMonotonic *bool

	// Temporality applies to sums and histograms; unspecified means cumulative.
	Temporality AggregationTemporality

	// Histogram-only fields. A nil Count means 1.
	Count          *uint64
	Sum            *float64
	BucketCounts   []uint64
	ExplicitBounds []float64
}

// Log describes a single log record to export.
type Log struct {
	TimeUnixNano int64
	Body         string
	Attributes   Attributes
	SeverityText string
	TraceID      string
	SpanID       string
}
