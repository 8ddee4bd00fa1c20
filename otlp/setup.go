package otlp

import (
	"encoding/json"
	"fmt"
)

// Builder wraps records into single-record OTLP documents sharing one Resource
// and one scope name.
type Builder struct {
	resource Resource
	scope    Scope
}

// NewBuilder returns a Builder attaching resource to every document. The
// resource is copied, so later changes to the caller's slice are not observed.
func NewBuilder(resource Attributes) *Builder {
	return &Builder{
		resource: Resource{Attributes: resource.KeyValues()},
		scope:    Scope{Name: ScopeName},
	}
}

// Resource returns a copy of the resource attributes.
func (b *Builder) Resource() Resource {
	attrs := make([]KeyValue, len(b.resource.Attributes))
	copy(attrs, b.resource.Attributes)
	return Resource{Attributes: attrs}
}

// BuildTrace wraps one finalized span into resourceSpans[0].scopeSpans[0].spans[0].
func (b *Builder) BuildTrace(span Span) TracesDocument {
	if span.Attributes == nil {
		span.Attributes = []KeyValue{}
	}
	return TracesDocument{
		ResourceSpans: []ResourceSpans{{
			Resource: b.Resource(),
			ScopeSpans: []ScopeSpans{{
				Scope: b.scope,
				Spans: []Span{span},
			}},
		}},
	}
}

// BuildMetric wraps one metric point into resourceMetrics[0].scopeMetrics[0].metrics[0].
func (b *Builder) BuildMetric(sample MetricSample) (MetricsDocument, error) {
	metric, err := buildMetric(sample)
	if err != nil {
		return MetricsDocument{}, err
	}
	return MetricsDocument{
		ResourceMetrics: []ResourceMetrics{{
			Resource: b.Resource(),
			ScopeMetrics: []ScopeMetrics{{
				Scope:   b.scope,
				Metrics: []Metric{metric},
			}},
		}},
	}, nil
}

// BuildLog wraps one log record into resourceLogs[0].scopeLogs[0].logRecords[0].
// TraceId and SpanId are only emitted when set.
func (b *Builder) BuildLog(log Log) LogsDocument {
	record := LogRecord{
		TimeUnixNano: log.TimeUnixNano,
		TraceID:      log.TraceID,
		SpanID:       log.SpanID,
		Body:         AnyValue{StringValue: log.Body},
		Attributes:   log.Attributes.KeyValues(),
		SeverityText: log.SeverityText,
	}
	return LogsDocument{
		ResourceLogs: []ResourceLogs{{
			Resource: b.Resource(),
			ScopeLogs: []ScopeLogs{{
				Scope:      b.scope,
				LogRecords: []LogRecord{record},
			}},
		}},
	}
}

// Encode serializes a document to its JSON wire form.
func Encode(doc interface{}) ([]byte, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode OTLP document: %w", err)
	}
	return body, nil
}

func buildMetric(sample MetricSample) (Metric, error) {
	attrs := withoutFiltered(sample.Attributes.KeyValues())
	temporality := sample.Temporality
	if temporality == TemporalityUnspecified {
		temporality = TemporalityCumulative
	}

	metric := Metric{Name: sample.Name, Unit: sample.Unit}

	switch sample.Kind {
	case KindGauge:
		metric.Gauge = &Gauge{
			DataPoints: []NumberDataPoint{{
				TimeUnixNano: sample.TimeUnixNano,
				Attributes:   attrs,
				AsInt:        sample.Value,
			}},
		}
	case KindSum:
		monotonic := true
		if sample.IsMonotonic != nil {
			monotonic = *sample.IsMonotonic
		}
		metric.Sum = &Sum{
			DataPoints: []NumberDataPoint{{
				TimeUnixNano: sample.TimeUnixNano,
				Attributes:   attrs,
				AsInt:        sample.Value,
			}},
			IsMonotonic:            monotonic,
			AggregationTemporality: temporality,
		}
	case KindHistogram:
		count := uint64(1)
		if sample.Count != nil {
			count = *sample.Count
		}
		sum := float64(sample.Value)
		if sample.Sum != nil {
			sum = *sample.Sum
		}
		buckets := sample.BucketCounts
		if buckets == nil {
			buckets = []uint64{}
		}
		bounds := sample.ExplicitBounds
		if bounds == nil {
			bounds = []float64{}
		}
		metric.Histogram = &Histogram{
			DataPoints: []HistogramDataPoint{{
				TimeUnixNano:   sample.TimeUnixNano,
				Attributes:     attrs,
				Count:          count,
				Sum:            sum,
				BucketCounts:   buckets,
				ExplicitBounds: bounds,
			}},
			AggregationTemporality: temporality,
		}
	default:
		return Metric{}, fmt.Errorf("%w: %q", ErrUnsupportedMetricKind, sample.Kind)
	}

	return metric, nil
}
