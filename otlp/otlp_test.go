package otlp

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func newTestBuilder() *Builder {
	return NewBuilder(Map(map[string]interface{}{
		"service.name":    "example-device",
		"service.version": "0.1",
		"host.name":       "esp32-example",
	}))
}

// decode round-trips a document through JSON into a generic tree so tests can
// assert on the exact wire field names.
func decode(t *testing.T, doc interface{}) map[string]interface{} {
	t.Helper()
	body, err := Encode(doc)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func path(t *testing.T, v interface{}, keys ...interface{}) interface{} {
	t.Helper()
	for _, k := range keys {
		switch key := k.(type) {
		case string:
			m, ok := v.(map[string]interface{})
			require.True(t, ok, "expected object at %v", key)
			v = m[key]
		case int:
			s, ok := v.([]interface{})
			require.True(t, ok, "expected array at %v", key)
			require.Greater(t, len(s), key)
			v = s[key]
		}
	}
	return v
}

func TestFormatAttributes_Mapping(t *testing.T) {
	t.Parallel()
	kvs, err := FormatAttributes(map[string]interface{}{"unit": "celsius"})

	require.NoError(t, err)
	assert.Equal(t, []KeyValue{{Key: "unit", Value: AnyValue{StringValue: "celsius"}}}, kvs)

	body, err := json.Marshal(kvs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"unit","value":{"stringValue":"celsius"}}]`, string(body))
}

func TestFormatAttributes_StringifiesValues(t *testing.T) {
	t.Parallel()
	kvs, err := FormatAttributes(map[string]interface{}{"b": true, "a": 42, "c": 1.5, "d": nil})

	require.NoError(t, err)
	assert.Equal(t, []KeyValue{String("a", "42"), String("b", "true"), String("c", "1.5"), String("d", "")}, kvs)
}

func TestFormatAttributes_PreShapedPassThrough(t *testing.T) {
	t.Parallel()
	in := []KeyValue{String("z", "1"), String("a", "2")}

	kvs, err := FormatAttributes(in)

	require.NoError(t, err)
	assert.Equal(t, in, kvs)
}

func TestFormatAttributes_NilAndStringMap(t *testing.T) {
	t.Parallel()
	kvs, err := FormatAttributes(nil)
	require.NoError(t, err)
	assert.NotNil(t, kvs)
	assert.Empty(t, kvs)

	kvs, err = FormatAttributes(map[string]string{"source": "mqtt"})
	require.NoError(t, err)
	assert.Equal(t, []KeyValue{String("source", "mqtt")}, kvs)
}

func TestFormatAttributes_BadShape(t *testing.T) {
	t.Parallel()
	for _, in := range []interface{}{"text", 12, []string{"a"}, map[int]string{1: "a"}} {
		_, err := FormatAttributes(in)
		assert.True(t, errors.Is(err, ErrBadAttributeShape), "input %T", in)
	}
}

func TestFromKeyValues(t *testing.T) {
	t.Parallel()
	attrs := FromKeyValues(attribute.String("mqtt.topic", "test/trace"), attribute.Int("qos", 1))

	assert.Equal(t, []KeyValue{String("mqtt.topic", "test/trace"), String("qos", "1")}, attrs.KeyValues())
}

func TestAttributes_ZeroValue(t *testing.T) {
	t.Parallel()
	var attrs Attributes

	assert.True(t, attrs.IsEmpty())
	assert.Equal(t, []KeyValue{}, attrs.KeyValues())
}

func TestBuildMetric_Gauge(t *testing.T) {
	t.Parallel()
	doc, err := newTestBuilder().BuildMetric(MetricSample{
		Name:         "temperature",
		Kind:         KindGauge,
		Value:        24,
		TimeUnixNano: 1700000000000000000,
		Attributes:   PreShaped(String("unit", "celsius")),
	})
	require.NoError(t, err)

	metric := doc.ResourceMetrics[0].ScopeMetrics[0].Metrics[0]
	assert.Equal(t, "temperature", metric.Name)
	require.NotNil(t, metric.Gauge)
	assert.Equal(t, int64(24), metric.Gauge.DataPoints[0].AsInt)
	assert.Nil(t, metric.Sum)
	assert.Nil(t, metric.Histogram)

	tree := decode(t, doc)
	m := path(t, tree, "resourceMetrics", 0, "scopeMetrics", 0, "metrics", 0)
	assert.Equal(t, "temperature", path(t, m, "name"))
	assert.Equal(t, float64(24), path(t, m, "gauge", "dataPoints", 0, "asInt"))
	assert.Equal(t, ScopeName, path(t, tree, "resourceMetrics", 0, "scopeMetrics", 0, "scope", "name"))
	assert.Len(t, path(t, tree, "resourceMetrics", 0, "resource", "attributes"), 3)
}

func TestBuildMetric_Sum(t *testing.T) {
	t.Parallel()
	doc, err := newTestBuilder().BuildMetric(MetricSample{Name: "requests", Kind: KindSum, Value: 3})
	require.NoError(t, err)

	sum := doc.ResourceMetrics[0].ScopeMetrics[0].Metrics[0].Sum
	require.NotNil(t, sum)
	assert.True(t, sum.IsMonotonic)
	assert.Equal(t, TemporalityCumulative, sum.AggregationTemporality)
	assert.Equal(t, int64(3), sum.DataPoints[0].AsInt)

	notMonotonic := false
	doc, err = newTestBuilder().BuildMetric(MetricSample{
		Name: "level", Kind: KindSum, Value: -1, IsMonotonic: &notMonotonic, Temporality: TemporalityDelta,
	})
	require.NoError(t, err)
	sum = doc.ResourceMetrics[0].ScopeMetrics[0].Metrics[0].Sum
	assert.False(t, sum.IsMonotonic)
	assert.Equal(t, TemporalityDelta, sum.AggregationTemporality)
}

func TestBuildMetric_Histogram(t *testing.T) {
	t.Parallel()
	count := uint64(6)
	total := 12.5
	doc, err := newTestBuilder().BuildMetric(MetricSample{
		Name:           "latency",
		Kind:           KindHistogram,
		Count:          &count,
		Sum:            &total,
		BucketCounts:   []uint64{1, 2, 3},
		ExplicitBounds: []float64{1, 5},
	})
	require.NoError(t, err)

	tree := decode(t, doc)
	h := path(t, tree, "resourceMetrics", 0, "scopeMetrics", 0, "metrics", 0, "histogram")
	assert.Equal(t, float64(2), path(t, h, "aggregationTemporality"))
	dp := path(t, h, "dataPoints", 0)
	assert.Equal(t, float64(6), path(t, dp, "count"))
	assert.Equal(t, 12.5, path(t, dp, "sum"))
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, path(t, dp, "bucketCounts"))
	assert.Equal(t, []interface{}{float64(1), float64(5)}, path(t, dp, "explicitBounds"))
}

func TestBuildMetric_HistogramDefaults(t *testing.T) {
	t.Parallel()
	doc, err := newTestBuilder().BuildMetric(MetricSample{Name: "h", Kind: KindHistogram, Value: 9})
	require.NoError(t, err)

	dp := doc.ResourceMetrics[0].ScopeMetrics[0].Metrics[0].Histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dp.Count)
	assert.Equal(t, 9.0, dp.Sum)
	assert.NotNil(t, dp.BucketCounts)
	assert.NotNil(t, dp.ExplicitBounds)
}

func TestBuildMetric_UnsupportedKind(t *testing.T) {
	t.Parallel()
	_, err := newTestBuilder().BuildMetric(MetricSample{Name: "x", Kind: "summary"})

	assert.True(t, errors.Is(err, ErrUnsupportedMetricKind))
}

func TestBuildMetric_DropsPeerPort(t *testing.T) {
	t.Parallel()
	doc, err := newTestBuilder().BuildMetric(MetricSample{
		Name:       "conn",
		Kind:       KindGauge,
		Attributes: PreShaped(String("net.peer.port", "4318"), String("net.peer.name", "collector")),
	})
	require.NoError(t, err)

	attrs := doc.ResourceMetrics[0].ScopeMetrics[0].Metrics[0].Gauge.DataPoints[0].Attributes
	assert.Equal(t, []KeyValue{String("net.peer.name", "collector")}, attrs)
}

func TestBuildTrace(t *testing.T) {
	t.Parallel()
	span := Span{
		TraceID:           "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:            "00f067aa0ba902b7",
		Name:              "op",
		Kind:              2,
		StartTimeUnixNano: 100,
		EndTimeUnixNano:   10_000_100,
	}

	tree := decode(t, newTestBuilder().BuildTrace(span))
	s := path(t, tree, "resourceSpans", 0, "scopeSpans", 0, "spans", 0)
	assert.Equal(t, "op", path(t, s, "name"))
	assert.Equal(t, float64(2), path(t, s, "kind"))
	assert.Equal(t, "", path(t, s, "parentSpanId"))
	assert.Equal(t, []interface{}{}, path(t, s, "attributes"))
	assert.Equal(t, ScopeName, path(t, tree, "resourceSpans", 0, "scopeSpans", 0, "scope", "name"))
}

func TestBuildLog_OmitsEmptyIDs(t *testing.T) {
	t.Parallel()
	doc := newTestBuilder().BuildLog(Log{Body: "boot", SeverityText: "INFO", TimeUnixNano: 5})

	tree := decode(t, doc)
	rec := path(t, tree, "resourceLogs", 0, "scopeLogs", 0, "logRecords", 0).(map[string]interface{})
	assert.NotContains(t, rec, "TraceId")
	assert.NotContains(t, rec, "SpanId")
	assert.Equal(t, "boot", path(t, rec, "body", "stringValue"))
	assert.Equal(t, "INFO", rec["severityText"])
}

func TestBuildLog_IncludesIDs(t *testing.T) {
	t.Parallel()
	doc := newTestBuilder().BuildLog(Log{
		Body:       "HTTP request received",
		TraceID:    "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:     "00f067aa0ba902b7",
		Attributes: Map(map[string]interface{}{"source": "http"}),
	})

	tree := decode(t, doc)
	rec := path(t, tree, "resourceLogs", 0, "scopeLogs", 0, "logRecords", 0).(map[string]interface{})
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rec["TraceId"])
	assert.Equal(t, "00f067aa0ba902b7", rec["SpanId"])
	assert.NotContains(t, rec, "severityText")
}

func TestResourceIdenticalAcrossDocuments(t *testing.T) {
	t.Parallel()
	b := newTestBuilder()
	metrics, err := b.BuildMetric(MetricSample{Name: "m", Kind: KindGauge})
	require.NoError(t, err)
	traces := b.BuildTrace(Span{Name: "s"})
	logs := b.BuildLog(Log{Body: "l"})

	assert.Equal(t, metrics.ResourceMetrics[0].Resource, traces.ResourceSpans[0].Resource)
	assert.Equal(t, traces.ResourceSpans[0].Resource, logs.ResourceLogs[0].Resource)
	assert.Equal(t, metrics.ResourceMetrics[0].ScopeMetrics[0].Scope, logs.ResourceLogs[0].ScopeLogs[0].Scope)
}

func TestResource_IsCopied(t *testing.T) {
	t.Parallel()
	b := newTestBuilder()
	r := b.Resource()
	r.Attributes[0].Key = "mutated"

	assert.NotEqual(t, "mutated", b.Resource().Attributes[0].Key)
}

func TestSignalPaths(t *testing.T) {
	t.Parallel()
	for _, s := range []Signal{SignalTraces, SignalMetrics, SignalLogs} {
		got, ok := SignalForPath(s.Path())
		require.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := SignalForPath("/v1/profiles")
	assert.False(t, ok)
}

func TestAttributes_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Attributes{}.Validate())
	assert.NoError(t, Map(map[string]interface{}{"": 1}).Validate())
	assert.NoError(t, PreShaped(String("a", "b")).Validate())

	err := PreShaped(String("a", "b"), KeyValue{Value: AnyValue{StringValue: "x"}}).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadAttributeShape))
}
