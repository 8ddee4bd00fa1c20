package spans

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/devicetel/clock"
	"github.com/aalemi-dev/devicetel/ids"
	"github.com/aalemi-dev/devicetel/logger"
	"github.com/aalemi-dev/devicetel/otlp"
)

var epoch = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestRegistry() (*Registry, *clock.Manual, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	c := clock.NewManual(epoch)
	gen := ids.NewGeneratorWithSource(ids.NewSeededSource(1, 2))
	r := NewRegistry(c, gen).WithLogger(&logger.LoggerClient{Zap: zap.New(core)})
	return r, c, logs
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	cases := map[string]Kind{
		"INTERNAL": KindInternal,
		"server":   KindServer,
		"Client":   KindClient,
		"PRODUCER": KindProducer,
		"consumer": KindConsumer,
		"":         KindInternal,
		"bogus":    KindInternal,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseKind(in), in)
	}
	assert.Equal(t, "SERVER", KindServer.String())
	assert.Equal(t, 2, int(KindServer))
}

func TestRegistry_StartNewTrace(t *testing.T) {
	t.Parallel()
	r, _, _ := newTestRegistry()

	traceID, spanID := r.Start(context.Background(), StartOptions{Name: "boot", Kind: KindClient})

	assert.True(t, ids.IsCanonicalTraceID(traceID))
	assert.True(t, ids.IsCanonicalSpanID(spanID))
	assert.Equal(t, 1, r.Len())

	span, ok := r.Get(spanID)
	require.True(t, ok)
	assert.Equal(t, "boot", span.Name)
	assert.Equal(t, KindClient, span.Kind)
	assert.Equal(t, "", span.ParentSpanID)
	assert.Equal(t, epoch.UnixNano(), span.StartTimeUnixNano)
	assert.False(t, span.Ended())
}

func TestRegistry_StartContinuesTrace(t *testing.T) {
	t.Parallel()
	r, _, _ := newTestRegistry()

	parent := "4bf92f3577b34da6a3ce929d0e0e4736"
	traceID, spanID := r.Start(context.Background(), StartOptions{
		Name:         "child",
		TraceID:      parent,
		ParentSpanID: "00f067aa0ba902b7",
	})
	assert.Equal(t, parent, traceID)
	assert.NotEqual(t, "00f067aa0ba902b7", spanID)

	span, _ := r.Get(spanID)
	assert.Equal(t, "00f067aa0ba902b7", span.ParentSpanID)
}

func TestRegistry_StartNormalizesDecimalTraceID(t *testing.T) {
	t.Parallel()
	r, _, _ := newTestRegistry()

	traceID, _ := r.Start(context.Background(), StartOptions{Name: "x", TraceID: "123"})
	assert.Equal(t, "0000000000000000000000000000007b", traceID)
}

func TestRegistry_StartDefaultsKind(t *testing.T) {
	t.Parallel()
	r, _, _ := newTestRegistry()

	for _, kind := range []Kind{0, Kind(9), Kind(-1)} {
		_, spanID := r.Start(context.Background(), StartOptions{Name: "x", Kind: kind})
		span, _ := r.Get(spanID)
		assert.Equal(t, KindInternal, span.Kind, "kind %d", kind)
	}
	assert.True(t, KindConsumer.Valid())
	assert.False(t, Kind(6).Valid())
}

func TestRegistry_EndAppliesBias(t *testing.T) {
	t.Parallel()
	r, c, _ := newTestRegistry()

	_, spanID := r.Start(context.Background(), StartOptions{Name: "read"})
	c.Advance(3 * time.Millisecond)

	span, ok := r.End(context.Background(), spanID)
	require.True(t, ok)
	assert.Equal(t, epoch.Add(3*time.Millisecond+EndBias).UnixNano(), span.EndTimeUnixNano)
	assert.Equal(t, 13*time.Millisecond, span.Duration())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_EndZeroElapsedStillHasBias(t *testing.T) {
	t.Parallel()
	r, _, _ := newTestRegistry()

	_, spanID := r.Start(context.Background(), StartOptions{Name: "instant"})
	span, ok := r.End(context.Background(), spanID)
	require.True(t, ok)
	assert.GreaterOrEqual(t, span.Duration(), EndBias)
}

func TestRegistry_EndUnknownWarns(t *testing.T) {
	t.Parallel()
	r, _, logs := newTestRegistry()

	_, ok := r.End(context.Background(), "deadbeefdeadbeef")
	assert.False(t, ok)

	warnings := logs.FilterMessage("attempted to end unknown span").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "deadbeefdeadbeef", warnings[0].ContextMap()["span_id"])
}

func TestRegistry_DoubleEndIsNoOp(t *testing.T) {
	t.Parallel()
	r, _, logs := newTestRegistry()

	_, spanID := r.Start(context.Background(), StartOptions{Name: "x"})
	_, ok := r.End(context.Background(), spanID)
	require.True(t, ok)

	_, ok = r.End(context.Background(), spanID)
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("attempted to end unknown span").Len())
}

func TestRegistry_WithoutLogger(t *testing.T) {
	t.Parallel()
	r := NewRegistry(clock.NewManual(epoch), ids.NewGenerator())

	_, ok := r.End(context.Background(), "missing")
	assert.False(t, ok)
}

func TestRegistry_UnendedSpansRemain(t *testing.T) {
	t.Parallel()
	r, c, _ := newTestRegistry()

	_, first := r.Start(context.Background(), StartOptions{Name: "a"})
	c.Advance(time.Millisecond)
	_, second := r.Start(context.Background(), StartOptions{Name: "b"})

	active := r.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first, active[0].SpanID)
	assert.Equal(t, second, active[1].SpanID)
}

func TestSpan_Record(t *testing.T) {
	t.Parallel()

	span := Span{
		TraceID:           "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:            "00f067aa0ba902b7",
		Name:              "http_request",
		Kind:              KindServer,
		StartTimeUnixNano: 100,
		EndTimeUnixNano:   200,
	}
	rec := span.Record()
	assert.Equal(t, 2, rec.Kind)
	assert.Equal(t, "", rec.ParentSpanID)
	assert.NotNil(t, rec.Attributes)
	assert.Empty(t, rec.Attributes)

	span.Attributes = []otlp.KeyValue{otlp.String("http.method", "GET")}
	assert.Equal(t, "http.method", span.Record().Attributes[0].Key)
}
