package tracecontext

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"

	"github.com/aalemi-dev/devicetel/ids"
)

const (
	sampleTraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	sampleSpanID  = "00f067aa0ba902b7"
	sampleParent  = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
)

var traceparentPattern = regexp.MustCompile(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`)

type staticFallback struct {
	traceID string
	spanID  string
}

func (s staticFallback) LastTraceID() string      { return s.traceID }
func (s staticFallback) LastParentSpanID() string { return s.spanID }

func TestParseTraceparent_Valid(t *testing.T) {
	t.Parallel()
	tc, ok := ParseTraceparent(sampleParent)

	require.True(t, ok)
	assert.Equal(t, sampleTraceID, tc.TraceID)
	assert.Equal(t, sampleSpanID, tc.ParentSpanID)
	assert.Equal(t, "01", tc.Sampled)
}

func TestParseTraceparent_TrimsWhitespace(t *testing.T) {
	t.Parallel()
	tc, ok := ParseTraceparent("  " + sampleParent + "\r\n")

	require.True(t, ok)
	assert.Equal(t, sampleTraceID, tc.TraceID)
}

func TestParseTraceparent_WrongShape(t *testing.T) {
	t.Parallel()
	cases := []string{
		"",
		"garbage",
		"00-abc-def",
		"00-a-b-c-d",
		"00-" + sampleTraceID + "-" + sampleSpanID,
	}
	for _, in := range cases {
		_, ok := ParseTraceparent(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestParseTraceparent_NoVersionOrFlagValidation(t *testing.T) {
	t.Parallel()
	tc, ok := ParseTraceparent("ff-x-y-zz")

	require.True(t, ok)
	assert.Equal(t, "x", tc.TraceID)
	assert.Equal(t, "y", tc.ParentSpanID)
}

func TestParseTraceparentStrict(t *testing.T) {
	t.Parallel()
	_, err := ParseTraceparentStrict("nope")
	assert.True(t, errors.Is(err, ErrMalformedTraceparent))

	tc, err := ParseTraceparentStrict(sampleParent)
	require.NoError(t, err)
	assert.Equal(t, sampleSpanID, tc.ParentSpanID)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	gen := ids.NewGenerator()

	for i := 0; i < 200; i++ {
		traceID, spanID := gen.NewTraceID(), gen.NewSpanID()
		tc, ok := ParseTraceparent(FormatTraceparent(traceID, spanID, ""))
		require.True(t, ok)
		assert.Equal(t, traceID, tc.TraceID)
		assert.Equal(t, spanID, tc.ParentSpanID)
	}
}

func TestFormatTraceparent_PadsIDs(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"00-0000000000000000000000000000007b-00000000000000ab-01",
		FormatTraceparent("7b", "ab", ""),
	)
	assert.Equal(t,
		"00-"+sampleTraceID+"-"+sampleSpanID+"-00",
		FormatTraceparent(sampleTraceID, sampleSpanID, "00"),
	)
}

func TestExtract_Traceparent(t *testing.T) {
	t.Parallel()
	tc := Extract(propagation.MapCarrier{"traceparent": sampleParent})

	assert.Equal(t, sampleTraceID, tc.TraceID)
	assert.Equal(t, sampleSpanID, tc.ParentSpanID)
}

func TestExtract_Empty(t *testing.T) {
	t.Parallel()
	tc := Extract(propagation.MapCarrier{})

	assert.Empty(t, tc.TraceID)
	assert.Empty(t, tc.ParentSpanID)
	assert.True(t, tc.IsEmpty())
	assert.True(t, Extract(nil).IsEmpty())
}

func TestExtract_ExplicitFields(t *testing.T) {
	t.Parallel()
	tc := Extract(PayloadCarrier{"trace_id": sampleTraceID, "parent_span_id": sampleSpanID})

	assert.Equal(t, sampleTraceID, tc.TraceID)
	assert.Equal(t, sampleSpanID, tc.ParentSpanID)
}

func TestExtract_TraceparentTakesPrecedence(t *testing.T) {
	t.Parallel()
	tc := Extract(PayloadCarrier{
		"traceparent":    sampleParent,
		"trace_id":       "ffffffffffffffffffffffffffffffff",
		"parent_span_id": "ffffffffffffffff",
	})

	assert.Equal(t, sampleTraceID, tc.TraceID)
	assert.Equal(t, sampleSpanID, tc.ParentSpanID)
}

func TestExtract_MalformedTraceparentYieldsEmpty(t *testing.T) {
	t.Parallel()
	tc := Extract(PayloadCarrier{"traceparent": "bad", "trace_id": sampleTraceID})

	assert.True(t, tc.IsEmpty())
}

func TestExtract_HTTPHeaders(t *testing.T) {
	t.Parallel()
	h := http.Header{}
	h.Set("Traceparent", sampleParent)

	tc := Extract(propagation.HeaderCarrier(h))

	assert.Equal(t, sampleTraceID, tc.TraceID)
}

func TestExtract_PayloadNumericTraceID(t *testing.T) {
	t.Parallel()
	tc := Extract(PayloadCarrier{"trace_id": float64(123), "parent_span_id": nil})

	assert.Equal(t, "123", tc.TraceID)
	assert.Empty(t, tc.ParentSpanID)
}

func TestExtract_MixedCaseTraceparentKey(t *testing.T) {
	t.Parallel()
	tc := Extract(PayloadCarrier{
		"Traceparent":    sampleParent,
		"trace_id":       "ffffffffffffffffffffffffffffffff",
		"parent_span_id": "ffffffffffffffff",
	})

	assert.Equal(t, sampleTraceID, tc.TraceID)
	assert.Equal(t, sampleSpanID, tc.ParentSpanID)
}

func TestDecodePayload_KeepsWideIntegers(t *testing.T) {
	t.Parallel()
	payload, err := DecodePayload([]byte(`{"trace_id": 18446744073709551617, "parent_span_id": null}`))
	require.NoError(t, err)

	tc := Extract(payload)
	assert.Equal(t, "18446744073709551617", tc.TraceID)
	assert.Empty(t, tc.ParentSpanID)
	assert.Equal(t, "00000000000000010000000000000001", NormalizeTraceID(tc.TraceID))
}

func TestDecodePayload_Malformed(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{`[1,2`, `[1,2]`, `{"a":1} {"b":2}`, ``} {
		_, err := DecodePayload([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestBuilder_ExplicitIDs(t *testing.T) {
	t.Parallel()
	b := NewBuilder(staticFallback{traceID: "ignored"}, nil)

	assert.Equal(t, sampleParent, b.Build(sampleTraceID, sampleSpanID, "01"))
}

func TestBuilder_FallsBackToLastUsed(t *testing.T) {
	t.Parallel()
	b := NewBuilder(staticFallback{traceID: sampleTraceID, spanID: sampleSpanID}, nil)

	assert.Equal(t, sampleParent, b.Build("", "", ""))
}

func TestBuilder_FallsBackToGenerated(t *testing.T) {
	t.Parallel()
	b := NewBuilder(nil, nil)

	assert.Regexp(t, traceparentPattern, b.Build("", "", ""))

	b = NewBuilder(staticFallback{traceID: sampleTraceID}, nil)
	tp := b.Build("", "", "")
	assert.Regexp(t, traceparentPattern, tp)
	tc, _ := ParseTraceparent(tp)
	assert.Equal(t, sampleTraceID, tc.TraceID)
}

func TestBuilder_Inject(t *testing.T) {
	t.Parallel()
	b := NewBuilder(staticFallback{traceID: sampleTraceID, spanID: sampleSpanID}, nil)
	payload := PayloadCarrier{"payload": "hello"}

	written := b.Inject(payload, "", "", "")

	assert.Equal(t, sampleParent, payload["traceparent"])
	assert.Equal(t, sampleTraceID, payload["trace_id"])
	assert.Equal(t, sampleSpanID, payload["parent_span_id"])
	assert.Equal(t, "hello", payload["payload"])
	assert.Equal(t, sampleTraceID, written.TraceID)
	assert.Equal(t, Extract(payload), TraceContext{TraceID: sampleTraceID, ParentSpanID: sampleSpanID, Sampled: "01"})
}

func TestBuilder_InjectWithoutSpanWritesNull(t *testing.T) {
	t.Parallel()
	b := NewBuilder(staticFallback{traceID: sampleTraceID}, nil)
	payload := PayloadCarrier{}

	b.Inject(payload, "", "", "")

	v, ok := payload["parent_span_id"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Regexp(t, traceparentPattern, payload["traceparent"])
}

func TestBuilder_InjectHeaders(t *testing.T) {
	t.Parallel()
	b := NewBuilder(nil, nil)
	h := http.Header{}

	tp := b.InjectHeaders(propagation.HeaderCarrier(h), sampleTraceID, sampleSpanID, "01")

	assert.Equal(t, sampleParent, tp)
	assert.Equal(t, sampleParent, h.Get("traceparent"))
	assert.Empty(t, h.Get("trace_id"))
}

func TestNormalizeTraceID(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"":                                 "",
		"123":                              "0000000000000000000000000000007b",
		sampleTraceID:                      sampleTraceID,
		"4BF92F3577B34DA6A3CE929D0E0E4736": "4BF92F3577B34DA6A3CE929D0E0E4736",
		"not-a-trace-id":                   "not-a-trace-id",
		"abc":                              "abc",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTraceID(in), "input %q", in)
	}
}

func TestContextWith_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := ContextWith(context.Background(), TraceContext{TraceID: sampleTraceID, ParentSpanID: sampleSpanID})

	tc, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, sampleTraceID, tc.TraceID)
	assert.Equal(t, sampleSpanID, tc.ParentSpanID)
	assert.Equal(t, "01", tc.Sampled)
}

func TestContextWith_InvalidIDs(t *testing.T) {
	t.Parallel()
	ctx := ContextWith(context.Background(), TraceContext{TraceID: "foreign-id", ParentSpanID: sampleSpanID})

	_, ok := FromContext(ctx)
	assert.False(t, ok)
}
