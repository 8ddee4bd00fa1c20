package tracecontext

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/aalemi-dev/devicetel/ids"
)

// NormalizeTraceID resolves a caller-supplied parent trace id:
//   - 32 hex characters (either case) pass through unchanged
//   - all-decimal strings are read as an integer and rendered as 32 hex characters
//   - any other non-empty string is returned verbatim to tolerate foreign id formats
func NormalizeTraceID(s string) string {
	if s == "" {
		return ""
	}
	if len(s) == ids.TraceIDLength && ids.IsHex(s) {
		return s
	}
	if isDecimal(s) {
		n, ok := new(big.Int).SetString(s, 10)
		if ok {
			return fmt.Sprintf("%032x", n)
		}
	}
	return s
}

// SpanContext converts tc into a remote OTel span context. ok is false when
// the ids are not valid W3C ids (wrong width, non-hex, or all zeros).
func (tc TraceContext) SpanContext() (trace.SpanContext, bool) {
	traceID, err := trace.TraceIDFromHex(strings.ToLower(tc.TraceID))
	if err != nil {
		return trace.SpanContext{}, false
	}
	spanID, err := trace.SpanIDFromHex(strings.ToLower(tc.ParentSpanID))
	if err != nil {
		return trace.SpanContext{}, false
	}

	var flags trace.TraceFlags
	if tc.Sampled != "" {
		if v, err := strconv.ParseUint(tc.Sampled, 16, 8); err == nil {
			flags = trace.TraceFlags(v)
		}
	} else {
		flags = trace.FlagsSampled
	}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		Remote:     true,
	})
	return sc, sc.IsValid()
}

// ContextWith returns ctx carrying tc as a remote span context, so that
// context-aware loggers can correlate entries. Invalid ids leave ctx unchanged.
func ContextWith(ctx context.Context, tc TraceContext) context.Context {
	sc, ok := tc.SpanContext()
	if !ok {
		return ctx
	}
	return trace.ContextWithRemoteSpanContext(ctx, sc)
}

// FromContext returns the trace context of the span context stored in ctx, if any.
func FromContext(ctx context.Context) (TraceContext, bool) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return TraceContext{}, false
	}
	return TraceContext{
		TraceID:      sc.TraceID().String(),
		ParentSpanID: sc.SpanID().String(),
		Sampled:      sc.TraceFlags().String(),
	}, true
}

// DecodePayload decodes a JSON object message body into a PayloadCarrier.
// Numbers are kept as json.Number so integer trace ids wider than 53 bits
// survive until NormalizeTraceID reads them.
func DecodePayload(data []byte) (PayloadCarrier, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON object")
	}
	return PayloadCarrier(payload), nil
}

// PayloadCarrier adapts a decoded JSON message payload to Carrier.
// Non-string values are stringified; JSON null reads as absent and an empty
// value is written as null.
type PayloadCarrier map[string]interface{}

// Get implements Carrier.
func (p PayloadCarrier) Get(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	return stringify(v)
}

// Set implements Carrier.
func (p PayloadCarrier) Set(key, value string) {
	if value == "" {
		p[key] = nil
		return
	}
	p[key] = value
}

// Keys implements Carrier.
func (p PayloadCarrier) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	return keys
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// lookupKey returns the carrier key matching key, preferring an exact match
// over a case-insensitive one.
func lookupKey(carrier Carrier, key string) (string, bool) {
	var folded string
	found := false
	for _, k := range carrier.Keys() {
		if k == key {
			return k, true
		}
		if !found && strings.EqualFold(k, key) {
			folded, found = k, true
		}
	}
	return folded, found
}

func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func zfill(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
