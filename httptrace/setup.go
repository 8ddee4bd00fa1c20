package httptrace

import (
	"net/http"

	"go.opentelemetry.io/otel/propagation"

	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/spans"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

// Middleware wraps handlers in a SERVER span continuing any traceparent
// header. The request context passed on carries the span, so outgoing calls
// made through Transport join the same trace.
//
// If telemetry is nil, handlers are returned unchanged. Health and metrics
// endpoints are not traced.
func Middleware(telemetry Telemetry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if telemetry == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			parent := telemetry.ExtractContext(propagation.HeaderCarrier(r.Header))
			traceID, spanID, err := telemetry.StartTrace(r.Context(), ServerSpanName, spans.KindServer,
				otlp.PreShaped(
					otlp.String(AttrMethod, r.Method),
					otlp.String(AttrTarget, r.URL.Path),
					otlp.String(AttrEvent, EventReceive),
				),
				parent.TraceID, parent.ParentSpanID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := telemetry.ContextWithSpan(r.Context(), traceID, spanID)
			defer func() {
				_, _, _ = telemetry.EndTrace(ctx, spanID)
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Transport is an http.RoundTripper that wraps each request in a CLIENT span
// and sends its traceparent header. The span continues the trace carried by
// the request context, if any.
type Transport struct {
	// Base performs the request; nil means http.DefaultTransport.
	Base http.RoundTripper

	Telemetry Telemetry
}

// NewTransport returns a Transport over base.
func NewTransport(telemetry Telemetry, base http.RoundTripper) *Transport {
	return &Transport{Base: base, Telemetry: telemetry}
}

// RoundTrip implements http.RoundTripper. The caller's request is not modified.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Telemetry == nil {
		return base.RoundTrip(req)
	}

	parent, _ := tracecontext.FromContext(req.Context())
	traceID, spanID, err := t.Telemetry.StartTrace(req.Context(), ClientSpanName, spans.KindClient,
		otlp.PreShaped(
			otlp.String(AttrMethod, req.Method),
			otlp.String(AttrTarget, req.URL.Path),
			otlp.String(AttrEvent, EventSend),
		),
		parent.TraceID, parent.ParentSpanID)
	if err != nil {
		return base.RoundTrip(req)
	}

	ctx := t.Telemetry.ContextWithSpan(req.Context(), traceID, spanID)
	defer func() {
		_, _, _ = t.Telemetry.EndTrace(ctx, spanID)
	}()

	out := req.Clone(ctx)
	t.Telemetry.InjectHeaders(propagation.HeaderCarrier(out.Header), traceID, spanID, "")
	return base.RoundTrip(out)
}
