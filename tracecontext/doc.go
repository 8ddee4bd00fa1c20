// Package tracecontext parses, builds and propagates W3C traceparent values.
//
// Parsing is deliberately lenient: a traceparent is accepted when it splits
// into exactly four hyphen-delimited fields, and nothing else is validated.
// Absence of context is never an error.
//
//	tc := tracecontext.Extract(propagation.HeaderCarrier(r.Header))
//	if tc.IsEmpty() {
//		// start a root trace
//	}
//
// Carriers are propagation.TextMapCarrier values, so HTTP headers, string maps
// and decoded JSON payloads (PayloadCarrier) are handled the same way:
//
//	payload := tracecontext.PayloadCarrier{"payload": "hello"}
//	builder := tracecontext.NewBuilder(client, nil)
//	builder.Inject(payload, traceID, spanID, "")
//	// payload now holds traceparent, trace_id and parent_span_id
package tracecontext
