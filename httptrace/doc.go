// Package httptrace propagates trace context over HTTP with the W3C
// traceparent header.
//
//	mux := http.NewServeMux()
//	handler := httptrace.Middleware(client)(mux)
//
//	outbound := &http.Client{Transport: httptrace.NewTransport(client, nil)}
//
// Spans end when the handler returns or when the round trip yields a
// response, not when the response body is consumed.
package httptrace
