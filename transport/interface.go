package transport

import "context"

// Transport delivers one encoded OTLP document to the collector. path is one
// of the OTLP signal paths (/v1/traces, /v1/metrics, /v1/logs); adapters that
// are not HTTP based map it to their own addressing.
//
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, path, contentType string, body []byte) (Status, error)
}

// Func adapts a plain function to Transport.
type Func func(ctx context.Context, path, contentType string, body []byte) (Status, error)

// Send implements Transport.
func (f Func) Send(ctx context.Context, path, contentType string, body []byte) (Status, error) {
	return f(ctx, path, contentType, body)
}
