package httptrace

// Span names and attributes recorded for HTTP exchanges.
const (
	ServerSpanName = "http_request"
	ClientSpanName = "http_client_request"

	AttrMethod = "http.method"
	AttrTarget = "http.target"
	AttrEvent  = "event"

	EventReceive = "http_receive"
	EventSend    = "http_send"
)

// skipPaths are served without a span.
var skipPaths = map[string]bool{
	"/metrics":     true,
	"/health":      true,
	"/healthz":     true,
	"/ready":       true,
	"/favicon.ico": true,
}
