package transport

import (
	"context"
	"net/http"
	"sync"
)

// Discard accepts and drops every document.
var Discard Transport = Func(func(context.Context, string, string, []byte) (Status, error) {
	return Status{StatusCode: http.StatusOK}, nil
})

// Recorder keeps every delivered document in memory. It backs the CLI
// dry-run mode and tests that inspect exported payloads.
type Recorder struct {
	mu       sync.Mutex
	requests []Request
	status   Status
}

// NewRecorder returns a Recorder that answers 200.
func NewRecorder() *Recorder {
	return &Recorder{status: Status{StatusCode: http.StatusOK}}
}

// RespondWith makes subsequent sends report code.
func (r *Recorder) RespondWith(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = Status{StatusCode: code}
}

// Send implements Transport.
func (r *Recorder) Send(_ context.Context, path, contentType string, body []byte) (Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]byte, len(body))
	copy(cp, body)
	r.requests = append(r.requests, Request{Path: path, ContentType: contentType, Body: cp})
	return r.status, nil
}

// Requests returns a copy of the recorded deliveries in order.
func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Request(nil), r.requests...)
}

// ByPath returns the recorded deliveries sent to path.
func (r *Recorder) ByPath(path string) []Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Request
	for _, req := range r.requests {
		if req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// Reset drops all recorded deliveries.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = nil
}
