package transport

import "fmt"

// Status is the delivery result reported by a transport. Transports without
// status codes report 200 on success.
type Status struct {
	StatusCode int
}

// OK reports whether the status code is in the 2xx range.
func (s Status) OK() bool {
	return s.StatusCode >= 200 && s.StatusCode < 300
}

// Err returns ErrNonSuccessStatus wrapped with the code when s is not OK.
func (s Status) Err() error {
	if s.OK() {
		return nil
	}
	return fmt.Errorf("%w: %d", ErrNonSuccessStatus, s.StatusCode)
}

// Request is a delivery captured by Recorder.
type Request struct {
	Path        string
	ContentType string
	Body        []byte
}
