package otlphttp

import (
	"time"

	"github.com/aalemi-dev/devicetel/observability"
	"github.com/aalemi-dev/devicetel/otlp"
)

// observeOperation safely calls the observer if it's not nil.
func (c *Client) observeOperation(operation, path string, duration time.Duration, err error, size int64, statusCode int) {
	if c.observer == nil {
		return
	}
	signal, _ := otlp.SignalForPath(path)
	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "otlphttp",
		Operation:   operation,
		Resource:    path,
		SubResource: string(signal),
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata: map[string]interface{}{
			"status_code": statusCode,
		},
	})
}
