package kafka

import (
	"time"

	"github.com/aalemi-dev/devicetel/observability"
	"github.com/aalemi-dev/devicetel/otlp"
)

// observeOperation reports one send; the resource is the topic and the
// sub-resource the OTLP signal.
func (k *KafkaClient) observeOperation(operation, topic, path string, duration time.Duration, err error, size int64) {
	signal, _ := otlp.SignalForPath(path)
	observability.Notify(k.observer, observability.OperationContext{
		Component:   "kafka",
		Operation:   operation,
		Resource:    topic,
		SubResource: string(signal),
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}
