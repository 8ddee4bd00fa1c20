package kafka

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/transport"
)

// TopicFor returns the topic configured for an OTLP signal path.
func (k *KafkaClient) TopicFor(path string) (string, error) {
	signal, ok := otlp.SignalForPath(path)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSignalPath, path)
	}
	switch signal {
	case otlp.SignalTraces:
		return k.cfg.Topics.Traces, nil
	case otlp.SignalMetrics:
		return k.cfg.Topics.Metrics, nil
	default:
		return k.cfg.Topics.Logs, nil
	}
}

// Send implements transport.Transport. The document is written unchanged as
// the message value to the signal's topic, with its content type in the
// "content-type" header. A successful write reports status 200.
//
// Errors are translated with TranslateError and wrap both the translated
// value and the original kafka-go error.
func (k *KafkaClient) Send(ctx context.Context, path, contentType string, body []byte) (transport.Status, error) {
	start := time.Now()
	var sendErr error
	var topic string

	defer func() {
		k.observeOperation("export", topic, path, time.Since(start), sendErr, int64(len(body)))
	}()

	topic, sendErr = k.TopicFor(path)
	if sendErr != nil {
		return transport.Status{}, sendErr
	}

	k.mu.RLock()
	writer, closed := k.writer, k.closed
	k.mu.RUnlock()

	if closed {
		sendErr = transport.ErrTransportClosed
		return transport.Status{}, sendErr
	}
	if writer == nil {
		sendErr = ErrWriterNotInitialized
		return transport.Status{}, sendErr
	}

	msg := kafka.Message{
		Topic: topic,
		Value: body,
		Headers: []kafka.Header{
			{Key: ContentTypeHeader, Value: []byte(contentType)},
		},
		Time: time.Now(),
	}
	if k.cfg.Key != "" {
		msg.Key = []byte(k.cfg.Key)
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		sendErr = wrapTranslated(err)
		return transport.Status{}, sendErr
	}
	return transport.Status{StatusCode: http.StatusOK}, nil
}

// wrapTranslated keeps the original error reachable next to its translation.
// kafka.WriteErrors is a slice, so errors are never compared with ==.
func wrapTranslated(err error) error {
	translated := translate(err)
	if translated == nil {
		return err
	}
	return fmt.Errorf("%w: %w", translated, err)
}
