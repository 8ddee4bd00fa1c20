package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/aalemi-dev/devicetel/transport"
)

// Client is the Kafka delivery path for OTLP documents.
//
// KafkaClient implements Client and transport.Transport.
type Client interface {
	transport.Transport

	// TopicFor returns the topic an OTLP signal path is written to.
	TopicFor(path string) (string, error)

	// TranslateError converts kafka-go errors into this package's error values.
	TranslateError(err error) error

	// IsRetryableError reports whether a later send could succeed.
	IsRetryableError(err error) bool

	// IsTemporaryError reports whether the error is transient.
	IsTemporaryError(err error) bool

	// IsPermanentError reports whether resending is pointless.
	IsPermanentError(err error) bool

	// IsAuthenticationError reports whether the error is a credential problem.
	IsAuthenticationError(err error) bool

	// GracefulShutdown flushes and closes the writer.
	GracefulShutdown()
}

// messageWriter is the part of *kafka.Writer used by the client.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
