package kafka

import (
	"context"
	"errors"
	"strings"

	"github.com/segmentio/kafka-go"
)

// Producer errors. TranslateError maps kafka-go errors onto these so that
// export warnings stay readable on a device console.
var (
	ErrConnectionFailed      = errors.New("connection failed")
	ErrConnectionLost        = errors.New("connection lost")
	ErrBrokerNotAvailable    = errors.New("broker not available")
	ErrAuthenticationFailed  = errors.New("authentication failed")
	ErrAuthorizationFailed   = errors.New("authorization failed")
	ErrTopicNotFound         = errors.New("topic not found")
	ErrMessageTooLarge       = errors.New("message too large")
	ErrInvalidMessage        = errors.New("invalid message")
	ErrLeaderNotAvailable    = errors.New("leader not available")
	ErrNotLeaderForPartition = errors.New("not leader for partition")
	ErrRequestTimedOut       = errors.New("request timed out")
	ErrNetworkError          = errors.New("network error")
	ErrUnsupportedVersion    = errors.New("unsupported version")

	// ErrWriterNotInitialized is returned by a client built without a writer.
	ErrWriterNotInitialized = errors.New("writer not initialized")

	ErrContextCanceled         = errors.New("context canceled")
	ErrContextDeadlineExceeded = errors.New("context deadline exceeded")

	// ErrUnknownSignalPath is returned when Send is called with a path that
	// does not map to an OTLP signal topic.
	ErrUnknownSignalPath = errors.New("unknown OTLP signal path")
)

// protocolErrors maps broker error codes.
var protocolErrors = map[kafka.Error]error{
	kafka.UnknownTopicOrPartition:    ErrTopicNotFound,
	kafka.InvalidTopic:               ErrTopicNotFound,
	kafka.InvalidMessage:             ErrInvalidMessage,
	kafka.LeaderNotAvailable:         ErrLeaderNotAvailable,
	kafka.NotLeaderForPartition:      ErrNotLeaderForPartition,
	kafka.RequestTimedOut:            ErrRequestTimedOut,
	kafka.BrokerNotAvailable:         ErrBrokerNotAvailable,
	kafka.MessageSizeTooLarge:        ErrMessageTooLarge,
	kafka.NetworkException:           ErrNetworkError,
	kafka.TopicAuthorizationFailed:   ErrAuthorizationFailed,
	kafka.ClusterAuthorizationFailed: ErrAuthorizationFailed,
	kafka.SASLAuthenticationFailed:   ErrAuthenticationFailed,
	kafka.UnsupportedVersion:         ErrUnsupportedVersion,
}

// messagePatterns is checked in order against the lower-cased error text of
// errors that carry no broker code, such as dial and SASL handshake failures.
var messagePatterns = []struct {
	substr string
	err    error
}{
	{"connection refused", ErrConnectionFailed},
	{"connection reset", ErrConnectionLost},
	{"connection closed", ErrConnectionLost},
	{"broken pipe", ErrConnectionLost},
	{"broker not available", ErrBrokerNotAvailable},
	{"authentication failed", ErrAuthenticationFailed},
	{"authorization failed", ErrAuthorizationFailed},
	{"unknown topic", ErrTopicNotFound},
	{"topic not found", ErrTopicNotFound},
	{"too large", ErrMessageTooLarge},
	{"invalid message", ErrInvalidMessage},
	{"not leader for partition", ErrNotLeaderForPartition},
	{"leader not available", ErrLeaderNotAvailable},
	{"deadline exceeded", ErrContextDeadlineExceeded},
	{"timed out", ErrRequestTimedOut},
	{"timeout", ErrRequestTimedOut},
	{"context canceled", ErrContextCanceled},
	{"context cancelled", ErrContextCanceled},
	{"unsupported version", ErrUnsupportedVersion},
	{"no such host", ErrNetworkError},
	{"dial", ErrNetworkError},
	{"network", ErrNetworkError},
}

// TranslateError converts kafka-go errors into this package's error values.
// Errors it does not recognise are returned unchanged.
func (k *KafkaClient) TranslateError(err error) error {
	return TranslateError(err)
}

// TranslateError is the package-level form of KafkaClient.TranslateError.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if translated := translate(err); translated != nil {
		return translated
	}
	return err
}

// translate returns the package error matching err, or nil when none does.
// For kafka.WriteErrors the first non-nil message error decides.
func translate(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return ErrContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrContextDeadlineExceeded
	}

	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) {
		for _, e := range writeErrs {
			if e != nil {
				return translate(e)
			}
		}
	}

	var code kafka.Error
	if errors.As(err, &code) {
		if mapped, ok := protocolErrors[code]; ok {
			return mapped
		}
	}

	msg := strings.ToLower(err.Error())
	for _, p := range messagePatterns {
		if strings.Contains(msg, p.substr) {
			return p.err
		}
	}
	return nil
}

// IsRetryableError reports whether a later send of the same document could
// succeed. The exporter never retries; callers that queue documents can.
func (k *KafkaClient) IsRetryableError(err error) bool {
	for _, target := range []error{
		ErrConnectionFailed, ErrConnectionLost, ErrBrokerNotAvailable,
		ErrLeaderNotAvailable, ErrNotLeaderForPartition, ErrRequestTimedOut,
		ErrNetworkError,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	var code kafka.Error
	return errors.As(err, &code) && code.Temporary()
}

// IsTemporaryError is IsRetryableError plus deadline expiry.
func (k *KafkaClient) IsTemporaryError(err error) bool {
	return k.IsRetryableError(err) || errors.Is(err, ErrContextDeadlineExceeded)
}

// IsPermanentError reports whether resending the same document is pointless.
func (k *KafkaClient) IsPermanentError(err error) bool {
	if k.IsAuthenticationError(err) {
		return true
	}
	for _, target := range []error{
		ErrTopicNotFound, ErrUnknownSignalPath, ErrMessageTooLarge,
		ErrInvalidMessage, ErrUnsupportedVersion, ErrContextCanceled,
		ErrWriterNotInitialized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsAuthenticationError reports whether err is a credential or ACL problem.
func (k *KafkaClient) IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed) || errors.Is(err, ErrAuthorizationFailed)
}
