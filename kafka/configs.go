package kafka

import (
	"context"
	"time"
)

// Config defines the producer used to ship OTLP/JSON documents to Kafka,
// where an OpenTelemetry collector's kafka receiver picks them up.
type Config struct {
	// Brokers is a list of Kafka broker addresses
	Brokers []string `yaml:"brokers"`

	// Topics maps each OTLP signal to a topic
	Topics TopicsConfig `yaml:"topics"`

	// Key is used as the message key for every document. Devices typically
	// set it to their host name so one device's documents stay ordered within
	// a partition. Empty means no key.
	Key string `yaml:"key"`

	// RequiredAcks determines how many replica acknowledgments to wait for
	// Options:
	//   RequireNone (0): Don't wait for acknowledgment
	//   RequireOne (1): Wait for leader only
	//   RequireAll (-1): Wait for all in-sync replicas
	// Default: RequireAll (-1)
	RequiredAcks int `yaml:"required_acks" default:"-1"`

	// WriteTimeout is the timeout for write operations
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`

	// Async enables batched fire-and-forget writes. Send then only reports
	// errors raised before the batch is handed to the writer.
	// Default: false
	Async bool `yaml:"async"`

	// BatchSize is the maximum number of messages to batch together
	// Only used when Async is true
	// Default: 100
	BatchSize int `yaml:"batch_size" default:"100"`

	// BatchTimeout is the maximum time to wait before sending a batch
	// Only used when Async is true
	// Default: 1s
	BatchTimeout time.Duration `yaml:"batch_timeout" default:"1s"`

	// CompressionCodec specifies the compression algorithm to use
	// Options: "" (none), gzip, snappy, lz4, zstd
	CompressionCodec string `yaml:"compression_codec"`

	// MaxAttempts is the maximum number of attempts to deliver a message
	// Default: 10
	MaxAttempts int `yaml:"max_attempts" default:"10"`

	// ClientID identifies the producer in broker logs and quotas.
	// Default: devicetel
	ClientID string `yaml:"client_id" default:"devicetel"`

	// AllowAutoTopicCreation lets the writer create missing topics
	// Default: false
	AllowAutoTopicCreation bool `yaml:"allow_auto_topic_creation"`

	// TLS contains TLS/SSL configuration
	TLS TLSConfig `yaml:"tls"`

	// SASL contains SASL authentication configuration
	SASL SASLConfig `yaml:"sasl"`
}

// TopicsConfig names the topic per OTLP signal. The defaults match the
// collector kafka receiver's defaults.
type TopicsConfig struct {
	Traces  string `yaml:"traces" default:"otlp_spans"`
	Metrics string `yaml:"metrics" default:"otlp_metrics"`
	Logs    string `yaml:"logs" default:"otlp_logs"`
}

// Logger is the subset of logger.Logger used by the Kafka client.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	// Enabled determines whether to use TLS/SSL for the connection
	Enabled bool `yaml:"enabled"`

	// CACertPath is the file path to the CA certificate for verifying the broker
	CACertPath string `yaml:"ca_cert_path"`

	// ClientCertPath is the file path to the client certificate
	ClientCertPath string `yaml:"client_cert_path"`

	// ClientKeyPath is the file path to the client certificate's private key
	ClientKeyPath string `yaml:"client_key_path"`

	// InsecureSkipVerify controls whether to skip verification of the server's certificate
	// WARNING: Setting this to true is insecure and should only be used in testing
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// SASLConfig contains SASL authentication configuration parameters.
type SASLConfig struct {
	// Enabled determines whether to use SASL authentication
	Enabled bool `yaml:"enabled"`

	// Mechanism specifies the SASL mechanism to use
	// Options: "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"
	Mechanism string `yaml:"mechanism"`

	// Username is the SASL username
	Username string `yaml:"username"`

	// Password is the SASL password
	Password string `yaml:"password"` //nolint:gosec
}

// Default values for configuration
const (
	DefaultTracesTopic  = "otlp_spans"
	DefaultMetricsTopic = "otlp_metrics"
	DefaultLogsTopic    = "otlp_logs"
	DefaultRequiredAcks = -1 // WaitForAll
	DefaultBatchSize    = 100
	DefaultBatchTimeout = 1 * time.Second
	DefaultMaxAttempts  = 10
	DefaultWriteTimeout = 10 * time.Second
	DefaultClientID     = "devicetel"

	// Producer acknowledgment modes
	RequireNone = 0  // Fire-and-forget (no acknowledgment)
	RequireOne  = 1  // Wait for leader only
	RequireAll  = -1 // Wait for all in-sync replicas (most durable)

	// ContentTypeHeader carries the document's content type on every message.
	ContentTypeHeader = "content-type"
)
