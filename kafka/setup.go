package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/aalemi-dev/devicetel/observability"
)

// KafkaClient writes OTLP/JSON documents to one Kafka topic per signal.
//
// KafkaClient implements the Client interface.
type KafkaClient struct {
	cfg      Config
	observer observability.Observer
	logger   Logger

	// mu guards writer and closed; the topic is set per message.
	mu     sync.RWMutex
	writer messageWriter
	closed bool
}

// compressionCodecs maps Config.CompressionCodec names. The empty name
// disables compression.
var compressionCodecs = map[string]compress.Compression{
	"":       0,
	"none":   0,
	"gzip":   compress.Gzip,
	"snappy": compress.Snappy,
	"lz4":    compress.Lz4,
	"zstd":   compress.Zstd,
}

// NewClient creates a KafkaClient. Zero config fields take their defaults.
// No connection is made until the first Send.
//
//	client, err := kafka.NewClient(kafka.Config{
//	    Brokers: []string{"broker:9092"},
//	    Key:     "esp32-07",
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.GracefulShutdown()
func NewClient(cfg Config) (*KafkaClient, error) {
	cfg = withDefaults(cfg)

	if _, ok := compressionCodecs[strings.ToLower(cfg.CompressionCodec)]; !ok {
		return nil, fmt.Errorf("unsupported compression codec %q", cfg.CompressionCodec)
	}

	var (
		tlsConfig *tls.Config
		mechanism sasl.Mechanism
		err       error
	)
	if cfg.TLS.Enabled {
		if tlsConfig, err = createTLSConfig(cfg.TLS); err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}
	if cfg.SASL.Enabled {
		if mechanism, err = createSASLMechanism(cfg.SASL); err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	k := &KafkaClient{cfg: cfg}
	k.writer = createWriter(cfg, tlsConfig, mechanism, k)
	return k, nil
}

func withDefaults(cfg Config) Config {
	defaultString := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	defaultString(&cfg.Topics.Traces, DefaultTracesTopic)
	defaultString(&cfg.Topics.Metrics, DefaultMetricsTopic)
	defaultString(&cfg.Topics.Logs, DefaultLogsTopic)
	defaultString(&cfg.ClientID, DefaultClientID)

	if cfg.RequiredAcks == 0 {
		cfg.RequiredAcks = DefaultRequiredAcks
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	return cfg
}

// WithObserver attaches an observer notified after every send.
func (k *KafkaClient) WithObserver(observer observability.Observer) *KafkaClient {
	k.observer = observer
	return k
}

// WithLogger attaches a logger for lifecycle events and writer errors. It
// also applies to a writer created before the call.
func (k *KafkaClient) WithLogger(logger Logger) *KafkaClient {
	k.logger = logger
	return k
}

func (k *KafkaClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if k.logger != nil {
		k.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (k *KafkaClient) logWarn(ctx context.Context, msg string, fields map[string]interface{}) {
	if k.logger != nil {
		k.logger.WarnWithContext(ctx, msg, nil, fields)
	}
}

// logError is only used for writer errors that cannot reach a caller.
func (k *KafkaClient) logError(ctx context.Context, msg string, fields map[string]interface{}) {
	if k.logger != nil {
		k.logger.ErrorWithContext(ctx, msg, nil, fields)
	}
}

// createErrorLogger routes kafka-go's internal errors to the client's
// logger, looked up per call.
func createErrorLogger(client *KafkaClient) kafka.LoggerFunc {
	return func(msg string, args ...interface{}) {
		if len(args) > 0 {
			msg = fmt.Sprintf(msg, args...)
		}
		client.logError(context.Background(), "Kafka writer error", map[string]interface{}{
			"error": msg,
		})
	}
}

// createWriter builds a topic-less writer; every message names its topic.
// With a message key the hash balancer keeps one device's documents in one
// partition, in order.
func createWriter(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism, client *KafkaClient) *kafka.Writer {
	var balancer kafka.Balancer = &kafka.LeastBytes{}
	if cfg.Key != "" {
		balancer = &kafka.Hash{}
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               balancer,
		MaxAttempts:            cfg.MaxAttempts,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		AllowAutoTopicCreation: cfg.AllowAutoTopicCreation,
		Compression:            compressionCodecs[strings.ToLower(cfg.CompressionCodec)],
		ErrorLogger:            createErrorLogger(client),
		Transport: &kafka.Transport{
			ClientID: cfg.ClientID,
			TLS:      tlsConfig,
			SASL:     mechanism,
		},
	}

	if cfg.Async {
		w.Async = true
		w.BatchSize = cfg.BatchSize
		w.BatchTimeout = cfg.BatchTimeout
		w.Completion = func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			client.logWarn(context.Background(), "Async Kafka write failed", map[string]interface{}{
				"error":    TranslateError(err).Error(),
				"messages": len(messages),
			})
		}
	}
	return w
}

func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	if cfg.CACertPath != "" {
		pem, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.CACertPath)
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	return tlsConfig, nil
}

// createSASLMechanism accepts PLAIN, SCRAM-SHA-256 and SCRAM-SHA-512, in any case.
func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch strings.ToUpper(cfg.Mechanism) {
	case "PLAIN":
		return plain.Mechanism{Username: cfg.Username, Password: cfg.Password}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}
