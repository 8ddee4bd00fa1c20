// Package kafka delivers OTLP/JSON documents to Apache Kafka, for fleets
// where devices reach a broker but not the collector directly.
//
// The OpenTelemetry collector's kafka receiver reads OTLP from three topics,
// one per signal, and accepts JSON payloads with encoding "otlp_json". This
// package writes each document the exporter produces unchanged as one message
// to the matching topic:
//
//	/v1/traces  -> Topics.Traces  (default "otlp_spans")
//	/v1/metrics -> Topics.Metrics (default "otlp_metrics")
//	/v1/logs    -> Topics.Logs    (default "otlp_logs")
//
// KafkaClient implements transport.Transport, so it can replace the HTTP
// client without changing the exporter:
//
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers: []string{"broker:9092"},
//		Key:     "sensor-node-7",
//	})
//	if err != nil {
//		return err
//	}
//	defer client.GracefulShutdown()
//
//	exp := exporter.NewClient(exporter.Config{Resource: res}, client)
//
// # FX Module Integration
//
// FXModule provides *KafkaClient and the Client interface; the application
// binds it as the transport:
//
//	fx.New(
//		kafka.FXModule,
//		fx.Provide(func(k *kafka.KafkaClient) transport.Transport { return k }),
//		exporter.FXModule,
//	)
//
// # Security
//
// TLS (CA and client certificates) and SASL (PLAIN, SCRAM-SHA-256,
// SCRAM-SHA-512) are configured through Config.TLS and Config.SASL.
//
// # Error Handling
//
// Send wraps kafka-go errors with one of this package's error values
// (ErrConnectionFailed, ErrTopicNotFound, ErrMessageTooLarge, ...) so callers
// can use errors.Is, and IsRetryableError / IsPermanentError classify them.
// The exporter itself never retries; these helpers serve applications that
// queue documents on their own.
package kafka
