package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aalemi-dev/devicetel/logger"
)

// LookupFunc reads one environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from DEVICETEL_* variables read through lookup:
//
//	DEVICETEL_TRANSPORT              transport
//	DEVICETEL_COLLECTOR_HOST         collector.host
//	DEVICETEL_COLLECTOR_PORT         collector.port
//	DEVICETEL_COLLECTOR_SCHEME       collector.scheme
//	DEVICETEL_COLLECTOR_TIMEOUT      collector.timeout
//	DEVICETEL_SERVICE_NAME           resource["service.name"]
//	DEVICETEL_LOG_LEVEL              logger.level
//	DEVICETEL_KAFKA_BROKERS          kafka.brokers (comma separated)
//	DEVICETEL_KAFKA_SASL_USERNAME    kafka.sasl.username
//	DEVICETEL_KAFKA_SASL_PASSWORD    kafka.sasl.password
//	DEVICETEL_MQTT_BROKER            mqtt.broker
//	DEVICETEL_MQTT_USERNAME          mqtt.username
//	DEVICETEL_MQTT_PASSWORD          mqtt.password
//	DEVICETEL_CLOCK_SYNC             clock.enabled
//	DEVICETEL_METRICS_ENABLED        metrics.enabled
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	e := envReader{lookup: lookup}

	e.str("TRANSPORT", &c.Transport)
	e.str("COLLECTOR_HOST", &c.Collector.Host)
	e.integer("COLLECTOR_PORT", &c.Collector.Port)
	e.str("COLLECTOR_SCHEME", &c.Collector.Scheme)
	e.duration("COLLECTOR_TIMEOUT", &c.Collector.Timeout)
	if name, ok := e.get("SERVICE_NAME"); ok {
		if c.Resource == nil {
			c.Resource = make(map[string]string)
		}
		c.Resource[ServiceNameKey] = name
		c.Logger.ServiceName = name
		c.Metrics.ServiceName = name
	}
	e.str("LOG_LEVEL", &c.Logger.Level)
	if brokers, ok := e.get("KAFKA_BROKERS"); ok {
		c.Kafka.Brokers = splitList(brokers)
	}
	e.str("KAFKA_SASL_USERNAME", &c.Kafka.SASL.Username)
	e.str("KAFKA_SASL_PASSWORD", &c.Kafka.SASL.Password)
	e.str("MQTT_BROKER", &c.MQTT.Broker)
	e.str("MQTT_USERNAME", &c.MQTT.Username)
	e.str("MQTT_PASSWORD", &c.MQTT.Password)
	e.boolean("CLOCK_SYNC", &c.Clock.Enabled)
	e.boolean("METRICS_ENABLED", &c.Metrics.Enabled)

	return e.err
}

// Validate checks the settings the selected transport depends on.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportOTLPHTTP:
		if c.Collector.Host == "" {
			return invalid("collector.host is required for the otlphttp transport")
		}
		if c.Collector.Port < 1 || c.Collector.Port > 65535 {
			return invalid("collector.port %d is out of range", c.Collector.Port)
		}
		if c.Collector.Scheme != "http" && c.Collector.Scheme != "https" {
			return invalid("collector.scheme must be http or https, got %q", c.Collector.Scheme)
		}
	case TransportKafka:
		if len(c.Kafka.Brokers) == 0 {
			return invalid("kafka.brokers is required for the kafka transport")
		}
	case TransportDiscard:
	default:
		return invalid("unknown transport %q", c.Transport)
	}

	switch strings.ToLower(c.Logger.Level) {
	case logger.Debug, logger.Info, logger.Warning, "warn", logger.Error:
	default:
		return invalid("unknown logger.level %q", c.Logger.Level)
	}

	if c.MQTT.QoS > 2 {
		return invalid("mqtt.qos must be 0, 1 or 2")
	}
	if c.MQTT.Broker != "" {
		if _, err := url.Parse(c.MQTT.Broker); err != nil {
			return invalid("mqtt.broker: %v", err)
		}
	}
	if c.Clock.SyncAttempts < 1 {
		return invalid("clock.sync_attempts must be at least 1")
	}
	return nil
}

// CollectorURL is the collector's base URL, used as the default time source.
func (c *Config) CollectorURL() string {
	return (&url.URL{
		Scheme: c.Collector.Scheme,
		Host:   net.JoinHostPort(c.Collector.Host, strconv.Itoa(c.Collector.Port)),
		Path:   "/",
	}).String()
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// envReader applies overrides and keeps the first parse error.
type envReader struct {
	lookup LookupFunc
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(EnvPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("%w: %s%s: %w", ErrInvalidConfig, EnvPrefix, key, err)
	}
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) integer(key string, dst *int) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) boolean(key string, dst *bool) {
	if v, ok := e.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) duration(key string, dst *time.Duration) {
	if v, ok := e.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, err)
			return
		}
		*dst = d
	}
}
