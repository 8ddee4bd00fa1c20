package config

import (
	"github.com/aalemi-dev/devicetel/clock"
	"github.com/aalemi-dev/devicetel/exporter"
	"github.com/aalemi-dev/devicetel/kafka"
	"github.com/aalemi-dev/devicetel/logger"
	"github.com/aalemi-dev/devicetel/metrics"
	"github.com/aalemi-dev/devicetel/mqtt"
	"github.com/aalemi-dev/devicetel/otlphttp"
)

// Transport names accepted in Config.Transport.
const (
	TransportOTLPHTTP = "otlphttp"
	TransportKafka    = "kafka"

	// TransportDiscard drops every document; useful for dry runs.
	TransportDiscard = "discard"
)

// Resource attribute keys filled in when absent.
const (
	ServiceNameKey       = "service.name"
	ServiceInstanceIDKey = "service.instance.id"

	DefaultServiceName = "devicetel"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DEVICETEL_"

// Config is the complete client configuration, usually loaded from YAML.
//
//	transport: otlphttp
//	collector:
//	  host: 192.168.1.10
//	resource:
//	  service.name: greenhouse-node
//	  host.name: esp32-07
//	logger:
//	  level: debug
type Config struct {
	// Transport selects how documents reach the collector.
	// Default: otlphttp
	Transport string `yaml:"transport" default:"otlphttp"`

	// Collector addresses the OTLP/HTTP receiver.
	Collector otlphttp.Config `yaml:"collector"`

	// Resource is attached to every exported document.
	Resource map[string]string `yaml:"resource"`

	Exporter ExporterConfig `yaml:"exporter"`
	Logger   logger.Config  `yaml:"logger"`
	Kafka    kafka.Config   `yaml:"kafka"`
	MQTT     mqtt.Config    `yaml:"mqtt"`
	Clock    ClockConfig    `yaml:"clock"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ExporterConfig holds the exporter settings that are not the resource.
type ExporterConfig struct {
	// Sampled is the traceparent flags field used when none is given.
	// Default: "01"
	Sampled string `yaml:"sampled" default:"01"`
}

// ClockConfig controls time synchronisation on start.
type ClockConfig struct {
	clock.Config `yaml:",inline"`

	// Enabled runs a time sync when the exporter starts.
	// Default: true
	Enabled bool `yaml:"enabled" default:"true"`

	// SourceURL is queried with HEAD and its Date header used as reference
	// time. Empty means the collector's base URL.
	SourceURL string `yaml:"source_url"`
}

// MetricsConfig controls the self-metrics endpoints.
type MetricsConfig struct {
	metrics.Config `yaml:",inline"`

	// Enabled starts the Prometheus endpoints.
	Enabled bool `yaml:"enabled"`
}

// ExporterConfig returns the exporter settings with the resource merged in.
func (c *Config) ExporterConfig() exporter.Config {
	resource := make(map[string]string, len(c.Resource))
	for k, v := range c.Resource {
		resource[k] = v
	}
	return exporter.Config{
		Resource:  resource,
		Sampled:   c.Exporter.Sampled,
		SyncClock: c.Clock.Enabled,
	}
}

// ServiceName returns the service.name resource attribute.
func (c *Config) ServiceName() string {
	return c.Resource[ServiceNameKey]
}
