package otlphttp

import (
	"context"
	"time"
)

// Config defines how the client reaches the collector's OTLP/HTTP receiver.
type Config struct {
	// Host is the collector address, e.g. "192.168.1.10" or "otel-collector".
	Host string `yaml:"host"`

	// Port is the OTLP/HTTP receiver port.
	// Default: 4318
	Port int `yaml:"port" default:"4318"`

	// Scheme is "http" or "https".
	// Default: http
	Scheme string `yaml:"scheme" default:"http"`

	// Timeout bounds each POST, including reading the response.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" default:"10s"`

	// Headers are added to every request, e.g. an API key for a hosted collector.
	Headers map[string]string `yaml:"headers"`

	// InsecureSkipVerify disables TLS verification for https collectors.
	// WARNING: only for lab setups with self-signed certificates
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// Logger is the subset of logger.Logger used by the client.
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultPort    = 4318
	DefaultScheme  = "http"
	DefaultTimeout = 10 * time.Second
)
