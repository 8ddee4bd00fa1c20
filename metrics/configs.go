package metrics

import "context"

// Default listen addresses.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"
)

// Metric names recorded by ExportObserver.
const (
	ExportsTotalName          = "devicetel_exports_total"
	ExportDurationSecondsName = "devicetel_export_duration_seconds"
	ExportBytesTotalName      = "devicetel_export_bytes_total"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// DefaultDurationBuckets suit collector round trips over Wi-Fi, in seconds.
var DefaultDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Config controls the two Prometheus endpoints: one for Go runtime and
// process metrics, one for the client's own export metrics.
type Config struct {
	// SystemMetricsAddress is where runtime and process metrics are served.
	// nil means ":9090"; a pointer to "" disables the endpoint.
	SystemMetricsAddress *string `yaml:"system_metrics_address"`

	// ApplicationMetricsAddress is where export metrics are served.
	// nil means ":9091"; a pointer to "" disables the endpoint, but metrics
	// are still recorded in an unexposed registry.
	ApplicationMetricsAddress *string `yaml:"application_metrics_address"`

	// ServiceName becomes the constant "service" label on every metric.
	ServiceName string `yaml:"service_name"`
}

// Ptr returns a pointer to s, for disabling endpoints in code:
//
//	metrics.Config{SystemMetricsAddress: metrics.Ptr("")}
func Ptr(s string) *string {
	return &s
}

// Logger is the subset of logger.Logger used by the server lifecycle.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
