package otlp

// ScopeName is the instrumentation scope attached to every document. The
// collector correlates telemetry by resource+scope, so it is shared by all
// signal types and kept identical to what deployed devices already emit.
const ScopeName = "micropython-client"

// ContentType is the media type of every encoded document.
const ContentType = "application/json"

// Collector endpoint paths, one per signal.
const (
	TracesPath  = "/v1/traces"
	MetricsPath = "/v1/metrics"
	LogsPath    = "/v1/logs"
)

// Signal identifies the telemetry type of a document.
type Signal string

const (
	SignalTraces  Signal = "traces"
	SignalMetrics Signal = "metrics"
	SignalLogs    Signal = "logs"
)

// Path returns the collector path for the signal.
func (s Signal) Path() string {
	switch s {
	case SignalTraces:
		return TracesPath
	case SignalMetrics:
		return MetricsPath
	case SignalLogs:
		return LogsPath
	}
	return ""
}

// SignalForPath is the inverse of Signal.Path. ok is false for unknown paths.
func SignalForPath(path string) (Signal, bool) {
	switch path {
	case TracesPath:
		return SignalTraces, true
	case MetricsPath:
		return SignalMetrics, true
	case LogsPath:
		return SignalLogs, true
	}
	return "", false
}

// MetricKind selects the point structure of a metric document.
type MetricKind string

const (
	KindGauge     MetricKind = "gauge"
	KindSum       MetricKind = "sum"
	KindHistogram MetricKind = "histogram"
)

// AggregationTemporality mirrors the OTLP enumeration.
type AggregationTemporality int

const (
	TemporalityUnspecified AggregationTemporality = 0
	TemporalityDelta       AggregationTemporality = 1
	TemporalityCumulative  AggregationTemporality = 2
)

// filteredMetricAttributes are dropped from metric data points.
var filteredMetricAttributes = map[string]struct{}{
	"net.peer.port": {},
}
