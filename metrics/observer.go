package metrics

import (
	"github.com/aalemi-dev/devicetel/observability"
)

// ExportObserver turns observability events into Prometheus metrics:
//
//	devicetel_exports_total{component,operation,signal,outcome}
//	devicetel_export_duration_seconds{component,operation,signal}
//	devicetel_export_bytes_total{component,operation,signal}
//
// signal is the event's SubResource, or its Resource when no SubResource is
// set (MQTT topics).
type ExportObserver struct {
	total    Counter
	duration Histogram
	bytes    Counter
}

// NewExportObserver registers the export metrics on collector. It must be
// called at most once per collector.
func NewExportObserver(collector MetricsCollector) *ExportObserver {
	labels := []string{"component", "operation", "signal"}
	return &ExportObserver{
		total: collector.CreateCounter(ExportsTotalName,
			"Telemetry export attempts by outcome.", append(labels, "outcome")),
		duration: collector.CreateHistogram(ExportDurationSecondsName,
			"Duration of telemetry export attempts in seconds.", labels, DefaultDurationBuckets),
		bytes: collector.CreateCounter(ExportBytesTotalName,
			"Encoded telemetry bytes handed to a transport.", labels),
	}
}

// ObserveOperation implements observability.Observer.
func (o *ExportObserver) ObserveOperation(ctx observability.OperationContext) {
	signal := ctx.SubResource
	if signal == "" {
		signal = ctx.Resource
	}

	outcome := OutcomeSuccess
	if ctx.Error != nil {
		outcome = OutcomeFailure
	}

	o.total.WithLabelValues(ctx.Component, ctx.Operation, signal, outcome).Inc()
	o.duration.WithLabelValues(ctx.Component, ctx.Operation, signal).Observe(ctx.Duration.Seconds())
	if ctx.Size > 0 {
		o.bytes.WithLabelValues(ctx.Component, ctx.Operation, signal).Add(float64(ctx.Size))
	}
}
