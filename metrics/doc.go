// Package metrics exposes the client's own health as Prometheus metrics.
//
// Two endpoints are served: the system endpoint (default :9090) with Go
// runtime, process and build info collectors, and the application endpoint
// (default :9091) with export metrics. Every metric carries a constant
// "service" label.
//
// ExportObserver implements observability.Observer. Handing it to the
// exporter, otlphttp, kafka or mqtt components records one sample per export
// attempt:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "greenhouse-node"})
//	obs := metrics.NewExportObserver(m)
//	client := exporter.NewClient(cfg, transport).WithObserver(obs)
//
//	# HELP devicetel_exports_total Telemetry export attempts by outcome.
//	devicetel_exports_total{component="exporter",operation="export",outcome="failure",service="greenhouse-node",signal="traces"} 1
//
// A failure is any attempt whose event carries an error, including collector
// answers outside 2xx.
package metrics
