package metrics

// MetricsCollector creates metrics registered to the application registry.
// *Metrics implements it; no Prometheus types leak through it.
type MetricsCollector interface {
	// CreateCounter registers a counter vector.
	//
	//   c := m.CreateCounter("sensor_reads_total", "Sensor reads", []string{"sensor"})
	//   c.WithLabelValues("dht22").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateHistogram registers a histogram vector with the given buckets.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram

	// CreateGauge registers a gauge vector.
	CreateGauge(name, help string, labels []string) Gauge
}
