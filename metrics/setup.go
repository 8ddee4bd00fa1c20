package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the system and application registries and the HTTP servers
// exposing them. Either server is nil when its endpoint is disabled.
type Metrics struct {
	// SystemServer serves Go runtime, process and build info metrics.
	SystemServer *http.Server

	// ApplicationServer serves the export metrics and anything created
	// through CreateCounter, CreateGauge or CreateHistogram.
	ApplicationServer *http.Server

	SystemRegistry      *prometheus.Registry
	ApplicationRegistry *prometheus.Registry

	// applicationRegisterer adds the constant service label
	applicationRegisterer prometheus.Registerer
}

// NewMetrics builds the registries and servers described by cfg. Servers are
// started by the FX lifecycle or by the caller:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "greenhouse-node"})
//	go m.ApplicationServer.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	m := &Metrics{}
	labels := prometheus.Labels{"service": cfg.ServiceName}

	if addr := addressOrDefault(cfg.SystemMetricsAddress, DefaultSystemMetricsAddress); addr != "" {
		registry := prometheus.NewRegistry()
		prometheus.WrapRegistererWith(labels, registry).MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
		m.SystemRegistry = registry
		m.SystemServer = newServer(addr, registry)
	}

	m.ApplicationRegistry = prometheus.NewRegistry()
	m.applicationRegisterer = prometheus.WrapRegistererWith(labels, m.ApplicationRegistry)
	if addr := addressOrDefault(cfg.ApplicationMetricsAddress, DefaultApplicationMetricsAddress); addr != "" {
		m.ApplicationServer = newServer(addr, m.ApplicationRegistry)
	}

	return m
}

func addressOrDefault(addr *string, def string) string {
	if addr == nil {
		return def
	}
	return *addr
}

func newServer(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
