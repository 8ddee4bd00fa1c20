// Package transport defines the delivery contract between the exporter and
// the collector, plus small in-process implementations.
//
// The exporter hands each encoded document to a Transport together with the
// OTLP signal path. Concrete transports live in otlphttp (HTTP POST) and kafka
// (topic per signal). Delivery is best-effort: the exporter logs failures and
// never retries.
//
//go:generate mockgen -source=interface.go -destination=mock_transport.go -package=transport
package transport
