// Package exporter is the application-facing telemetry client.
//
// A Client owns the resource attributes, the identifier generator, the span
// registry, the clock and a transport. Every span end, metric point and log
// record becomes one OTLP/JSON document posted to the matching collector path:
//
//	client := exporter.NewClient(exporter.Config{
//	    Resource: map[string]string{"service.name": "greenhouse-node"},
//	}, otlphttp.NewClient(otlphttp.Config{Host: "192.168.1.10"}))
//
//	traceID, spanID, _ := client.StartTrace(ctx, "read_sensor", spans.KindInternal, otlp.Attributes{}, "", "")
//	_ = client.SendGaugeMetric(ctx, "temperature", 22, otlp.StringMap(map[string]string{"room": "lab"}))
//	_ = client.Log(ctx, traceID, spanID, "sensor read", otlp.Attributes{})
//	client.EndTrace(ctx, spanID)
//
// Trace context crosses message and HTTP boundaries with InjectContext,
// InjectHeaders, ExtractContext and HandleMessage. Propagation helpers fall
// back to the ids of the most recently started span when called without ids.
//
// Delivery is best effort. A failed or rejected export is logged at warn
// level, reported to the observer and otherwise dropped; nothing is retried.
package exporter
