// Package otlphttp delivers OTLP/JSON documents to an OpenTelemetry collector
// over HTTP.
//
// Each Send is a single POST to {scheme}://{host}:{port}{path} with the given
// content type. There is no batching, retry or queueing: the collector's
// answer is returned to the caller as a transport.Status and failures are
// reported once to the configured observer.
//
//	client := otlphttp.NewClient(otlphttp.Config{Host: "192.168.1.10"})
//	status, err := client.Send(ctx, otlp.TracesPath, otlp.ContentType, body)
package otlphttp
