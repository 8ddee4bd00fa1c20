// Package observability defines the hook through which devicetel components
// report what they did.
//
// Every transport (otlphttp, kafka) and bridge (mqtt) accepts an optional
// Observer and calls it once per completed operation with an OperationContext
// describing the component, the operation, its target, duration, size and
// error. The metrics package turns these events into Prometheus series:
//
//	obs := metrics.NewExportObserver(m)
//	client := otlphttp.NewClient(cfg).WithObserver(obs)
//
// Observers are called synchronously on the caller's goroutine and must not
// block. Use Multi to feed several observers and Notify for nil-safe calls.
package observability
