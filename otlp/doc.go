// Package otlp builds OTLP/JSON export documents for traces, metrics and logs.
//
// Every document carries exactly one record, the Builder's Resource and the
// shared ScopeName. Field names follow the OTLP JSON encoding verbatim
// (resourceSpans, scopeMetrics, logRecords, ...). Attribute values are always
// wrapped as {"stringValue": ...}; numeric metric values go on the data point
// as asInt.
//
// Attribute input is a tagged union:
//
//	otlp.Map(map[string]interface{}{"unit": "celsius"})   // stringified
//	otlp.PreShaped(otlp.String("unit", "celsius"))          // passed through
//
// FormatAttributes resolves dynamically typed input into the same shapes and
// rejects anything else with ErrBadAttributeShape.
//
//	b := otlp.NewBuilder(otlp.Map(map[string]interface{}{"service.name": "sensor"}))
//	doc, err := b.BuildMetric(otlp.MetricSample{Name: "temperature", Kind: otlp.KindGauge, Value: 24})
//	body, err := otlp.Encode(doc)
package otlp
