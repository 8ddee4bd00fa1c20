// Package mqtt propagates trace context over MQTT with JSON payloads.
//
// Bridge.Publish wraps a publish in a PRODUCER span and injects traceparent,
// trace_id and parent_span_id into the payload. Bridge.Subscribe continues
// incoming context as a CONSUMER span named mqtt_message_received, logs the
// message's "payload" field against it and calls the handler with a context
// carrying the span:
//
//	bridge, _ := mqtt.NewBridge(mqtt.Config{Broker: "tcp://192.168.1.20:1883"}, client)
//	_ = bridge.Connect(ctx)
//	_ = bridge.Subscribe(ctx, "devices/requests", func(ctx context.Context, msg mqtt.Message) error {
//	    reply := map[string]interface{}{"payload": strings.ToUpper(fmt.Sprint(msg.Payload["payload"]))}
//	    _, err := bridge.Publish(ctx, "devices/responses", reply)
//	    return err
//	})
//
// Payloads that are not JSON objects are logged and dropped.
package mqtt
