package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/aalemi-dev/devicetel/observability"
	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/spans"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

// Publish sends payload as JSON to topic inside a PRODUCER span. The span
// continues the trace in ctx, if any, and its context is injected into a copy
// of payload. The injected context is returned.
func (b *Bridge) Publish(ctx context.Context, topic string, payload map[string]interface{}) (tracecontext.TraceContext, error) {
	if !b.client.IsConnected() {
		return tracecontext.TraceContext{}, ErrNotConnected
	}

	parent, _ := tracecontext.FromContext(ctx)
	traceID, spanID, err := b.telemetry.StartTrace(ctx, PublishSpanName, spans.KindProducer,
		otlp.PreShaped(otlp.String(AttrTopic, topic), otlp.String(AttrEvent, EventPublish)),
		parent.TraceID, parent.ParentSpanID)
	if err != nil {
		return tracecontext.TraceContext{}, err
	}
	spanCtx := b.telemetry.ContextWithSpan(ctx, traceID, spanID)
	defer func() {
		_, _, _ = b.telemetry.EndTrace(spanCtx, spanID)
	}()

	message := make(tracecontext.PayloadCarrier, len(payload)+3)
	for k, v := range payload {
		message[k] = v
	}
	injected := b.telemetry.InjectContext(message, traceID, spanID, "")

	body, err := json.Marshal(message)
	if err != nil {
		return injected, fmt.Errorf("failed to encode payload: %w", err)
	}

	start := time.Now()
	err = b.wait(spanCtx, b.client.Publish(topic, b.cfg.QoS, false, body), b.cfg.OperationTimeout)
	b.observeOperation("publish", topic, time.Since(start), err, int64(len(body)))
	if err != nil {
		return injected, fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return injected, nil
}

// Subscribe registers handler for topic. Each message is decoded, continued
// as a CONSUMER span named mqtt_message_received, its "payload" field logged
// against that span, and handed to handler before the span ends. handler may
// be nil. Subscriptions are restored after reconnects.
func (b *Bridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	if !b.client.IsConnected() {
		return ErrNotConnected
	}

	callback := func(_ paho.Client, msg paho.Message) {
		b.handle(msg.Topic(), msg.Payload(), handler)
	}
	if err := b.wait(ctx, b.client.Subscribe(topic, b.cfg.QoS, callback), b.cfg.OperationTimeout); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	b.mu.Lock()
	b.subscriptions[topic] = callback
	b.mu.Unlock()

	b.logInfo(ctx, "MQTT subscription added", map[string]interface{}{"topic": topic})
	return nil
}

// Unsubscribe removes the subscription for topic.
func (b *Bridge) Unsubscribe(ctx context.Context, topic string) error {
	b.mu.Lock()
	delete(b.subscriptions, topic)
	b.mu.Unlock()

	if !b.client.IsConnected() {
		return nil
	}
	if err := b.wait(ctx, b.client.Unsubscribe(topic), b.cfg.OperationTimeout); err != nil {
		return fmt.Errorf("failed to unsubscribe from %s: %w", topic, err)
	}
	return nil
}

func (b *Bridge) handle(topic string, raw []byte, handler Handler) {
	ctx := context.Background()
	start := time.Now()

	carrier, err := tracecontext.DecodePayload(raw)
	if err != nil {
		err = fmt.Errorf("failed to decode message: %w", err)
		b.logWarn(ctx, "failed to process MQTT message", err, map[string]interface{}{"topic": topic})
		b.observeOperation("receive", topic, time.Since(start), err, int64(len(raw)))
		return
	}

	parent := b.telemetry.ExtractContext(carrier)

	traceID, spanID, err := b.telemetry.StartTrace(ctx, ReceiveSpanName, spans.KindConsumer,
		otlp.PreShaped(otlp.String(AttrTopic, topic), otlp.String(AttrEvent, EventReceive)),
		parent.TraceID, parent.ParentSpanID)
	if err != nil {
		b.logWarn(ctx, "failed to process MQTT message", err, map[string]interface{}{"topic": topic})
		b.observeOperation("receive", topic, time.Since(start), err, int64(len(raw)))
		return
	}
	spanCtx := b.telemetry.ContextWithSpan(ctx, traceID, spanID)

	_ = b.telemetry.Log(spanCtx, traceID, spanID, carrier.Get(PayloadField),
		otlp.StringMap(map[string]string{"source": "mqtt"}))

	if handler != nil {
		err = handler(spanCtx, Message{
			Topic:   topic,
			Payload: carrier,
			Raw:     raw,
			Parent:  parent,
			TraceID: traceID,
			SpanID:  spanID,
		})
		if err != nil {
			b.logWarn(spanCtx, "MQTT message handler failed", err, map[string]interface{}{"topic": topic})
		}
	}

	_, _, _ = b.telemetry.EndTrace(spanCtx, spanID)
	b.observeOperation("receive", topic, time.Since(start), err, int64(len(raw)))
}

func (b *Bridge) observeOperation(operation, topic string, duration time.Duration, err error, size int64) {
	observability.Notify(b.observer, observability.OperationContext{
		Component: "mqtt",
		Operation: operation,
		Resource:  topic,
		Duration:  duration,
		Error:     err,
		Size:      size,
	})
}

func (b *Bridge) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if b.logger != nil {
		b.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (b *Bridge) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if b.logger != nil {
		b.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
