package exporter

import (
	"context"
	"fmt"
	"time"

	"github.com/aalemi-dev/devicetel/observability"
	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/spans"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

// BuildTraceparent renders a traceparent, falling back to the last-used ids
// and then to fresh ones for empty arguments. An empty sampled uses the
// configured default.
func (c *Client) BuildTraceparent(traceID, spanID, sampled string) string {
	return c.codec.Build(traceID, spanID, c.sampled(sampled))
}

// InjectContext writes traceparent, trace_id and parent_span_id into carrier,
// typically a tracecontext.PayloadCarrier wrapping an outgoing message.
func (c *Client) InjectContext(carrier tracecontext.Carrier, traceID, spanID, sampled string) tracecontext.TraceContext {
	return c.codec.Inject(carrier, traceID, spanID, c.sampled(sampled))
}

// InjectHeaders writes only the traceparent header, e.g. into
// propagation.HeaderCarrier(req.Header).
func (c *Client) InjectHeaders(carrier tracecontext.Carrier, traceID, spanID, sampled string) string {
	return c.codec.InjectHeaders(carrier, traceID, spanID, c.sampled(sampled))
}

// ExtractContext reads trace context from carrier. Absent or malformed
// context yields an empty TraceContext.
func (c *Client) ExtractContext(carrier tracecontext.Carrier) tracecontext.TraceContext {
	return tracecontext.Extract(carrier)
}

// HandleMessage decodes a JSON message body, extracts any propagated context
// and starts a CONSUMER span continuing it. The caller ends the span.
// An empty name uses MessageSpanName.
func (c *Client) HandleMessage(ctx context.Context, name string, payload []byte, attrs otlp.Attributes) (string, string, error) {
	body, err := tracecontext.DecodePayload(payload)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if name == "" {
		name = MessageSpanName
	}

	tc := c.ExtractContext(body)
	c.debug(ctx, "extracted message context", map[string]interface{}{
		"trace_id":       tc.TraceID,
		"parent_span_id": tc.ParentSpanID,
	})
	return c.StartTrace(ctx, name, spans.KindConsumer, attrs, tc.TraceID, tc.ParentSpanID)
}

// ContextWithSpan returns ctx carrying traceID/spanID as a remote span
// context so that context-aware loggers tag entries with them.
func (c *Client) ContextWithSpan(ctx context.Context, traceID, spanID string) context.Context {
	return tracecontext.ContextWith(ctx, tracecontext.TraceContext{
		TraceID:      traceID,
		ParentSpanID: spanID,
		Sampled:      c.cfg.Sampled,
	})
}

// SyncClock runs the clock's time sync when the clock supports one.
func (c *Client) SyncClock(ctx context.Context) error {
	syncer, ok := c.clock.(interface {
		Sync(ctx context.Context) error
	})
	if !ok {
		return nil
	}
	return syncer.Sync(ctx)
}

func (c *Client) sampled(sampled string) string {
	if sampled == "" {
		return c.cfg.Sampled
	}
	return sampled
}

// send encodes doc and hands it to the transport. Only encoding failures are
// returned.
func (c *Client) send(ctx context.Context, signal otlp.Signal, doc interface{}) error {
	body, err := otlp.Encode(doc)
	if err != nil {
		return err
	}

	path := signal.Path()
	start := time.Now()
	status, err := c.transport.Send(ctx, path, otlp.ContentType, body)
	if err == nil {
		err = status.Err()
	}

	observability.Notify(c.observer, observability.OperationContext{
		Component:   componentName,
		Operation:   "export",
		Resource:    path,
		SubResource: string(signal),
		Duration:    time.Since(start),
		Error:       err,
		Size:        int64(len(body)),
		Metadata: map[string]interface{}{
			"status_code": status.StatusCode,
		},
	})

	if err != nil {
		c.warn(ctx, "failed to send data", err, map[string]interface{}{
			"path":        path,
			"status_code": status.StatusCode,
		})
		return nil
	}
	c.debug(ctx, "telemetry exported", map[string]interface{}{
		"path":        path,
		"status_code": status.StatusCode,
		"bytes":       len(body),
	})
	return nil
}

func (c *Client) debug(ctx context.Context, msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.DebugWithContext(ctx, msg, nil, fields)
	}
}

func (c *Client) warn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
