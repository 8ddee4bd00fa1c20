package logger_test

import (
	"context"
	"errors"

	"github.com/aalemi-dev/devicetel/logger"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

func ExampleNewLoggerClient() {
	log := logger.NewLoggerClient(logger.Config{
		Level:       logger.Info,
		ServiceName: "sensor-node",
	})

	log.Info("exporter started", nil, map[string]interface{}{
		"collector": "http://192.168.1.10:4318",
	})
}

func ExampleLoggerClient_WarnWithContext() {
	log := logger.NewLoggerClient(logger.Config{
		Level:         logger.Info,
		ServiceName:   "sensor-node",
		EnableTracing: true,
	})

	// A trace context extracted from an incoming message is enough for
	// trace_id and span_id to show up on the entry.
	tc, _ := tracecontext.ParseTraceparent("00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	ctx := tracecontext.ContextWith(context.Background(), tc)

	log.WarnWithContext(ctx, "reading out of range", nil, map[string]interface{}{
		"sensor": "dht22",
		"value":  91,
	})
}

func ExampleLoggerClient_ErrorWithContext() {
	log := logger.NewLoggerClient(logger.Config{
		Level:         logger.Info,
		ServiceName:   "sensor-node",
		EnableTracing: true,
	})

	log.ErrorWithContext(context.Background(), "export failed", errors.New("connection refused"), map[string]interface{}{
		"signal": "traces",
	})
}

func ExampleNop() {
	log := logger.Nop()
	log.Debug("discarded", nil)
}
