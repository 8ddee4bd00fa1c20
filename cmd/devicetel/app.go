package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/aalemi-dev/devicetel/clock"
	"github.com/aalemi-dev/devicetel/config"
	"github.com/aalemi-dev/devicetel/exporter"
	"github.com/aalemi-dev/devicetel/kafka"
	"github.com/aalemi-dev/devicetel/logger"
	"github.com/aalemi-dev/devicetel/metrics"
	"github.com/aalemi-dev/devicetel/mqtt"
	"github.com/aalemi-dev/devicetel/otlphttp"
	"github.com/aalemi-dev/devicetel/transport"
)

// appOptions assembles the modules selected by cfg. extra is appended last.
func appOptions(cfg *config.Config, extra ...fx.Option) fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg),
		config.FXModule,
		logger.FXModule,
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			zl := &fxevent.ZapLogger{Logger: l.Zap}
			zl.UseLogLevel(zapcore.DebugLevel)
			return zl
		}),
		fx.Provide(
			func(l *logger.LoggerClient) exporter.Logger { return l },
			func(l *logger.LoggerClient) otlphttp.Logger { return l },
			func(l *logger.LoggerClient) kafka.Logger { return l },
			func(l *logger.LoggerClient) mqtt.Logger { return l },
			func(l *logger.LoggerClient) metrics.Logger { return l },
			newClock,
		),
		transportOption(cfg),
		exporter.FXModule,
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, metrics.FXModule)
	}
	return fx.Options(append(opts, extra...)...)
}

// transportOption binds the transport.Transport the exporter sends through.
func transportOption(cfg *config.Config) fx.Option {
	switch cfg.Transport {
	case config.TransportKafka:
		return fx.Options(
			kafka.FXModule,
			fx.Provide(func(k *kafka.KafkaClient) transport.Transport { return k }),
		)
	case config.TransportDiscard:
		return fx.Provide(func() transport.Transport { return transport.Discard })
	default:
		return otlphttp.FXModule
	}
}

// newClock returns the system clock, synced against the configured time
// source or the collector itself.
func newClock(cfg *config.Config, l *logger.LoggerClient) clock.Clock {
	source := cfg.Clock.SourceURL
	if source == "" {
		source = cfg.CollectorURL()
	}
	return clock.NewSystemClock(cfg.Clock.Config).
		WithTimeSource(clock.HTTPDateSource{URL: source}).
		WithLogger(l)
}

// withExporter starts an application from cfg, runs fn against its exporter
// and stops the application, flushing transports and the logger. In dry-run
// mode the documents are recorded and printed to out instead.
func (o *rootOptions) withExporter(ctx context.Context, out io.Writer, cfg *config.Config, fn func(ctx context.Context, exp exporter.Exporter) error) error {
	var exp exporter.Exporter
	extra := []fx.Option{fx.Populate(&exp)}
	if o.recorder != nil {
		rec := o.recorder
		extra = append(extra, fx.Decorate(func(transport.Transport) transport.Transport { return rec }))
	}

	app := fx.New(appOptions(cfg, extra...))
	if err := app.Err(); err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	runErr := fn(ctx, exp)
	if err := app.Stop(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	if o.recorder != nil {
		for _, req := range o.recorder.Requests() {
			fmt.Fprintf(out, "POST %s\n%s\n", req.Path, req.Body)
		}
	}
	return runErr
}
