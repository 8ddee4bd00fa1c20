package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/devicetel/observability"
)

// FXModule provides *Metrics, the MetricsCollector interface and an
// ExportObserver bound as observability.Observer, so that the exporter and
// transports in the same application record export metrics. It requires a
// metrics.Config in the container.
//
//	app := fx.New(
//	    config.FXModule,
//	    metrics.FXModule,
//	    otlphttp.FXModule,
//	    exporter.FXModule,
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics, // Provides *Metrics
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
		NewExportObserver,
		fx.Annotate(
			func(o *ExportObserver) observability.Observer { return o },
			fx.As(new(observability.Observer)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// LifecycleParams groups the dependencies for lifecycle registration.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    Logger `optional:"true"`
}

// RegisterMetricsLifecycle starts the enabled metrics servers in the
// background and shuts them down on stop.
func RegisterMetricsLifecycle(params LifecycleParams) {
	m := params.Metrics
	servers := map[string]*http.Server{
		"system":      m.SystemServer,
		"application": m.ApplicationServer,
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for name, srv := range servers {
				if srv == nil {
					continue
				}
				logInfo(ctx, params.Logger, "Starting metrics server", map[string]interface{}{
					"endpoint": name,
					"address":  srv.Addr,
				})
				go func(name string, srv *http.Server) {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						if params.Logger != nil {
							params.Logger.ErrorWithContext(context.Background(), "Metrics server failed", err, map[string]interface{}{
								"endpoint": name,
							})
						}
					}
				}(name, srv)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var errs []error
			for name, srv := range servers {
				if srv == nil {
					continue
				}
				logInfo(ctx, params.Logger, "Shutting down metrics server", map[string]interface{}{"endpoint": name})
				if err := srv.Shutdown(ctx); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	})
}

func logInfo(ctx context.Context, logger Logger, msg string, fields map[string]interface{}) {
	if logger != nil {
		logger.InfoWithContext(ctx, msg, nil, fields)
	}
}
