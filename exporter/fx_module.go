package exporter

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/devicetel/clock"
	"github.com/aalemi-dev/devicetel/ids"
	"github.com/aalemi-dev/devicetel/observability"
	"github.com/aalemi-dev/devicetel/transport"
)

// FXModule provides *Client and the Exporter interface. It requires an
// exporter.Config and a transport.Transport in the container; otlphttp.FXModule
// supplies the latter.
var FXModule = fx.Module("exporter",
	fx.Provide(
		NewClientWithDI, // Provides *Client
		fx.Annotate(
			func(c *Client) Exporter { return c },
			fx.As(new(Exporter)),
		),
	),
	fx.Invoke(RegisterExporterLifecycle),
)

// ExporterParams groups the dependencies needed to create a Client.
type ExporterParams struct {
	fx.In

	Config    Config
	Transport transport.Transport
	Clock     clock.Clock            `optional:"true"`
	Generator ids.Generator          `optional:"true"`
	Logger    Logger                 `optional:"true"`
	Observer  observability.Observer `optional:"true"`
}

// NewClientWithDI creates a Client with its optional collaborators injected.
func NewClientWithDI(params ExporterParams) *Client {
	client := NewClient(params.Config, params.Transport)
	if params.Clock != nil {
		client = client.WithClock(params.Clock)
	}
	if params.Generator != nil {
		client = client.WithGenerator(params.Generator)
	}
	if params.Logger != nil {
		client = client.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}
	return client
}

// RegisterExporterLifecycle syncs the clock on start when configured and
// reports spans that were never ended on stop.
//
// The sync runs in the background: with the default policy it may take
// several seconds and telemetry is still accepted meanwhile.
func RegisterExporterLifecycle(lc fx.Lifecycle, client *Client) {
	syncCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if client.logger != nil {
				client.logger.InfoWithContext(ctx, "exporter started", nil, map[string]interface{}{
					"resource_attributes": len(client.cfg.Resource),
				})
			}
			if client.cfg.SyncClock {
				go func() {
					_ = client.SyncClock(syncCtx)
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			if active := client.ActiveSpans(); len(active) > 0 {
				client.warn(ctx, "spans still active at shutdown were not exported", nil, map[string]interface{}{
					"count": len(active),
				})
			}
			return nil
		},
	})
}
