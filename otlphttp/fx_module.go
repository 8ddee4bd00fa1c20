package otlphttp

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/devicetel/observability"
	"github.com/aalemi-dev/devicetel/transport"
)

// FXModule provides *Client and binds it as the transport.Transport used by
// the exporter. It requires an otlphttp.Config in the container.
var FXModule = fx.Module("otlphttp",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			func(c *Client) transport.Transport { return c },
			fx.As(new(transport.Transport)),
		),
	),
	fx.Invoke(RegisterClientLifecycle),
)

// ClientParams groups the dependencies needed to create a Client.
type ClientParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a Client with its optional collaborators injected.
func NewClientWithDI(params ClientParams) *Client {
	client := NewClient(params.Config)
	if params.Logger != nil {
		client = client.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}
	return client
}

// RegisterClientLifecycle closes idle connections on stop.
func RegisterClientLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
