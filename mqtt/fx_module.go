package mqtt

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/aalemi-dev/devicetel/exporter"
	"github.com/aalemi-dev/devicetel/observability"
)

// FXModule provides *Bridge, connecting on start and disconnecting on stop.
// It requires an mqtt.Config and an exporter.Exporter in the container.
var FXModule = fx.Module("mqtt",
	fx.Provide(NewBridgeWithDI),
	fx.Invoke(RegisterBridgeLifecycle),
)

// BridgeParams groups the dependencies needed to create a Bridge.
type BridgeParams struct {
	fx.In

	Config   Config
	Exporter exporter.Exporter
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewBridgeWithDI creates a Bridge with its optional collaborators injected.
func NewBridgeWithDI(params BridgeParams) (*Bridge, error) {
	bridge, err := NewBridge(params.Config, params.Exporter)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		bridge = bridge.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		bridge = bridge.WithObserver(params.Observer)
	}
	return bridge, nil
}

// RegisterBridgeLifecycle connects on start and disconnects on stop.
func RegisterBridgeLifecycle(lc fx.Lifecycle, bridge *Bridge) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return bridge.Connect(ctx)
		},
		OnStop: func(ctx context.Context) error {
			bridge.logInfo(ctx, "Shutting down MQTT bridge", nil)
			bridge.Disconnect(250 * time.Millisecond)
			return nil
		},
	})
}
