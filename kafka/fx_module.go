package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/devicetel/observability"
)

// FXModule provides *KafkaClient and the Client interface and closes the
// writer on stop. It requires a kafka.Config in the container. Binding the
// client as the exporter's transport.Transport is left to the application.
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI, // Provides *KafkaClient
		fx.Annotate(
			func(k *KafkaClient) Client { return k },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Kafka client.
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a Kafka client with its optional collaborators injected.
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		client.logger = params.Logger
	}

	if params.Observer != nil {
		client.observer = params.Observer
	}

	return client, nil
}

// KafkaLifecycleParams groups the dependencies for lifecycle registration.
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *KafkaClient
}

// RegisterKafkaLifecycle logs start and closes the writer on stop, flushing
// any batched async messages.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Client.logInfo(ctx, "Kafka client started", map[string]interface{}{
				"brokers": params.Client.cfg.Brokers,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Client.logInfo(ctx, "Shutting down Kafka client", nil)
			params.Client.GracefulShutdown()
			return nil
		},
	})
}

// GracefulShutdown closes the writer once. Later sends fail with
// transport.ErrTransportClosed.
func (k *KafkaClient) GracefulShutdown() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return
	}
	k.closed = true

	if k.writer != nil {
		if err := k.writer.Close(); err != nil {
			k.logWarn(context.Background(), "Failed to close Kafka writer", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
