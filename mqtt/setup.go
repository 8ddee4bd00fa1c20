package mqtt

import (
	"context"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/aalemi-dev/devicetel/observability"
)

// Bridge carries trace context across MQTT. Outgoing JSON payloads get
// traceparent, trace_id and parent_span_id fields; incoming ones are
// continued as CONSUMER spans.
type Bridge struct {
	cfg       Config
	client    paho.Client
	telemetry Telemetry
	logger    Logger
	observer  observability.Observer

	mu            sync.Mutex
	subscriptions map[string]paho.MessageHandler
}

// NewBridge creates a Bridge. The connection is opened by Connect.
func NewBridge(cfg Config, telemetry Telemetry) (*Bridge, error) {
	if cfg.Broker == "" {
		return nil, ErrNoBroker
	}
	cfg = withDefaults(cfg)

	b := &Bridge{
		cfg:           cfg,
		telemetry:     telemetry,
		subscriptions: make(map[string]paho.MessageHandler),
	}
	b.client = paho.NewClient(b.clientOptions())
	return b, nil
}

func withDefaults(cfg Config) Config {
	if cfg.ClientID == "" {
		cfg.ClientID = clientIDPrefix + uuid.NewString()[:8]
	}
	if cfg.QoS > 2 {
		cfg.QoS = DefaultQoS
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.OperationTimeout == 0 {
		cfg.OperationTimeout = DefaultOperationTimeout
	}
	if cfg.KeepAlive == 0 {
		cfg.KeepAlive = DefaultKeepAlive
	}
	return cfg
}

func (b *Bridge) clientOptions() *paho.ClientOptions {
	opts := paho.NewClientOptions()
	opts.AddBroker(b.cfg.Broker)
	opts.SetClientID(b.cfg.ClientID)
	if b.cfg.Username != "" {
		opts.SetUsername(b.cfg.Username)
		opts.SetPassword(b.cfg.Password)
	}
	opts.SetCleanSession(b.cfg.CleanSession)
	opts.SetAutoReconnect(b.cfg.AutoReconnect)
	opts.SetConnectTimeout(b.cfg.ConnectTimeout)
	opts.SetKeepAlive(b.cfg.KeepAlive)
	opts.SetOrderMatters(false)

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		b.logWarn(context.Background(), "MQTT connection lost", err, map[string]interface{}{
			"broker": b.cfg.Broker,
		})
	})
	opts.SetOnConnectHandler(func(client paho.Client) {
		b.restoreSubscriptions(client)
	})
	return opts
}

// WithLogger attaches a logger.
func (b *Bridge) WithLogger(logger Logger) *Bridge {
	b.logger = logger
	return b
}

// WithObserver attaches an observer notified after every publish and receive.
func (b *Bridge) WithObserver(observer observability.Observer) *Bridge {
	b.observer = observer
	return b
}

// ClientID returns the MQTT client id in use.
func (b *Bridge) ClientID() string {
	return b.cfg.ClientID
}

// Connect opens the broker connection.
func (b *Bridge) Connect(ctx context.Context) error {
	if err := b.wait(ctx, b.client.Connect(), b.cfg.ConnectTimeout); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", b.cfg.Broker, err)
	}
	b.logInfo(ctx, "MQTT bridge connected", map[string]interface{}{
		"broker":    b.cfg.Broker,
		"client_id": b.cfg.ClientID,
	})
	return nil
}

// IsConnected reports whether the client currently holds a connection.
func (b *Bridge) IsConnected() bool {
	return b.client.IsConnected()
}

// Disconnect closes the connection, waiting up to quiesce for in-flight work.
func (b *Bridge) Disconnect(quiesce time.Duration) {
	if b.client.IsConnected() {
		b.client.Disconnect(uint(quiesce.Milliseconds()))
	}
}

// restoreSubscriptions re-subscribes after a reconnect on a clean session.
func (b *Bridge) restoreSubscriptions(client paho.Client) {
	b.mu.Lock()
	subs := make(map[string]paho.MessageHandler, len(b.subscriptions))
	for topic, handler := range b.subscriptions {
		subs[topic] = handler
	}
	b.mu.Unlock()

	for topic, handler := range subs {
		token := client.Subscribe(topic, b.cfg.QoS, handler)
		go func(topic string) {
			if !token.WaitTimeout(b.cfg.OperationTimeout) || token.Error() != nil {
				b.logWarn(context.Background(), "failed to restore MQTT subscription", token.Error(), map[string]interface{}{
					"topic": topic,
				})
			}
		}(topic)
	}
}

// wait blocks until token completes, ctx is done or timeout elapses.
func (b *Bridge) wait(ctx context.Context, token paho.Token, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTimeout
	}
}
