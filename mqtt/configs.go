package mqtt

import (
	"context"
	"time"
)

// Config defines how the bridge connects to the MQTT broker.
type Config struct {
	// Broker is the broker URL, e.g. "tcp://192.168.1.20:1883" or "ssl://broker:8883".
	Broker string `yaml:"broker"`

	// ClientID identifies the session. Empty generates "devicetel-" plus a
	// short random suffix.
	ClientID string `yaml:"client_id"`

	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// QoS is used for publishes and subscriptions.
	// Default: 1
	QoS byte `yaml:"qos" default:"1"`

	// CleanSession discards broker-side session state on connect.
	// Default: true
	CleanSession bool `yaml:"clean_session" default:"true"`

	// AutoReconnect re-establishes lost connections and restores subscriptions.
	// Default: true
	AutoReconnect bool `yaml:"auto_reconnect" default:"true"`

	// ConnectTimeout bounds the initial connect.
	// Default: 10s
	ConnectTimeout time.Duration `yaml:"connect_timeout" default:"10s"`

	// OperationTimeout bounds each publish, subscribe and unsubscribe.
	// Default: 5s
	OperationTimeout time.Duration `yaml:"operation_timeout" default:"5s"`

	// KeepAlive is the MQTT keep-alive interval.
	// Default: 30s
	KeepAlive time.Duration `yaml:"keep_alive" default:"30s"`
}

// Logger is the subset of logger.Logger used by the bridge.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultQoS              = 1
	DefaultConnectTimeout   = 10 * time.Second
	DefaultOperationTimeout = 5 * time.Second
	DefaultKeepAlive        = 30 * time.Second

	// clientIDPrefix keeps generated ids within the 23 characters MQTT 3.1.1
	// brokers are required to accept.
	clientIDPrefix = "devicetel-"
)

// Span names, attribute keys and payload fields.
const (
	PublishSpanName = "mqtt_publish"
	ReceiveSpanName = "mqtt_message_received"

	AttrTopic = "mqtt.topic"
	AttrEvent = "event"

	EventPublish = "mqtt_publish"
	EventReceive = "mqtt_receive"

	// PayloadField is the message field logged against the consumer span.
	PayloadField = "payload"
)
