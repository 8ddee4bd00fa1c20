package mqtt

import "errors"

var (
	// ErrTimeout is returned when the broker does not acknowledge an
	// operation within the configured timeout.
	ErrTimeout = errors.New("mqtt operation timed out")

	// ErrNotConnected is returned by operations attempted before Connect.
	ErrNotConnected = errors.New("mqtt client is not connected")

	// ErrNoBroker is returned by NewBridge when Config.Broker is empty.
	ErrNoBroker = errors.New("mqtt broker url is required")
)
