package transport

import "errors"

var (
	// ErrNonSuccessStatus is returned when the collector answers outside 2xx.
	ErrNonSuccessStatus = errors.New("collector returned non-success status")

	// ErrTransportClosed is returned by Send after the transport was closed.
	ErrTransportClosed = errors.New("transport is closed")
)
