package exporter

import "errors"

// ErrMalformedPayload is returned by HandleMessage when the message body is
// not a JSON object.
var ErrMalformedPayload = errors.New("message payload is not a JSON object")
