package otlp

import "errors"

var (
	// ErrBadAttributeShape is returned when attribute input is neither a
	// key/value mapping nor a pre-shaped attribute list.
	ErrBadAttributeShape = errors.New("attributes must be a mapping or a list of key/value attributes")

	// ErrUnsupportedMetricKind is returned for metric kinds other than
	// gauge, sum and histogram.
	ErrUnsupportedMetricKind = errors.New("unsupported metric kind")
)
