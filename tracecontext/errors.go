package tracecontext

import "errors"

// ErrMalformedTraceparent is returned by ParseTraceparentStrict when the
// input does not split into version-traceid-spanid-flags.
var ErrMalformedTraceparent = errors.New("malformed traceparent")
