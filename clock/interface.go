package clock

import (
	"context"
	"time"
)

// Clock returns the current wall-clock time in nanoseconds since the Unix epoch.
type Clock interface {
	NowUnixNano() int64
}

// TimeSource fetches an authoritative current time, e.g. from a network peer.
type TimeSource interface {
	Now(ctx context.Context) (time.Time, error)
}

// Func adapts a plain function to Clock.
type Func func() int64

// NowUnixNano implements Clock.
func (f Func) NowUnixNano() int64 { return f() }

// TimeSourceFunc adapts a plain function to TimeSource.
type TimeSourceFunc func(ctx context.Context) (time.Time, error)

// Now implements TimeSource.
func (f TimeSourceFunc) Now(ctx context.Context) (time.Time, error) { return f(ctx) }
