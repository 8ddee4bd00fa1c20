package clock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// SystemClock reads the local wall clock, optionally corrected by an offset
// learned from a TimeSource. It never blocks.
type SystemClock struct {
	cfg    Config
	now    func() time.Time
	source TimeSource
	logger Logger

	// offset is the correction in nanoseconds added to local readings.
	offset atomic.Int64
}

// NewSystemClock returns a SystemClock. Zero config fields take their defaults.
func NewSystemClock(cfg Config) *SystemClock {
	if cfg.SyncAttempts <= 0 {
		cfg.SyncAttempts = DefaultSyncAttempts
	}
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = DefaultSyncInterval
	}
	return &SystemClock{cfg: cfg, now: time.Now}
}

// WithTimeSource sets the source consulted by Sync.
func (c *SystemClock) WithTimeSource(source TimeSource) *SystemClock {
	c.source = source
	return c
}

// WithLogger attaches a logger for sync progress and plausibility warnings.
func (c *SystemClock) WithLogger(logger Logger) *SystemClock {
	c.logger = logger
	return c
}

// NowUnixNano implements Clock.
func (c *SystemClock) NowUnixNano() int64 {
	return c.now().UnixNano() + c.offset.Load()
}

// Now returns the corrected wall-clock time.
func (c *SystemClock) Now() time.Time {
	return time.Unix(0, c.NowUnixNano())
}

// Offset returns the correction currently applied to local readings.
func (c *SystemClock) Offset() time.Duration {
	return time.Duration(c.offset.Load())
}

// Sync queries the TimeSource, retrying up to SyncAttempts times with
// SyncInterval between tries, and records the offset between the source and
// the local clock. Whatever the outcome, the resulting time is checked for
// plausibility and a warning is logged when it is implausible; sync failure
// leaves the clock usable with best-effort timestamps.
func (c *SystemClock) Sync(ctx context.Context) error {
	if c.source == nil {
		c.warn(ctx, "time source not available, cannot sync time", ErrNoTimeSource, nil)
		c.checkAndWarn(ctx)
		return ErrNoTimeSource
	}

	attempt := 0
	operation := func() error {
		attempt++
		remote, err := c.source.Now(ctx)
		if err != nil {
			return err
		}
		c.offset.Store(remote.UnixNano() - c.now().UnixNano())
		return nil
	}
	notify := func(err error, next time.Duration) {
		c.warn(ctx, "failed to sync time, retrying", err, map[string]interface{}{
			"attempt":  attempt,
			"retry_in": next.String(),
		})
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.cfg.SyncInterval), uint64(c.cfg.SyncAttempts-1)),
		ctx,
	)

	err := backoff.RetryNotify(operation, policy, notify)
	if err != nil {
		err = fmt.Errorf("time sync failed after %d attempts: %w", attempt, err)
		c.warn(ctx, "time sync failed", err, nil)
	} else if c.logger != nil {
		c.logger.InfoWithContext(ctx, "time synced", nil, map[string]interface{}{
			"offset": c.Offset().String(),
			"now":    c.Now().UTC().Format(time.RFC3339),
		})
	}

	c.checkAndWarn(ctx)
	return err
}

// CheckPlausible reports ErrClockImplausible when the clock reads before MinPlausibleYear.
func (c *SystemClock) CheckPlausible() error {
	return CheckPlausible(c.Now())
}

func (c *SystemClock) checkAndWarn(ctx context.Context) {
	if err := c.CheckPlausible(); err != nil {
		c.warn(ctx, "system time still invalid, timestamps may be wrong", err, map[string]interface{}{
			"now": c.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (c *SystemClock) warn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
