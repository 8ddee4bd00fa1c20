package clock

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/devicetel/logger"
)

func observedLogger() (*logger.LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &logger.LoggerClient{Zap: zap.New(core)}, logs
}

func TestCheckPlausible(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckPlausible(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, CheckPlausible(time.Date(MinPlausibleYear, 1, 1, 0, 0, 0, 0, time.UTC)))

	err := CheckPlausible(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClockImplausible)
}

func TestSystemClock_SyncAppliesOffset(t *testing.T) {
	t.Parallel()

	local := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	remote := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	c := NewSystemClock(Config{SyncInterval: time.Millisecond})
	c.now = func() time.Time { return local }
	c.WithTimeSource(TimeSourceFunc(func(context.Context) (time.Time, error) { return remote, nil }))

	require.NoError(t, c.Sync(context.Background()))
	assert.Equal(t, remote.UnixNano(), c.NowUnixNano())
	assert.NoError(t, c.CheckPlausible())
}

func TestSystemClock_SyncRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	remote := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	source := TimeSourceFunc(func(context.Context) (time.Time, error) {
		calls++
		if calls < 3 {
			return time.Time{}, errors.New("network down")
		}
		return remote, nil
	})

	log, logs := observedLogger()
	c := NewSystemClock(Config{SyncAttempts: 5, SyncInterval: time.Millisecond}).
		WithTimeSource(source).
		WithLogger(log)

	require.NoError(t, c.Sync(context.Background()))
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, logs.FilterMessage("failed to sync time, retrying").Len())
	assert.Equal(t, 1, logs.FilterMessage("time synced").Len())
}

func TestSystemClock_SyncGivesUpAndWarns(t *testing.T) {
	t.Parallel()

	calls := 0
	source := TimeSourceFunc(func(context.Context) (time.Time, error) {
		calls++
		return time.Time{}, errors.New("network down")
	})

	log, logs := observedLogger()
	c := NewSystemClock(Config{SyncAttempts: 5, SyncInterval: time.Millisecond}).
		WithTimeSource(source).
		WithLogger(log)
	c.now = func() time.Time { return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC) }

	err := c.Sync(context.Background())
	require.Error(t, err)
	assert.Equal(t, 5, calls)
	assert.Equal(t, 1, logs.FilterMessage("time sync failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("system time still invalid, timestamps may be wrong").Len())

	// the clock stays usable
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano(), c.NowUnixNano())
}

func TestSystemClock_SyncWithoutSource(t *testing.T) {
	t.Parallel()

	c := NewSystemClock(Config{})
	err := c.Sync(context.Background())
	assert.ErrorIs(t, err, ErrNoTimeSource)
	assert.Equal(t, time.Duration(0), c.Offset())
}

func TestNewSystemClock_Defaults(t *testing.T) {
	t.Parallel()

	c := NewSystemClock(Config{})
	assert.Equal(t, DefaultSyncAttempts, c.cfg.SyncAttempts)
	assert.Equal(t, DefaultSyncInterval, c.cfg.SyncInterval)
}

func TestHTTPDateSource(t *testing.T) {
	t.Parallel()

	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.Header().Set("Date", want.Format(http.TimeFormat))
	}))
	defer srv.Close()

	got, err := HTTPDateSource{URL: srv.URL}.Now(context.Background())
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestManual(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)
	assert.Equal(t, start.UnixNano(), m.NowUnixNano())

	m.Advance(10 * time.Millisecond)
	assert.Equal(t, start.Add(10*time.Millisecond).UnixNano(), m.NowUnixNano())

	m.Set(start)
	assert.Equal(t, start.UnixNano(), m.NowUnixNano())

	var f Clock = Func(func() int64 { return 42 })
	assert.Equal(t, int64(42), f.NowUnixNano())
}
