package clock

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// CheckPlausible reports ErrClockImplausible when t is before MinPlausibleYear.
func CheckPlausible(t time.Time) error {
	if t.UTC().Year() < MinPlausibleYear {
		return fmt.Errorf("%w: year %d", ErrClockImplausible, t.UTC().Year())
	}
	return nil
}

// HTTPDateSource reads the Date header of a HEAD response, which gives
// second-level accuracy from any reachable HTTP server (typically the collector).
type HTTPDateSource struct {
	URL    string
	Client *http.Client
}

// Now implements TimeSource.
func (s HTTPDateSource) Now(ctx context.Context) (time.Time, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.URL, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build time request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query time source: %w", err)
	}
	defer resp.Body.Close()

	date := resp.Header.Get("Date")
	if date == "" {
		return time.Time{}, fmt.Errorf("time source %s returned no Date header", s.URL)
	}
	t, err := http.ParseTime(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse Date header %q: %w", date, err)
	}
	return t, nil
}

// Manual is a settable Clock for tests and simulations.
type Manual struct {
	mu  sync.Mutex
	now int64
}

// NewManual returns a Manual clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start.UnixNano()}
}

// NowUnixNano implements Clock.
func (m *Manual) NowUnixNano() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += int64(d)
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t.UnixNano()
}
