package clock

import "errors"

var (
	// ErrClockImplausible is returned when the wall clock reports a time
	// before MinPlausibleYear.
	ErrClockImplausible = errors.New("system time is implausible")

	// ErrNoTimeSource is returned by Sync when no TimeSource is configured.
	ErrNoTimeSource = errors.New("no time source configured")
)
