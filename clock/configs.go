package clock

import (
	"context"
	"time"
)

// Default sync behaviour: five attempts, two seconds apart.
const (
	DefaultSyncAttempts = 5
	DefaultSyncInterval = 2 * time.Second
)

// MinPlausibleYear is the earliest year a synced wall clock is expected to report.
// Earlier readings usually mean the device booted without a time source.
const MinPlausibleYear = 2020

// Config controls wall-clock synchronisation.
type Config struct {
	// SyncAttempts is the maximum number of sync tries. Default: 5
	SyncAttempts int `yaml:"sync_attempts" default:"5"`

	// SyncInterval is the pause between failed sync tries. Default: 2s
	SyncInterval time.Duration `yaml:"sync_interval" default:"2s"`
}

// Logger is the subset of logger.Logger used for clock warnings.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
