package config

import "errors"

// ErrInvalidConfig wraps every validation and environment parsing failure.
var ErrInvalidConfig = errors.New("invalid configuration")
