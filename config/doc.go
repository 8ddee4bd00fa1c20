// Package config loads the client configuration from YAML and the
// environment.
//
// Values are resolved in order: struct defaults (creasty/defaults tags), the
// YAML file, then DEVICETEL_* environment variables. Load validates the
// result against the selected transport and wraps every problem in
// ErrInvalidConfig.
//
// Resources always carry service.name (default "devicetel") and a random
// service.instance.id unless the file sets them.
package config
