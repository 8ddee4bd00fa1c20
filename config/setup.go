package config

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Default returns a Config holding only default values.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	cfg.fillResource()
	return cfg, nil
}

// Load reads the YAML file at path, applies defaults and DEVICETEL_*
// environment overrides, and validates the result. An empty path loads
// defaults and environment only.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults. It does not read the
// environment or validate.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.fillResource()
	return cfg, nil
}

// UnmarshalYAML applies default values before decoding, so that nested
// sections keep their defaults when only some keys are set.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if err := defaults.Set(c); err != nil {
		return err
	}

	type plain Config
	return value.Decode((*plain)(c))
}

// fillResource adds service.name and a random service.instance.id when the
// resource does not carry them, and names the logger after the service.
func (c *Config) fillResource() {
	if c.Resource == nil {
		c.Resource = make(map[string]string)
	}
	if c.Resource[ServiceNameKey] == "" {
		c.Resource[ServiceNameKey] = DefaultServiceName
	}
	if c.Resource[ServiceInstanceIDKey] == "" {
		c.Resource[ServiceInstanceIDKey] = uuid.NewString()
	}
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = c.Resource[ServiceNameKey]
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.Resource[ServiceNameKey]
	}
}
