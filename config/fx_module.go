package config

import (
	"go.uber.org/fx"

	"github.com/aalemi-dev/devicetel/clock"
	"github.com/aalemi-dev/devicetel/exporter"
	"github.com/aalemi-dev/devicetel/kafka"
	"github.com/aalemi-dev/devicetel/logger"
	"github.com/aalemi-dev/devicetel/metrics"
	"github.com/aalemi-dev/devicetel/mqtt"
	"github.com/aalemi-dev/devicetel/otlphttp"
)

// FXModule splits a *Config in the container into the per-package configs
// the other modules require:
//
//	cfg, err := config.Load("devicetel.yaml")
//	app := fx.New(
//	    fx.Supply(cfg),
//	    config.FXModule,
//	    logger.FXModule,
//	    otlphttp.FXModule,
//	    exporter.FXModule,
//	)
var FXModule = fx.Module("config",
	fx.Provide(
		func(c *Config) logger.Config { return c.Logger },
		func(c *Config) otlphttp.Config { return c.Collector },
		func(c *Config) kafka.Config { return c.Kafka },
		func(c *Config) mqtt.Config { return c.MQTT },
		func(c *Config) clock.Config { return c.Clock.Config },
		func(c *Config) metrics.Config { return c.Metrics.Config },
		func(c *Config) exporter.Config { return c.ExporterConfig() },
	),
)
