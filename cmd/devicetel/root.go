package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalemi-dev/devicetel/config"
	"github.com/aalemi-dev/devicetel/transport"
)

type rootOptions struct {
	configPath string
	dryRun     bool
	recorder   *transport.Recorder
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "devicetel",
		Short:         "Send OTLP/JSON traces, metrics and logs to a collector",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv(config.EnvPrefix+"CONFIG"),
		"path to the YAML configuration file (env DEVICETEL_CONFIG)")
	cmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false,
		"print the OTLP documents instead of sending them")

	cmd.AddCommand(
		newTraceCmd(opts),
		newMetricCmd(opts),
		newLogCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	if !o.dryRun {
		return config.Load(o.configPath)
	}

	var data []byte
	if o.configPath != "" {
		var err error
		if data, err = os.ReadFile(o.configPath); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", o.configPath, err)
		}
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	// Nothing leaves the process, so the collector settings need not be valid.
	cfg.Transport = config.TransportDiscard
	cfg.Clock.Enabled = false
	o.recorder = transport.NewRecorder()
	return cfg, cfg.Validate()
}
