package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalemi-dev/devicetel/exporter"
	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/spans"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

func newTraceCmd(root *rootOptions) *cobra.Command {
	var (
		kind     string
		duration time.Duration
		parent   string
		attrs    map[string]string
	)

	cmd := &cobra.Command{
		Use:   "trace NAME",
		Short: "Export a single span and print its traceparent",
		Example: `  devicetel trace read_sensor --kind internal --duration 40ms --attr sensor=bme280
  devicetel trace handle_cmd --kind server --parent 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			return root.withExporter(cmd.Context(), cmd.OutOrStdout(), cfg, func(ctx context.Context, exp exporter.Exporter) error {
				var tc tracecontext.TraceContext
				if parent != "" {
					if tc, err = tracecontext.ParseTraceparentStrict(parent); err != nil {
						return err
					}
				}

				traceID, spanID, err := exp.StartTrace(ctx, args[0], spans.ParseKind(kind), otlp.StringMap(attrs), tc.TraceID, tc.ParentSpanID)
				if err != nil {
					return err
				}
				select {
				case <-time.After(duration):
				case <-ctx.Done():
				}
				if _, _, err := exp.EndTrace(ctx, spanID); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), exp.BuildTraceparent(traceID, spanID, tc.Sampled))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "internal", "span kind: internal, server, client, producer or consumer")
	cmd.Flags().DurationVar(&duration, "duration", 0, "time between span start and end")
	cmd.Flags().StringVar(&parent, "parent", "", "traceparent of the parent span")
	cmd.Flags().StringToStringVar(&attrs, "attr", nil, "span attribute key=value, repeatable")
	return cmd
}

func newMetricCmd(root *rootOptions) *cobra.Command {
	var (
		metricType string
		bounds     []float64
		counts     []uint
		attrs      map[string]string
	)

	cmd := &cobra.Command{
		Use:   "metric NAME VALUE",
		Short: "Export one gauge, counter or histogram data point",
		Example: `  devicetel metric temperature_c 21 --attr room=lab
  devicetel metric boots_total 1 --type counter
  devicetel metric loop_ms 120.5 --type histogram --bounds 5,10,25 --counts 3,4,1,0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			name, raw := args[0], args[1]

			return root.withExporter(cmd.Context(), cmd.OutOrStdout(), cfg, func(ctx context.Context, exp exporter.Exporter) error {
				switch strings.ToLower(metricType) {
				case "gauge":
					v, err := parseInt(raw)
					if err != nil {
						return err
					}
					return exp.SendGaugeMetric(ctx, name, v, otlp.StringMap(attrs))
				case "counter", "sum":
					v, err := parseInt(raw)
					if err != nil {
						return err
					}
					return exp.SendCounterMetric(ctx, name, v, otlp.StringMap(attrs))
				case "histogram":
					var v float64
					if _, err := fmt.Sscan(raw, &v); err != nil {
						return fmt.Errorf("invalid histogram value %q: %w", raw, err)
					}
					buckets, total := bucketCounts(counts)
					return exp.SendHistogramMetric(ctx, name, v, total, buckets, bounds, otlp.StringMap(attrs))
				default:
					return fmt.Errorf("%w: %s", otlp.ErrUnsupportedMetricKind, metricType)
				}
			})
		},
	}
	cmd.Flags().StringVar(&metricType, "type", "gauge", "metric type: gauge, counter or histogram")
	cmd.Flags().Float64SliceVar(&bounds, "bounds", nil, "histogram explicit bucket bounds")
	cmd.Flags().UintSliceVar(&counts, "counts", nil, "histogram bucket counts, one more than --bounds")
	cmd.Flags().StringToStringVar(&attrs, "attr", nil, "data point attribute key=value, repeatable")
	return cmd
}

func newLogCmd(root *rootOptions) *cobra.Command {
	var (
		severity string
		traceID  string
		spanID   string
		attrs    map[string]string
	)

	cmd := &cobra.Command{
		Use:     "log MESSAGE",
		Short:   "Export one log record",
		Example: `  devicetel log "watchdog reset" --severity WARN --attr reason=timeout`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			return root.withExporter(cmd.Context(), cmd.OutOrStdout(), cfg, func(ctx context.Context, exp exporter.Exporter) error {
				return exp.SendLog(ctx, strings.Join(args, " "), otlp.StringMap(attrs), exporter.LogOptions{
					TraceID:      traceID,
					SpanID:       spanID,
					SeverityText: strings.ToUpper(severity),
				})
			})
		},
	}
	cmd.Flags().StringVar(&severity, "severity", exporter.DefaultSeverityText, "severity text")
	cmd.Flags().StringVar(&traceID, "trace-id", "", "trace id to correlate with")
	cmd.Flags().StringVar(&spanID, "span-id", "", "span id to correlate with")
	cmd.Flags().StringToStringVar(&attrs, "attr", nil, "record attribute key=value, repeatable")
	return cmd
}

func parseInt(raw string) (int64, error) {
	var v int64
	if _, err := fmt.Sscan(raw, &v); err != nil {
		return 0, fmt.Errorf("invalid integer value %q: %w", raw, err)
	}
	return v, nil
}

// bucketCounts converts the flag values and returns their total, which is
// the point's count. No counts means a single observation.
func bucketCounts(counts []uint) ([]uint64, uint64) {
	if len(counts) == 0 {
		return nil, 1
	}
	out := make([]uint64, len(counts))
	var total uint64
	for i, c := range counts {
		out[i] = uint64(c)
		total += uint64(c)
	}
	return out, total
}
