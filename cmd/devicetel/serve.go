package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/aalemi-dev/devicetel/exporter"
	"github.com/aalemi-dev/devicetel/httptrace"
	"github.com/aalemi-dev/devicetel/logger"
	"github.com/aalemi-dev/devicetel/mqtt"
	"github.com/aalemi-dev/devicetel/otlp"
	"github.com/aalemi-dev/devicetel/tracecontext"
)

type serveOptions struct {
	addr       string
	forward    string
	topics     []string
	replyTopic string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a traced HTTP endpoint and, with mqtt.broker set, an MQTT bridge",
		Long: `serve starts an HTTP server whose requests become SERVER spans that continue
any incoming traceparent header. GET / answers with the active trace context.
With --forward every request is relayed to another URL inside a CLIENT span.

When mqtt.broker is configured the bridge subscribes to --topic and records a
CONSUMER span and a log record per message. With --reply-topic each message is
answered on that topic, continuing the same trace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			extra := []fx.Option{
				fx.Supply(opts),
				fx.Invoke(registerHTTPServer),
			}
			if cfg.MQTT.Broker != "" {
				extra = append(extra, mqtt.FXModule, fx.Invoke(registerSubscriptions))
			}

			app := fx.New(appOptions(cfg, extra...))
			if err := app.Err(); err != nil {
				return fmt.Errorf("failed to build application: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
			defer cancel()
			if err := app.Start(startCtx); err != nil {
				return fmt.Errorf("failed to start: %w", err)
			}

			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
			defer cancel()
			return app.Stop(stopCtx)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().StringVar(&opts.forward, "forward", "", "URL every request is relayed to")
	cmd.Flags().StringSliceVar(&opts.topics, "topic", []string{"devices/+/events"}, "MQTT topic filter, repeatable")
	cmd.Flags().StringVar(&opts.replyTopic, "reply-topic", "", "MQTT topic each received message is answered on")
	return cmd
}

func registerHTTPServer(lc fx.Lifecycle, opts *serveOptions, exp exporter.Exporter, log *logger.LoggerClient) {
	client := &http.Client{
		Timeout:   10 * time.Second,
		Transport: httptrace.NewTransport(exp, nil),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if opts.forward != "" {
			forward(w, r, client, opts.forward)
			return
		}
		tc, _ := tracecontext.FromContext(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"trace_id":       tc.TraceID,
			"parent_span_id": tc.ParentSpanID,
		})
	})

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           httptrace.Middleware(exp)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.InfoWithContext(ctx, "HTTP server listening", nil, map[string]interface{}{
				"address": ln.Addr().String(),
			})
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.ErrorWithContext(context.Background(), "HTTP server failed", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func forward(w http.ResponseWriter, r *http.Request, client *http.Client, target string) {
	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	req.Header.Set("Content-Type", r.Header.Get("Content-Type"))

	resp, err := client.Do(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func registerSubscriptions(lc fx.Lifecycle, opts *serveOptions, bridge *mqtt.Bridge, exp exporter.Exporter) {
	handler := func(ctx context.Context, msg mqtt.Message) error {
		if opts.replyTopic == "" {
			return nil
		}
		_, err := bridge.Publish(ctx, opts.replyTopic, map[string]interface{}{
			"received_topic": msg.Topic,
			"status":         "ack",
		})
		return err
	}

	// Registered after the bridge's own hook, so the broker is connected.
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, topic := range opts.topics {
				if err := bridge.Subscribe(ctx, topic, handler); err != nil {
					return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
				}
			}
			return exp.SendLog(ctx, "mqtt subscriptions active", otlp.Map(map[string]interface{}{
				"topics": len(opts.topics),
			}), exporter.LogOptions{})
		},
	})
}
