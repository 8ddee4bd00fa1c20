package otlphttp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/aalemi-dev/devicetel/observability"
	"github.com/aalemi-dev/devicetel/transport"
)

// Client posts encoded OTLP documents to {scheme}://{host}:{port}{path}.
//
// Client implements transport.Transport.
type Client struct {
	cfg Config

	// baseURL is scheme://host:port without a trailing slash
	baseURL string

	http     *http.Client
	observer observability.Observer
	logger   Logger

	closed atomic.Bool
}

// NewClient creates a Client. Zero config fields take their defaults.
func NewClient(cfg Config) *Client {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Scheme == "" {
		cfg.Scheme = DefaultScheme
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		httpTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Client{
		cfg:     cfg,
		baseURL: cfg.Scheme + "://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: httpTransport,
		},
	}
}

// WithObserver attaches an observer notified after every export attempt.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// WithLogger attaches a logger for per-request debug output.
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithHTTPClient replaces the underlying HTTP client, e.g. one going through
// a proxy. Do not wrap it with httptrace.Transport: every export would start
// another span.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.http = client
	return c
}

// Endpoint returns the full URL for an OTLP signal path.
func (c *Client) Endpoint(path string) string {
	return c.baseURL + path
}

// Send implements transport.Transport. A non-2xx answer is returned both as
// the Status and as an error wrapping transport.ErrNonSuccessStatus.
func (c *Client) Send(ctx context.Context, path, contentType string, body []byte) (transport.Status, error) {
	if c.closed.Load() {
		return transport.Status{}, transport.ErrTransportClosed
	}

	start := time.Now()
	status, err := c.post(ctx, path, contentType, body)
	c.observeOperation("export", path, time.Since(start), err, int64(len(body)), status.StatusCode)

	if c.logger != nil {
		c.logger.DebugWithContext(ctx, "OTLP document posted", err, map[string]interface{}{
			"url":         c.Endpoint(path),
			"status_code": status.StatusCode,
			"bytes":       len(body),
		})
	}
	return status, err
}

func (c *Client) post(ctx context.Context, path, contentType string, body []byte) (transport.Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(path), bytes.NewReader(body))
	if err != nil {
		return transport.Status{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transport.Status{}, fmt.Errorf("failed to post to %s: %w", c.Endpoint(path), err)
	}
	defer resp.Body.Close()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, resp.Body)

	status := transport.Status{StatusCode: resp.StatusCode}
	return status, status.Err()
}

// Close releases idle connections. Later sends fail with transport.ErrTransportClosed.
func (c *Client) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		c.http.CloseIdleConnections()
	}
	return nil
}
