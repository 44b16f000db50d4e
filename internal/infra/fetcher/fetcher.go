// Package fetcher provides source-agnostic HTTP retrieval for candidate data sources.
// It sends a conventional browser-like request signature to reduce block rates,
// retries rate limits and transient failures with linear backoff, and routes all
// requests through a circuit breaker.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"streakwatch/internal/observability/metrics"
	"streakwatch/internal/resilience/circuitbreaker"
	"streakwatch/internal/resilience/retry"
)

const maxBodySize = 10 * 1024 * 1024 // 10MB

// Browser-like request headers. Scrape targets block obvious bot signatures;
// these mirror a current desktop Chrome.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/128.0.0.0 Safari/537.36",
	"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9," +
		"image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language": "pl-PL,pl;q=0.9,en-US;q=0.8,en;q=0.7",
	"Connection":      "keep-alive",
}

// Sentinel errors for fetch operations.
var (
	// ErrEmptyBody indicates the server answered with a success status
	// but no payload. Treated as a failed fetch: a successful fetch is
	// exactly a success status plus a non-empty body.
	ErrEmptyBody = errors.New("response body is empty")

	// ErrUnsupportedScheme indicates a locator that is not http or https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)

// Config holds fetcher tuning knobs, read once from the application config.
type Config struct {
	// Timeout bounds each individual attempt
	Timeout time.Duration

	// MaxAttempts is the retry ceiling per locator
	MaxAttempts int

	// BackoffBase is the linear backoff unit between attempts
	BackoffBase time.Duration
}

// DefaultConfig returns the fetcher defaults used when the environment
// provides no overrides.
func DefaultConfig() Config {
	return Config{
		Timeout:     30 * time.Second,
		MaxAttempts: 5,
		BackoffBase: 2 * time.Second,
	}
}

// Client fetches raw payloads over HTTP(S). It does not interpret bodies.
//
// Circuit breakers are scoped per host: a host that started serving errors
// must not poison the other candidate sources, whose whole purpose is to
// take over when an earlier one fails.
type Client struct {
	client *http.Client
	cfg    Config

	mu       sync.Mutex
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// New creates a Client with the given configuration.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = DefaultConfig().BackoffBase
	}

	return &Client{
		client:   &http.Client{Timeout: cfg.Timeout},
		breakers: make(map[string]*circuitbreaker.CircuitBreaker),
		cfg:      cfg,
	}
}

// breakerFor returns the host's circuit breaker, creating it on first use.
func (c *Client) breakerFor(host string) *circuitbreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[host]; ok {
		return cb
	}
	cbCfg := circuitbreaker.ScrapeConfig()
	cbCfg.Name = cbCfg.Name + ":" + host
	cb := circuitbreaker.New(cbCfg)
	c.breakers[host] = cb
	return cb
}

// Fetch retrieves the payload behind the locator.
//
// Retries apply to 429, 408, 5xx and transient network errors, with linearly
// increasing waits (attempt index times the base delay). Any other HTTP failure
// surfaces immediately as a *retry.HTTPError so the caller can move on to the
// next candidate source.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return c.FetchWithHeaders(ctx, rawURL, nil)
}

// FetchWithHeaders behaves like Fetch with additional request headers layered
// over the browser-like defaults. Used for credentialed API sources.
func (c *Client) FetchWithHeaders(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	host, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}

	retryCfg := retry.Config{
		MaxAttempts:    c.cfg.MaxAttempts,
		BaseDelay:      c.cfg.BackoffBase,
		JitterFraction: 0.1,
		OnRetry: func(attempt int, err error) {
			metrics.RecordFetchRetry(host)
		},
	}

	breaker := c.breakerFor(host)

	var body []byte
	retryErr := retry.WithBackoff(ctx, retryCfg, func() error {
		cbResult, err := breaker.Execute(func() (interface{}, error) {
			return c.doFetch(ctx, rawURL, headers)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("fetch circuit breaker open, request rejected",
					slog.String("url", rawURL),
					slog.String("state", breaker.State().String()))
			}
			return err
		}

		body = cbResult.([]byte)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return body, nil
}

// doFetch performs a single GET attempt without retry or circuit breaker.
func (c *Client) doFetch(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	// Limit body size to prevent memory exhaustion
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}

	return body, nil
}

// validateURL checks the locator scheme and returns the host for metric labels.
func validateURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	return u.Host, nil
}
