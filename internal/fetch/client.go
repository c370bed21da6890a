// Package fetch provides the shared outbound HTTP client. Every remote
// source in the system is reached through it, so rate limiting and the
// retry policy are defined (and tested) exactly once.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jpillora/backoff"
	"golang.org/x/time/rate"
)

// ErrUpstream marks failures of the remote source itself (non-2xx status or
// transport error) as opposed to local request-building problems.
var ErrUpstream = errors.New("upstream fetch failed")

// StatusError is an ErrUpstream carrying the HTTP status that caused it.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: status %d", e.URL, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

// RetryPolicy parameterizes the retry decorator applied to every request.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	// Retryable reports whether a given HTTP status is worth retrying.
	// Transport errors are always retryable.
	Retryable func(status int) bool
}

// DefaultRetryable retries server-side errors only; a 4xx will not get
// better by asking again.
func DefaultRetryable(status int) bool {
	return status >= 500
}

// Client wraps http.Client with a token-bucket rate limiter, a fixed
// User-Agent, and retry with exponential backoff.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	retry     RetryPolicy
	userAgent string
	log       *slog.Logger
}

// New creates a Client allowing rps requests per second upstream.
func New(rps float64, retry RetryPolicy, userAgent string) *Client {
	if retry.Retryable == nil {
		retry.Retryable = DefaultRetryable
	}
	if retry.BaseDelay <= 0 {
		retry.BaseDelay = time.Second
	}
	return &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
		retry:     retry,
		userAgent: userAgent,
		log:       slog.Default(),
	}
}

// SetHTTPClient replaces the underlying http.Client (used by tests).
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

// Get performs a rate-limited GET with retries and returns the body.
func (c *Client) Get(ctx context.Context, url, accept string) ([]byte, error) {
	b := &backoff.Backoff{
		Min:    c.retry.BaseDelay,
		Max:    30 * time.Second,
		Factor: 2,
	}

	var lastErr error
	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := b.Duration()
			c.log.Warn("retrying fetch", "url", url, "attempt", attempt, "delay", delay, "err", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.once(ctx, url, accept)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var se *StatusError
		if errors.As(err, &se) && !c.retry.Retryable(se.Status) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (c *Client) once(ctx context.Context, url, accept string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, errors.Join(ErrUpstream, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, &StatusError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, errors.Join(ErrUpstream, err))
	}
	return body, nil
}

// GetJSON fetches url and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing %s: %w", url, errors.Join(ErrUpstream, err))
	}
	return nil
}

// GetText fetches url and returns the body as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url, "")
	if err != nil {
		return "", err
	}
	return string(body), nil
}
