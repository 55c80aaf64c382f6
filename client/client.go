// Package client is the HTTP client for the community galactic-war API. It
// fetches raw JSON payloads, builds typed galaxy entities, and acts as the
// shared resolver entities call back into for lazy reference resolution and
// game-clock reconciliation.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"helldive/galaxy"
)

// DefaultBaseURL is the public community API endpoint.
const DefaultBaseURL = "https://api.helldivers2.dev"

const (
	defaultUserAgent = "helldive"
	defaultTimeout   = 10 * time.Second
	defaultRetries   = 5
)

// Config controls client construction. Zero values fall back to defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Retries is the number of extra attempts after the first for transport
	// failures, 429, and 5xx responses.
	Retries int
	Logger  *slog.Logger
}

// Client is the shared read-only context handle injected into every entity.
// It is safe for concurrent use and never mutated by entities.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	retries    int
	log        *slog.Logger
}

// New builds a client. The zero Config yields a client against the public
// API with sane timeouts.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	switch {
	case cfg.Retries == 0:
		cfg.Retries = defaultRetries
	case cfg.Retries < 0:
		// Negative means no retries; left unclamped it would convert to a
		// huge unsigned try budget.
		cfg.Retries = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retries:    cfg.Retries,
		log:        cfg.Logger,
	}
}

// get performs a GET with retry/backoff and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	op := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Super-Client", c.userAgent)
		req.Header.Set("X-Request-Id", uuid.NewString())
		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		c.log.Debug("api request", "url", u, "status", resp.StatusCode, "duration", time.Since(start))
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(ErrNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		case resp.StatusCode >= 300:
			return nil, backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Body: string(body)})
		}
		return body, nil
	}
	body, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(c.retries)+1),
	)
	if err != nil {
		var apiErr *APIError
		switch {
		case errors.Is(err, ErrNotFound), errors.As(err, &apiErr):
			return err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			return &ConnError{URL: u, Err: err}
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &galaxy.DecodeError{Entity: endpoint, Reason: err.Error()}
	}
	return nil
}
