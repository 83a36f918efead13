// Package api is the HTTP client for the remote Ephemeris/Journal service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/transit-journal/internal/common"
	"github.com/Veraticus/transit-journal/internal/service"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultBaseURL       = "http://localhost:3000/api"
	DefaultTimeout       = 30 * time.Second
	DefaultRetryAttempts = 3
	DefaultOrb           = 2.0
)

// Config holds the client settings.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	// Orb is the aspect tolerance in degrees passed to the transits endpoint.
	Orb float64
}

// APIError is a non-2xx response from the service.
type APIError struct {
	Method  string
	Path    string
	Message string
	Status  int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unwrap maps the status onto the common sentinel errors so callers can use
// errors.Is(err, common.ErrNotFound).
func (e *APIError) Unwrap() error {
	return common.StatusError(e.Status)
}

// Client talks to the Ephemeris/Journal API. It implements service.Backend.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	retry      service.RetryOptions
	orb        float64
}

var _ service.Backend = (*Client)(nil)

// NewClient creates a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = DefaultRetryAttempts
	}
	if cfg.Orb <= 0 {
		cfg.Orb = DefaultOrb
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: api base url %q: %w", common.ErrInvalidConfig, cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: api base url %q must be http or https", common.ErrInvalidConfig, cfg.BaseURL)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		orb:        cfg.Orb,
		retry: service.RetryOptions{
			MaxAttempts:  cfg.RetryAttempts,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// SetRetryOptions overrides the retry policy for GET requests.
func (c *Client) SetRetryOptions(opts service.RetryOptions) {
	c.retry = opts
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// get fetches path and decodes the JSON body into out, retrying transient failures.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return common.WithRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, query, nil, http.StatusOK, out)
	}, c.retry)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %w", common.ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("API request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp)
	}
	if resp.StatusCode != want {
		slog.Debug("Unexpected success status", "method", method, "path", path, "status", resp.StatusCode, "want", want)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s %s returned an empty body", common.ErrServer, method, path)
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func newAPIError(method, path string, resp *http.Response) *APIError {
	apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorResponse
	if json.Unmarshal(raw, &body) == nil && first(body.Error, body.Message) != "" {
		apiErr.Message = first(body.Error, body.Message)
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
