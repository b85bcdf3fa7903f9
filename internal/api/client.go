// Package api is the single entry point for all dashboard backend calls.
// Every panel and command goes through Client; it owns JSON encoding,
// header defaults, and error surfacing. It never retries: retry decisions
// belong to callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/notidash/pkg/logger"
	"github.com/notidash/pkg/ratelimit"
)

// Client handles dashboard backend API requests
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *ratelimit.MultiLimiter
	headers     http.Header
	log         *logger.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithTimeout sets the transport timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHeader adds a default header sent on every request. Callers may
// override it per request; neither side drops the other's headers.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// NewClient creates a new backend API client
func NewClient(baseURL string, limiter *ratelimit.MultiLimiter, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
		headers:     http.Header{},
		log:         log.WithComponent("api"),
	}
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs an HTTP request and decodes the JSON response into out.
// Non-2xx responses become *Error carrying the server's detail verbatim.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	return c.doLimited(ctx, ratelimit.LimiterBackend, method, path, query, body, out)
}

func (c *Client) doLimited(ctx context.Context, limiterName, method, path string, query url.Values, body, out interface{}) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx, limiterName); err != nil {
			return fmt.Errorf("rate limit error: %w", err)
		}
	}

	// Prepare request body
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Defaults first, then caller headers over them.
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Msg("Backend API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Raw error goes to the diagnostic channel before surfacing.
		c.log.Error().Err(err).Str("path", path).Msg("Backend request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Str("path", path).
		Msg("Backend API response")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, data)
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("path", path).
			Str("detail", apiErr.Detail).
			Msg("Backend API error")
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
