// Package rest implements platform.Platform against the mlpipe HTTP
// protocol, served in production by the managed platform gateway and
// locally by the devserver.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultMaxPayloadBytes = 5 * 1024 * 1024

// Client is an HTTP client for the platform API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client

	// maxPayloadBytes caps a single invocation request body. Larger
	// batches are chunked into several requests.
	maxPayloadBytes int
}

// Option configures a Client.
type Option func(*Client)

// WithMaxPayloadBytes overrides the invocation payload cap.
func WithMaxPayloadBytes(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxPayloadBytes = n
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a platform client. token may be empty when the
// server side runs without authentication.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		maxPayloadBytes: defaultMaxPayloadBytes,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}

	return c.do(req)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, int, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, 0, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) postCSV(ctx context.Context, path string, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "text/csv")

	return c.do(req)
}

func (c *Client) delete(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return data, resp.StatusCode, nil
}

// Health checks that the platform API is reachable.
func (c *Client) Health(ctx context.Context) error {
	_, status, err := c.get(ctx, "/health")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("platform returned status %d", status)
	}
	return nil
}
