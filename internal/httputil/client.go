// Package httputil provides HTTP client and response utilities for
// gateway-to-service communication.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dungeonworks/gateway/internal/errors"
)

const maxResponseBytes = 8 << 20

// UpstreamRecorder counts failed calls to a downstream service.
type UpstreamRecorder interface {
	RecordUpstreamError(upstream string)
}

// Client is a JSON-over-HTTP client for calls to one domain service.
// Every call is bounded by the configured timeout; connection failures
// surface as UpstreamUnavailable errors naming the service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	service    string
	metrics    UpstreamRecorder
}

// ClientConfig configures a domain-service client.
type ClientConfig struct {
	// Service names the downstream boundary, used in error messages.
	Service string
	BaseURL string
	Timeout time.Duration
	// Metrics, when set, counts transport failures per service.
	Metrics UpstreamRecorder
}

// NewClient creates a client for one domain service.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		service:    cfg.Service,
		metrics:    cfg.Metrics,
	}
}

// recordFailure counts one failed call when a recorder is configured.
func (c *Client) recordFailure() {
	if c.metrics != nil {
		c.metrics.RecordUpstreamError(c.service)
	}
}

// Response is a downstream response with the body fully read, so the
// caller can both branch on the status and pass the payload through.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the response status is 2xx.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode unmarshals the response body into target.
func (r *Response) Decode(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ErrorMessage extracts the "error" field from a JSON error body, or
// returns the raw body when it has some other shape.
func (r *Response) ErrorMessage() string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(r.Body)
}

// Do executes a request against the service and reads the full body.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordFailure()
		return nil, errors.Unavailable(c.service, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.recordFailure()
		return nil, errors.Unavailable(c.service, err)
	}

	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Service returns the downstream service name this client targets.
func (c *Client) Service() string { return c.service }
