// Package mangopay is a minimal REST client for the MANGOPAY API, covering
// the resources this gateway orchestrates: natural users, wallets, card
// registrations and direct pay-ins.
package mangopay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	sandboxBaseURL    = "https://api.sandbox.mangopay.com"
	productionBaseURL = "https://api.mangopay.com"
	apiVersion        = "v2.01"
)

// Client talks to the processor API. All calls block until the remote
// responds or the request times out; a timeout is reported like any other
// remote failure.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the endpoint derived from the mode. Used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a processor client for the given mode ("sandbox" or
// "production").
func NewClient(mode, clientID, clientSecret string, opts ...Option) *Client {
	baseURL := sandboxBaseURL
	if mode == "production" {
		baseURL = productionBaseURL
	}

	c := &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API endpoint the client is configured against. The
// browser tokenization kit needs it alongside the client id.
func (c *Client) BaseURL() string { return c.baseURL }

// ClientID returns the configured client id.
func (c *Client) ClientID() string { return c.clientID }

func (c *Client) url(path string) string {
	return fmt.Sprintf("%s/%s/%s%s", c.baseURL, apiVersion, c.clientID, path)
}

// do performs an authenticated API call, decoding the response into out when
// non-nil. POST requests carry an idempotency key.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mangopay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(data)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
