// Package client implements the checkout side of the gateway: a thin API
// client for the gateway server and a flow controller that validates card
// input, runs the tokenization kit and drives the pay-in to completion.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"payflow/internal/services/payin"
	"payflow/internal/services/registration"
)

// Settings is the non-secret gateway configuration served to clients.
type Settings struct {
	GatewayID    string `json:"gateway_id"`
	Mode         string `json:"mode"`
	ClientID     string `json:"client_id"`
	BaseURL      string `json:"base_url"`
	CurrencyCode string `json:"currency_code"`
	CardTypeHint string `json:"card_type_hint"`
}

// APIError is a non-2xx response from the gateway server.
type APIError struct {
	StatusCode int
	Status     string `json:"status"`
	Message    string `json:"message"`
	Detail     string `json:"error"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Detail
	}
	return fmt.Sprintf("gateway returned %d: %s", e.StatusCode, msg)
}

// Client calls the gateway server's HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a gateway API client. The bearer token may be empty for
// guest checkouts.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Secure-mode and return redirects are surfaced to the caller,
			// never followed.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Settings fetches the client-side gateway configuration.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, http.MethodGet, "/api/gateway/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// PreRegisterCard opens a card registration session.
func (c *Client) PreRegisterCard(ctx context.Context, billing map[string]string, currencyCode, cardType string) (*registration.Session, error) {
	body := map[string]interface{}{
		"billing":       billing,
		"currency_code": currencyCode,
		"card_type":     cardType,
	}
	var session registration.Session
	if err := c.do(ctx, http.MethodPost, "/api/gateway/preregister-card", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CommitPaymentMethod stores the tokenized card on the gateway and returns
// the payment method id.
func (c *Client) CommitPaymentMethod(ctx context.Context, details map[string]string) (uint, error) {
	var out struct {
		ID uint `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/payment-methods", details, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// CreatePayment records a charge attempt for an order.
func (c *Client) CreatePayment(ctx context.Context, orderID, paymentMethodID uint, amount float64, currencyCode string) (uint, error) {
	body := map[string]interface{}{
		"order_id":          orderID,
		"payment_method_id": paymentMethodID,
		"amount":            amount,
		"currency_code":     currencyCode,
	}
	var out struct {
		ID uint `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/payments", body, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// InitiatePayIn charges the payment and returns the outcome.
func (c *Client) InitiatePayIn(ctx context.Context, paymentID uint) (*payin.Result, error) {
	var result payin.Result
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/payments/%d/payin", paymentID), nil, &result)
	if err != nil {
		// A Critical outcome rides on a 500 with the same body shape.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == payin.StatusCritical {
			return &payin.Result{Status: payin.StatusCritical, Message: apiErr.Message}, nil
		}
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
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
