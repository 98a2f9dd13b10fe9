// Package tokenization is the card tokenization kit. It sends raw card data
// directly to the processor's tokenization endpoint and completes the card
// registration, yielding an opaque card id. This is the PCI-scope-reduction
// boundary: the card number and security code travel only between the caller
// and the processor, never through the gateway backend.
package tokenization

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"payflow/internal/processor/mangopay"
)

// Session carries the four credentials the kit needs from a card
// registration session. Field names are stable across the server boundary.
type Session struct {
	CardRegistrationURL string `json:"cardRegistrationURL"`
	PreregistrationData string `json:"preregistrationData"`
	AccessKey           string `json:"accessKey"`
	ID                  string `json:"cardRegistrationId"`
}

// CardInput is the raw card data. It exists only for the duration of the
// registration handshake and must never be persisted or logged.
type CardInput struct {
	Number       string
	ExpiryMonth  string // MM
	ExpiryYear   string // YY
	SecurityCode string
}

// expirationDate renders the MMYY form the tokenization endpoint expects.
func (c CardInput) expirationDate() string {
	return c.ExpiryMonth + c.ExpiryYear
}

var (
	ErrSessionNotInitialized = errors.New("tokenization session not initialized")
	ErrRegistrationRejected  = errors.New("card registration rejected by processor")
)

// Kit mirrors the processor's browser tokenization kit: configured with the
// API base URL and client id, initialized per attempt with session
// credentials.
type Kit struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	session    *Session
}

// NewKit creates a tokenization kit against the given processor base URL.
func NewKit(baseURL, clientID string) *Kit {
	return &Kit{
		baseURL:  baseURL,
		clientID: clientID,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// InitSession arms the kit with one registration session. Sessions are
// single-use; the kit forgets the session after RegisterCard returns.
func (k *Kit) InitSession(s Session) {
	k.session = &s
}

// RegisterCard transmits the card data to the processor's tokenization
// endpoint and completes the registration. On success it returns the remote
// card id. The returned error never contains card data.
func (k *Kit) RegisterCard(ctx context.Context, card CardInput) (string, error) {
	session := k.session
	k.session = nil
	if session == nil {
		return "", ErrSessionNotInitialized
	}

	registrationData, err := k.tokenize(ctx, session, card)
	if err != nil {
		return "", err
	}

	return k.completeRegistration(ctx, session.ID, registrationData)
}

// tokenize posts the card data to the registration URL and returns the
// opaque registration data blob.
func (k *Kit) tokenize(ctx context.Context, session *Session, card CardInput) (string, error) {
	form := url.Values{}
	form.Set("data", session.PreregistrationData)
	form.Set("accessKeyRef", session.AccessKey)
	form.Set("cardNumber", card.Number)
	form.Set("cardExpirationDate", card.expirationDate())
	form.Set("cardCvx", card.SecurityCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, session.CardRegistrationURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build tokenization request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tokenization request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read tokenization response: %w", err)
	}

	payload := strings.TrimSpace(string(body))
	if resp.StatusCode != http.StatusOK || strings.HasPrefix(payload, "errorCode=") {
		return "", fmt.Errorf("%w: %s", ErrRegistrationRejected, payload)
	}
	if !strings.HasPrefix(payload, "data=") {
		return "", fmt.Errorf("%w: unexpected response", ErrRegistrationRejected)
	}
	return payload, nil
}

// completeRegistration submits the registration data to the API and extracts
// the card id. The call is authenticated by the session itself, not by
// client credentials.
func (k *Kit) completeRegistration(ctx context.Context, registrationID, registrationData string) (string, error) {
	endpoint := fmt.Sprintf("%s/v2.01/%s/CardRegistrations/%s", k.baseURL, k.clientID, registrationID)

	form := url.Values{}
	form.Set("RegistrationData", registrationData)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("registration completion failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", ErrRegistrationRejected, resp.StatusCode)
	}

	var reg mangopay.CardRegistration
	if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if reg.Status == mangopay.RegistrationError || reg.CardID == "" {
		return "", ErrRegistrationRejected
	}
	return reg.CardID, nil
}
