package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"payflow/internal/cards"
	"payflow/internal/models"
	"payflow/internal/services/payin"
	"payflow/internal/tokenization"
)

// CardDetails is the form input for one checkout attempt.
type CardDetails struct {
	Number       string
	ExpiryMonth  string // MM
	ExpiryYear   string // YY
	SecurityCode string
}

// FieldError is a client-side validation failure, caught before anything
// leaves the machine.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Outcome is the end state of a checkout run. Exactly one of the branches is
// taken: completed, redirected to 3-D Secure, declined, or errored.
type Outcome struct {
	Status        string
	PaymentID     uint
	SecureModeURL string
	Code          string
	Message       string
}

// Flow drives a full checkout: validate, pre-register, tokenize, commit,
// pay in.
type Flow struct {
	api *Client
}

func NewFlow(api *Client) *Flow {
	if api == nil {
		panic("gateway api client is required")
	}
	return &Flow{api: api}
}

// ValidateCard checks the card details locally and returns the detected
// network descriptor. Validation failures name the offending field.
func ValidateCard(card CardDetails) (*cards.Type, error) {
	number := strings.ReplaceAll(card.Number, " ", "")
	if number == "" {
		return nil, &FieldError{Field: "card_number", Message: "is required"}
	}

	cardType := cards.Validate(number)
	if cardType == nil {
		return nil, &FieldError{Field: "card_number", Message: "is not a valid card number"}
	}
	if !cardType.HasValidLength(number) {
		return nil, &FieldError{Field: "card_number", Message: fmt.Sprintf("has the wrong length for %s", cardType.DisplayName)}
	}

	code := card.SecurityCode
	if len(code) != cardType.Code.Size || !allDigits(code) {
		return nil, &FieldError{
			Field:   "security_code",
			Message: fmt.Sprintf("%s must be %d digits", cardType.Code.Name, cardType.Code.Size),
		}
	}

	if err := validateExpiry(card.ExpiryMonth, card.ExpiryYear); err != nil {
		return nil, err
	}
	return cardType, nil
}

// Checkout runs the whole flow for one order. The card data goes straight to
// the processor's tokenization endpoint; only opaque ids reach the gateway.
func (f *Flow) Checkout(ctx context.Context, orderID uint, amount float64, billing models.BillingInformation, card CardDetails) (*Outcome, error) {
	if _, err := ValidateCard(card); err != nil {
		return nil, err
	}
	number := strings.ReplaceAll(card.Number, " ", "")

	settings, err := f.api.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gateway settings: %w", err)
	}

	session, err := f.api.PreRegisterCard(ctx, billingFields(billing), settings.CurrencyCode, settings.CardTypeHint)
	if err != nil {
		return nil, fmt.Errorf("pre-register card: %w", err)
	}

	kit := tokenization.NewKit(settings.BaseURL, settings.ClientID)
	kit.InitSession(tokenization.Session{
		CardRegistrationURL: session.CardRegistrationURL,
		PreregistrationData: session.PreregistrationData,
		AccessKey:           session.AccessKey,
		ID:                  session.CardRegistrationID,
	})
	cardID, err := kit.RegisterCard(ctx, tokenization.CardInput{
		Number:       number,
		ExpiryMonth:  card.ExpiryMonth,
		ExpiryYear:   card.ExpiryYear,
		SecurityCode: card.SecurityCode,
	})
	if err != nil {
		return nil, fmt.Errorf("tokenize card: %w", err)
	}

	methodID, err := f.api.CommitPaymentMethod(ctx, map[string]string{
		"card_type":     session.CardType,
		"card_alias":    maskNumber(number),
		"card_id":       cardID,
		"user_id":       session.UserID,
		"wallet_id":     session.WalletID,
		"expiration":    card.ExpiryMonth + card.ExpiryYear,
		"currency_code": settings.CurrencyCode,
	})
	if err != nil {
		return nil, fmt.Errorf("commit payment method: %w", err)
	}

	paymentID, err := f.api.CreatePayment(ctx, orderID, methodID, amount, settings.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	result, err := f.api.InitiatePayIn(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("initiate pay-in: %w", err)
	}

	outcome := &Outcome{
		Status:    result.Status,
		Code:      result.Code,
		Message:   result.Message,
		PaymentID: paymentID,
	}
	if result.Status == payin.StatusCreated {
		outcome.SecureModeURL = result.SecureModeURL
	}
	return outcome, nil
}

func validateExpiry(month, year string) error {
	if len(month) != 2 || len(year) != 2 || !allDigits(month) || !allDigits(year) {
		return &FieldError{Field: "expiration", Message: "must be MM and YY digits"}
	}
	m := int(month[0]-'0')*10 + int(month[1]-'0')
	if m < 1 || m > 12 {
		return &FieldError{Field: "expiration", Message: "month must be between 01 and 12"}
	}
	y := 2000 + int(year[0]-'0')*10 + int(year[1]-'0')

	// The card stays usable through the last moment of its expiry month.
	endOfMonth := time.Date(y, time.Month(m)+1, 1, 0, 0, 0, 0, time.UTC)
	if !time.Now().Before(endOfMonth) {
		return &FieldError{Field: "expiration", Message: "card has expired"}
	}
	return nil
}

// maskNumber keeps the first six and last four digits, the alias shape the
// gateway stores.
func maskNumber(number string) string {
	if len(number) <= 10 {
		return number
	}
	return number[:6] + strings.Repeat("X", len(number)-10) + number[len(number)-4:]
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func billingFields(b models.BillingInformation) map[string]string {
	return map[string]string{
		"first_name":    b.FirstName,
		"last_name":     b.LastName,
		"email":         b.Email,
		"address_line1": b.AddressLine1,
		"address_line2": b.AddressLine2,
		"city":          b.City,
		"postal_code":   b.PostalCode,
		"country":       b.CountryCode,
		"nationality":   b.Nationality,
		"dob":           b.DateOfBirth,
	}
}
