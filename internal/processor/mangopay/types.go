package mangopay

import "fmt"

// Pay-in statuses returned by the processor.
const (
	PayInCreated   = "CREATED"
	PayInSucceeded = "SUCCEEDED"
	PayInFailed    = "FAILED"
)

// Card registration statuses.
const (
	RegistrationCreated   = "CREATED"
	RegistrationValidated = "VALIDATED"
	RegistrationError     = "ERROR"
)

// APIError is a non-2xx response from the processor.
type APIError struct {
	StatusCode int    `json:"-"`
	Type       string `json:"Type"`
	Message    string `json:"Message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mangopay: %d %s: %s", e.StatusCode, e.Type, e.Message)
}

// Address is a postal address attached to a natural user.
type Address struct {
	AddressLine1 string `json:"AddressLine1"`
	AddressLine2 string `json:"AddressLine2,omitempty"`
	City         string `json:"City"`
	PostalCode   string `json:"PostalCode"`
	Country      string `json:"Country"`
}

// NaturalUser is the processor's customer record.
type NaturalUser struct {
	ID                 string   `json:"Id"`
	FirstName          string   `json:"FirstName"`
	LastName           string   `json:"LastName"`
	Email              string   `json:"Email"`
	Birthday           int64    `json:"Birthday,omitempty"`
	Nationality        string   `json:"Nationality,omitempty"`
	CountryOfResidence string   `json:"CountryOfResidence"`
	Address            *Address `json:"Address,omitempty"`
	Tag                string   `json:"Tag,omitempty"`
}

// Wallet is a currency-denominated balance container owned by a remote user.
type Wallet struct {
	ID          string   `json:"Id"`
	Owners      []string `json:"Owners"`
	Description string   `json:"Description"`
	Currency    string   `json:"Currency"`
	Tag         string   `json:"Tag,omitempty"`
}

// CardRegistration is a short-lived tokenization session. The browser kit
// needs CardRegistrationURL, PreregistrationData, AccessKey and Id; nothing
// else crosses that boundary.
type CardRegistration struct {
	ID                  string `json:"Id"`
	UserID              string `json:"UserId"`
	Currency            string `json:"Currency"`
	CardType            string `json:"CardType"`
	CardRegistrationURL string `json:"CardRegistrationURL"`
	PreregistrationData string `json:"PreregistrationData"`
	AccessKey           string `json:"AccessKey"`
	RegistrationData    string `json:"RegistrationData,omitempty"`
	CardID              string `json:"CardId,omitempty"`
	Status              string `json:"Status,omitempty"`
	Tag                 string `json:"Tag,omitempty"`
}

// Card is a registered, tokenized card.
type Card struct {
	ID         string `json:"Id"`
	UserID     string `json:"UserId"`
	CardType   string `json:"CardType"`
	Alias      string `json:"Alias"`
	ExpiryDate string `json:"ExpirationDate"` // MMYY
	Active     bool   `json:"Active"`
	Currency   string `json:"Currency"`
}

// Money is an amount in minor units with its currency.
type Money struct {
	Amount   int64  `json:"Amount"`
	Currency string `json:"Currency"`
}

// PayIn is a charge attempt crediting a wallet from a card.
type PayIn struct {
	ID                    string `json:"Id"`
	AuthorID              string `json:"AuthorId"`
	CreditedWalletID      string `json:"CreditedWalletId"`
	DebitedFunds          Money  `json:"DebitedFunds"`
	Fees                  Money  `json:"Fees"`
	CardID                string `json:"CardId"`
	Status                string `json:"Status"`
	ResultCode            string `json:"ResultCode"`
	ResultMessage         string `json:"ResultMessage"`
	SecureModeNeeded      bool   `json:"SecureModeNeeded"`
	SecureModeRedirectURL string `json:"SecureModeRedirectURL"`
	SecureModeReturnURL   string `json:"SecureModeReturnURL"`
}

// CreateNaturalUserParams carries the KYC fields for user creation.
type CreateNaturalUserParams struct {
	FirstName    string
	LastName     string
	Email        string
	Birthday     int64 // unix timestamp, 0 when unknown
	Nationality  string
	Country      string
	AddressLine1 string
	AddressLine2 string
	City         string
	PostalCode   string
	Tag          string
}

// CreateWalletParams describes a new wallet.
type CreateWalletParams struct {
	OwnerID     string
	Currency    string
	Description string
	Tag         string
}

// CreateCardRegistrationParams opens a tokenization session.
type CreateCardRegistrationParams struct {
	UserID   string
	Currency string
	CardType string
	Tag      string
}

// CreateDirectPayInParams describes a direct card charge.
type CreateDirectPayInParams struct {
	AuthorID            string
	CreditedWalletID    string
	CardID              string
	Amount              int64 // minor units
	Currency            string
	SecureModeReturnURL string
	Tag                 string
}
