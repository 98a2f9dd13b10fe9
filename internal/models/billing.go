package models

// BillingInformation is the checkout billing input consumed once per card
// registration attempt. Field names follow the card registration endpoint
// contract.
type BillingInformation struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country"`
	Nationality  string `json:"nationality"`
	DateOfBirth  string `json:"dob"` // YYYY-MM-DD
}
