package validation

import (
	"time"

	"payflow/internal/models"
)

// Billing validates the billing information for a card registration attempt.
// Nationality and date of birth are required only under full KYC.
func (v *Validator) Billing(billing *models.BillingInformation, simpleKYC bool) {
	v.Required("first_name", billing.FirstName)
	v.Required("last_name", billing.LastName)
	v.Required("email", billing.Email)
	if billing.Email != "" {
		v.Email("email", billing.Email)
	}
	v.Required("address_line1", billing.AddressLine1)
	v.Required("city", billing.City)
	v.Required("postal_code", billing.PostalCode)
	v.Required("country", billing.CountryCode)

	if !simpleKYC {
		v.Required("nationality", billing.Nationality)
		v.Required("dob", billing.DateOfBirth)
		if billing.DateOfBirth != "" {
			_, err := time.Parse("2006-01-02", billing.DateOfBirth)
			v.Check(err == nil, "dob", "must be a date in YYYY-MM-DD format")
		}
	}
}
