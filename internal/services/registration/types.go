package registration

import "payflow/internal/models"

// Request is one card registration attempt.
type Request struct {
	Billing      models.BillingInformation
	CurrencyCode string
	CardType     string // processor-side card type hint
	AccountID    uint   // 0 for anonymous checkouts
}

// Session carries everything the browser tokenization kit and the later
// commit step need. The server keeps no state between pre-registration and
// commit, so the client must echo the user and wallet ids back.
type Session struct {
	UserID              string `json:"userId"`
	WalletID            string `json:"walletId"`
	CardRegistrationURL string `json:"cardRegistrationURL"`
	PreregistrationData string `json:"preregistrationData"`
	CardRegistrationID  string `json:"cardRegistrationId"`
	CardType            string `json:"cardType"`
	AccessKey           string `json:"accessKey"`
}
