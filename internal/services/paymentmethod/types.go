package paymentmethod

// CommitRequest is the detail set echoed back by the client after the
// tokenization kit finished. The remote ids come straight from the
// pre-registration session and the processor's registration response.
type CommitRequest struct {
	AccountID    uint   // 0 for anonymous checkouts
	CardType     string `json:"card_type"`
	CardAlias    string `json:"card_alias"` // masked number, e.g. 497010XXXXXX0000
	CardID       string `json:"card_id"`
	UserID       string `json:"user_id"`
	WalletID     string `json:"wallet_id"`
	Expiration   string `json:"expiration"` // MMYY
	CurrencyCode string `json:"currency_code"`
}
