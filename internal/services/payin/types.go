package payin

// Result statuses reported back to the browser after a pay-in attempt.
const (
	StatusSucceeded = "Succeeded"
	StatusCreated   = "Created"
	StatusFailed    = "Failed"
	StatusCritical  = "Critical"
)

// Result is the outcome of a pay-in attempt. Succeeded carries the payment
// id; Created carries the 3-D Secure redirect URL; Failed carries the
// processor's decline code and message; Critical means the attempt could not
// be interpreted and the client should show a generic error.
type Result struct {
	Status        string `json:"status"`
	Code          string `json:"code,omitempty"`
	Message       string `json:"message,omitempty"`
	SecureModeURL string `json:"secureModeUrl,omitempty"`
	PaymentID     uint   `json:"paymentId,omitempty"`
}

// Redirect tells the secure-mode handler where to send the browser.
type Redirect struct {
	URL       string
	Succeeded bool
}
