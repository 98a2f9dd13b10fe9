package payin

import "errors"

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrAlreadyProcessed = errors.New("payment has already been processed")
	ErrNoPaymentMethod  = errors.New("payment has no payment method attached")
	ErrMethodExpired    = errors.New("payment method has expired")
	ErrMissingRemoteID  = errors.New("payment has no remote pay-in id")
	ErrNotPending       = errors.New("payment is not awaiting 3-D Secure completion")
	ErrNotCompleted     = errors.New("payment is not completed")
	ErrExcessiveRefund  = errors.New("refund amount exceeds the remaining balance")
	ErrNoValidPayment   = errors.New("no completed payment found for order")
)
