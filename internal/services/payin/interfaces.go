package payin

import (
	"context"

	"payflow/internal/models"
	"payflow/internal/processor/mangopay"
)

// Processor is the slice of the remote API the pay-in flow uses.
type Processor interface {
	CreateDirectPayIn(ctx context.Context, params mangopay.CreateDirectPayInParams) (*mangopay.PayIn, error)
	GetPayIn(ctx context.Context, payInID string) (*mangopay.PayIn, error)
}

// MethodStore resolves stored payment methods, read-through cached.
type MethodStore interface {
	Get(ctx context.Context, id uint) (*models.PaymentMethod, error)
}

// Service drives a payment from creation through charge, 3-D Secure
// completion and refund bookkeeping.
type Service interface {
	CreatePayment(ctx context.Context, orderID uint, paymentMethodID uint, amount float64, currencyCode string) (*models.Payment, error)
	GetPayment(id uint) (*models.Payment, error)
	Initiate(ctx context.Context, paymentID uint) (*Result, error)
	CompleteSecureMode(ctx context.Context, paymentID uint) (*Redirect, error)
	Refund(paymentID uint, amount float64) (*models.Payment, error)
	VerifyReturn(orderID uint) error
}
