// Package payin runs the charge side of checkout: creating direct pay-ins
// against the processor, handling the 3-D Secure round trip and keeping
// refund bookkeeping on completed payments.
package payin

import (
	"context"
	"errors"
	"fmt"
	"log"

	"payflow/internal/config"
	"payflow/internal/models"
	"payflow/internal/processor/mangopay"
	"payflow/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	processor Processor
	payments  repositories.PaymentRepository
	methods   MethodStore
	cfg       config.GatewayConfig
}

// NewService creates the pay-in service.
func NewService(processor Processor, payments repositories.PaymentRepository, methods MethodStore, cfg config.GatewayConfig) Service {
	if processor == nil {
		panic("processor client is required")
	}
	if payments == nil {
		panic("payment repository is required")
	}
	if methods == nil {
		panic("payment method store is required")
	}
	return &service{
		processor: processor,
		payments:  payments,
		methods:   methods,
		cfg:       cfg,
	}
}

// CreatePayment records a new charge attempt for an order. The payment
// method must exist; everything else waits until Initiate.
func (s *service) CreatePayment(ctx context.Context, orderID uint, paymentMethodID uint, amount float64, currencyCode string) (*models.Payment, error) {
	method, err := s.methods.Get(ctx, paymentMethodID)
	if err != nil {
		return nil, ErrNoPaymentMethod
	}

	payment := &models.Payment{
		OrderID:         orderID,
		PaymentMethodID: method.ID,
		Amount:          amount,
		CurrencyCode:    currencyCode,
		State:           models.PaymentStateNew,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

func (s *service) GetPayment(id uint) (*models.Payment, error) {
	payment, err := s.payments.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// Initiate charges a new payment. The payment row is the unit of truth:
// declined and uninterpretable attempts delete it, a 3-D Secure step-up
// parks it in pending_3ds, success completes it.
func (s *service) Initiate(ctx context.Context, paymentID uint) (*Result, error) {
	payment, err := s.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.State != models.PaymentStateNew {
		return nil, ErrAlreadyProcessed
	}

	method, err := s.resolveMethod(ctx, payment)
	if err != nil {
		return nil, err
	}

	payIn, err := s.processor.CreateDirectPayIn(ctx, mangopay.CreateDirectPayInParams{
		AuthorID:            method.RemoteUserID,
		CreditedWalletID:    method.RemoteWalletID,
		CardID:              method.RemoteCardID,
		Amount:              minorUnits(payment.Amount),
		Currency:            payment.CurrencyCode,
		SecureModeReturnURL: s.secureModeReturnURL(payment.ID),
		Tag:                 s.cfg.Tag,
	})
	if err != nil {
		log.Printf("pay-in creation failed for payment %d: %v", payment.ID, err)
		return &Result{Status: StatusCritical, Message: "the payment could not be processed"}, nil
	}

	switch payIn.Status {
	case mangopay.PayInFailed:
		s.deletePayment(payment.ID)
		return &Result{
			Status:  StatusFailed,
			Code:    payIn.ResultCode,
			Message: payIn.ResultMessage,
		}, nil

	case mangopay.PayInCreated:
		payment.RemoteID = payIn.ID
		payment.State = models.PaymentStatePending3DS
		if err := s.payments.Update(payment); err != nil {
			return nil, fmt.Errorf("failed to save payment: %w", err)
		}
		if !payIn.SecureModeNeeded || payIn.SecureModeRedirectURL == "" {
			// Created without a 3-D Secure redirect is a state this flow
			// cannot advance from.
			s.deletePayment(payment.ID)
			return &Result{Status: StatusCritical, Message: "the payment could not be processed"}, nil
		}
		return &Result{Status: StatusCreated, SecureModeURL: payIn.SecureModeRedirectURL}, nil

	case mangopay.PayInSucceeded:
		payment.RemoteID = payIn.ID
		payment.State = models.PaymentStateCompleted
		if err := s.payments.Update(payment); err != nil {
			return nil, fmt.Errorf("failed to save payment: %w", err)
		}
		return &Result{Status: StatusSucceeded, PaymentID: payment.ID}, nil

	default:
		log.Printf("unexpected pay-in status %q for payment %d", payIn.Status, payment.ID)
		s.deletePayment(payment.ID)
		return &Result{Status: StatusCritical, Message: "the payment could not be processed"}, nil
	}
}

// CompleteSecureMode finishes a payment after the bank's 3-D Secure page
// sent the browser back. The pay-in is re-fetched from the processor; the
// redirect query parameters are never trusted.
func (s *service) CompleteSecureMode(ctx context.Context, paymentID uint) (*Redirect, error) {
	payment, err := s.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.State != models.PaymentStatePending3DS {
		return nil, ErrNotPending
	}
	if _, err := s.resolveMethod(ctx, payment); err != nil {
		return nil, err
	}
	if payment.RemoteID == "" {
		return nil, ErrMissingRemoteID
	}

	// A fetch failure leaves the payment in pending_3ds so the return URL
	// can be retried.
	payIn, err := s.processor.GetPayIn(ctx, payment.RemoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pay-in %s: %w", payment.RemoteID, err)
	}

	switch payIn.Status {
	case mangopay.PayInSucceeded:
		payment.State = models.PaymentStateCompleted
		if err := s.payments.Update(payment); err != nil {
			return nil, fmt.Errorf("failed to save payment: %w", err)
		}
		return &Redirect{
			URL:       fmt.Sprintf("%s?payment_id=%d", s.cfg.SuccessURL, payment.ID),
			Succeeded: true,
		}, nil

	case mangopay.PayInFailed:
		log.Printf("pay-in %s declined after 3-D Secure: %s %s", payIn.ID, payIn.ResultCode, payIn.ResultMessage)
		s.deletePayment(payment.ID)
		return &Redirect{URL: s.cfg.FailureURL}, nil

	default:
		log.Printf("unexpected pay-in status %q after 3-D Secure for payment %d", payIn.Status, payment.ID)
		s.deletePayment(payment.ID)
		return &Redirect{URL: s.cfg.FailureURL}, nil
	}
}

// Refund records a refund against a completed payment. Bookkeeping only; the
// money movement happens in the processor's dashboard.
func (s *service) Refund(paymentID uint, amount float64) (*models.Payment, error) {
	payment, err := s.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.State != models.PaymentStateCompleted && payment.State != models.PaymentStatePartiallyRefunded {
		return nil, ErrNotCompleted
	}

	total := decimal.NewFromFloat(payment.Amount)
	refunded := decimal.NewFromFloat(payment.RefundedAmount).Add(decimal.NewFromFloat(amount))
	if amount <= 0 || refunded.GreaterThan(total) {
		return nil, ErrExcessiveRefund
	}

	payment.RefundedAmount, _ = refunded.Float64()
	if refunded.Equal(total) {
		payment.State = models.PaymentStateRefunded
	} else {
		payment.State = models.PaymentStatePartiallyRefunded
	}
	if err := s.payments.Update(payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	return payment, nil
}

// VerifyReturn checks that an order landing on the checkout return page
// actually carries a completed payment with a processor-side pay-in.
func (s *service) VerifyReturn(orderID uint) error {
	payments, err := s.payments.GetByOrderID(orderID)
	if err != nil {
		return err
	}
	for _, payment := range payments {
		if payment.State == models.PaymentStateCompleted && payment.RemoteID != "" {
			return nil
		}
	}
	return ErrNoValidPayment
}

func (s *service) resolveMethod(ctx context.Context, payment *models.Payment) (*models.PaymentMethod, error) {
	method := payment.PaymentMethod
	if method == nil {
		var err error
		method, err = s.methods.Get(ctx, payment.PaymentMethodID)
		if err != nil {
			return nil, ErrNoPaymentMethod
		}
	}
	if method.IsExpired() {
		return nil, ErrMethodExpired
	}
	return method, nil
}

func (s *service) secureModeReturnURL(paymentID uint) string {
	return fmt.Sprintf("%s/api/payments/%d/secure-mode", s.cfg.PublicURL, paymentID)
}

func (s *service) deletePayment(id uint) {
	if err := s.payments.Delete(id); err != nil {
		log.Printf("unable to delete payment %d: %v", id, err)
	}
}

// minorUnits converts a decimal amount into the processor's integer minor
// units, e.g. 12.34 EUR to 1234 cents.
func minorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
