package handlers

import (
	"errors"
	"log"

	"payflow/internal/services/payin"
	"payflow/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PayInHandler struct {
	payinService payin.Service
}

func NewPayInHandler(payinService payin.Service) *PayInHandler {
	return &PayInHandler{payinService: payinService}
}

// CreatePayment records a new charge attempt for an order.
func (h *PayInHandler) CreatePayment(c *fiber.Ctx) error {
	var input struct {
		OrderID         uint    `json:"order_id"`
		PaymentMethodID uint    `json:"payment_method_id"`
		Amount          float64 `json:"amount"`
		CurrencyCode    string  `json:"currency_code"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.OrderID == 0 || input.PaymentMethodID == 0 || input.Amount <= 0 || input.CurrencyCode == "" {
		return response.BadRequest(c, "order_id, payment_method_id, amount and currency_code are required")
	}

	payment, err := h.payinService.CreatePayment(c.Context(), input.OrderID, input.PaymentMethodID, input.Amount, input.CurrencyCode)
	if err != nil {
		if errors.Is(err, payin.ErrNoPaymentMethod) {
			return response.BadRequest(c, "Unknown payment method")
		}
		return response.ServerError(c, "Failed to create payment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    payment.ID,
		"state": payment.State,
	})
}

// Initiate charges the payment and reports the outcome in the shape the
// checkout client branches on.
func (h *PayInHandler) Initiate(c *fiber.Ctx) error {
	paymentID, err := c.ParamsInt("id")
	if err != nil || paymentID <= 0 {
		return response.BadRequest(c, "Invalid payment id")
	}

	result, err := h.payinService.Initiate(c.Context(), uint(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, payin.ErrPaymentNotFound):
			return response.Error(c, fiber.StatusNotFound, "Payment not found")
		case errors.Is(err, payin.ErrAlreadyProcessed),
			errors.Is(err, payin.ErrNoPaymentMethod),
			errors.Is(err, payin.ErrMethodExpired):
			return response.Critical(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("pay-in failed for payment %d: %v", paymentID, err)
			return response.Critical(c, fiber.StatusInternalServerError, "the payment could not be processed")
		}
	}

	if result.Status == payin.StatusCritical {
		return c.Status(fiber.StatusInternalServerError).JSON(result)
	}
	return c.JSON(result)
}

// CompleteSecureMode lands the browser after the bank's 3-D Secure page and
// forwards it to the checkout success or failure page.
func (h *PayInHandler) CompleteSecureMode(c *fiber.Ctx) error {
	paymentID, err := c.ParamsInt("id")
	if err != nil || paymentID <= 0 {
		return response.BadRequest(c, "Invalid payment id")
	}

	redirect, err := h.payinService.CompleteSecureMode(c.Context(), uint(paymentID))
	if err != nil {
		switch {
		case errors.Is(err, payin.ErrPaymentNotFound):
			return response.Error(c, fiber.StatusNotFound, "Payment not found")
		case errors.Is(err, payin.ErrNotPending),
			errors.Is(err, payin.ErrNoPaymentMethod),
			errors.Is(err, payin.ErrMethodExpired),
			errors.Is(err, payin.ErrMissingRemoteID):
			return response.Critical(c, fiber.StatusBadRequest, err.Error())
		default:
			log.Printf("secure-mode completion failed for payment %d: %v", paymentID, err)
			return response.Critical(c, fiber.StatusInternalServerError, "the payment could not be verified")
		}
	}

	return c.Redirect(redirect.URL, fiber.StatusFound)
}

// Refund records a refund against a completed payment.
func (h *PayInHandler) Refund(c *fiber.Ctx) error {
	paymentID, err := c.ParamsInt("id")
	if err != nil || paymentID <= 0 {
		return response.BadRequest(c, "Invalid payment id")
	}

	var input struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.payinService.Refund(uint(paymentID), input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, payin.ErrPaymentNotFound):
			return response.Error(c, fiber.StatusNotFound, "Payment not found")
		case errors.Is(err, payin.ErrNotCompleted), errors.Is(err, payin.ErrExcessiveRefund):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Failed to refund payment")
		}
	}

	return response.Success(c, "Refund recorded", fiber.Map{
		"id":              payment.ID,
		"state":           payment.State,
		"refunded_amount": payment.RefundedAmount,
	})
}

// VerifyReturn guards the checkout return page: the order must carry a
// completed payment with a processor-side pay-in.
func (h *PayInHandler) VerifyReturn(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return response.BadRequest(c, "Invalid order id")
	}

	if err := h.payinService.VerifyReturn(uint(orderID)); err != nil {
		if errors.Is(err, payin.ErrNoValidPayment) {
			return response.Error(c, fiber.StatusPaymentRequired, "No completed payment for this order")
		}
		return response.ServerError(c, "Failed to verify order payment")
	}
	return response.Success(c, "Payment verified", nil)
}
