package handlers

import (
	"errors"

	"payflow/internal/middleware"
	"payflow/internal/services/paymentmethod"
	"payflow/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentMethodHandler struct {
	methodService paymentmethod.Service
}

func NewPaymentMethodHandler(methodService paymentmethod.Service) *PaymentMethodHandler {
	return &PaymentMethodHandler{methodService: methodService}
}

// Commit stores the tokenized card reference the browser kit produced.
func (h *PaymentMethodHandler) Commit(c *fiber.Ctx) error {
	var input paymentmethod.CommitRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	input.AccountID = middleware.AccountID(c)

	method, err := h.methodService.Commit(c.Context(), input)
	if err != nil {
		var argErr *paymentmethod.ArgumentError
		if errors.As(err, &argErr) {
			return response.BadRequest(c, argErr.Error())
		}
		if errors.Is(err, paymentmethod.ErrBadExpiry) {
			return response.BadRequest(c, "expiration must be a valid MMYY date")
		}
		return response.ServerError(c, "Failed to save payment method")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":        method.ID,
		"card_type": method.CardType,
		"last_four": method.LastFour,
		"expires":   method.ExpiryMonth + "/" + method.ExpiryYear,
	})
}

// List returns the account's stored payment methods.
func (h *PaymentMethodHandler) List(c *fiber.Ctx) error {
	accountID := middleware.AccountID(c)
	if accountID == 0 {
		return response.Unauthorized(c)
	}

	methods, err := h.methodService.ListForAccount(accountID)
	if err != nil {
		return response.ServerError(c, "Failed to load payment methods")
	}

	out := make([]fiber.Map, 0, len(methods))
	for _, m := range methods {
		out = append(out, fiber.Map{
			"id":        m.ID,
			"card_type": m.CardType,
			"last_four": m.LastFour,
			"expires":   m.ExpiryMonth + "/" + m.ExpiryYear,
			"expired":   m.IsExpired(),
		})
	}
	return response.Success(c, "Payment methods", out)
}

// Delete removes a stored payment method.
func (h *PaymentMethodHandler) Delete(c *fiber.Ctx) error {
	accountID := middleware.AccountID(c)
	if accountID == 0 {
		return response.Unauthorized(c)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid payment method id")
	}

	if err := h.methodService.Delete(c.Context(), uint(id), accountID); err != nil {
		switch {
		case errors.Is(err, paymentmethod.ErrNotFound):
			return response.Error(c, fiber.StatusNotFound, "Payment method not found")
		case errors.Is(err, paymentmethod.ErrNotOwner):
			return response.Error(c, fiber.StatusForbidden, "Payment method does not belong to this account")
		default:
			return response.ServerError(c, "Failed to delete payment method")
		}
	}
	return response.Success(c, "Payment method deleted", nil)
}
