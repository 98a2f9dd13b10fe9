package handlers

import (
	"errors"
	"log"

	"payflow/internal/middleware"
	"payflow/internal/models"
	"payflow/internal/services/registration"
	"payflow/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RegistrationHandler struct {
	registrationService registration.Service
}

func NewRegistrationHandler(registrationService registration.Service) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// PreRegisterCard opens a card registration session with the processor and
// returns the tokenization parameters the browser kit needs.
func (h *RegistrationHandler) PreRegisterCard(c *fiber.Ctx) error {
	var input struct {
		Billing      models.BillingInformation `json:"billing"`
		CurrencyCode string                    `json:"currency_code"`
		CardType     string                    `json:"card_type"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.registrationService.PreRegisterCard(c.Context(), registration.Request{
		Billing:      input.Billing,
		CurrencyCode: input.CurrencyCode,
		CardType:     input.CardType,
		AccountID:    middleware.AccountID(c),
	})
	if err != nil {
		var validationErr *registration.ValidationError
		if errors.As(err, &validationErr) {
			return response.Critical(c, fiber.StatusBadRequest, validationErr.Error())
		}
		log.Printf("card pre-registration failed: %v", err)
		return response.Critical(c, fiber.StatusInternalServerError, "card registration is unavailable")
	}

	return c.JSON(session)
}
