package handlers

import (
	"payflow/internal/config"
	"payflow/internal/processor/mangopay"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	cfg    config.GatewayConfig
	client *mangopay.Client
}

func NewSettingsHandler(cfg config.GatewayConfig, client *mangopay.Client) *SettingsHandler {
	return &SettingsHandler{cfg: cfg, client: client}
}

// ClientSettings exposes the non-secret gateway settings the browser
// checkout needs to run the tokenization kit.
func (h *SettingsHandler) ClientSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"gateway_id":     h.cfg.GatewayID,
		"mode":           h.cfg.Mode,
		"client_id":      h.client.ClientID(),
		"base_url":       h.client.BaseURL(),
		"currency_code":  h.cfg.CurrencyCode,
		"card_type_hint": h.cfg.CardTypeHint,
	})
}
