package handlers

import (
	"payflow/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything SetupRoutes wires into the app.
type Handlers struct {
	Auth          *AuthHandler
	Registration  *RegistrationHandler
	PaymentMethod *PaymentMethodHandler
	PayIn         *PayInHandler
	Settings      *SettingsHandler
	AuthMW        *middleware.AuthMiddleware
}

// SetupRoutes registers all HTTP routes. Checkout endpoints use optional
// authentication so guests can pay; account management requires a token.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", HealthCheck)

	api := app.Group("/api")
	api.Post("/register", h.Auth.Register)
	api.Post("/login", h.Auth.Login)

	gateway := api.Group("/gateway")
	gateway.Get("/settings", h.Settings.ClientSettings)
	gateway.Post("/preregister-card", h.AuthMW.Optional, h.Registration.PreRegisterCard)

	// Checkout flow. The secure-mode endpoint is hit by a bank redirect, so
	// it carries no authentication.
	api.Post("/payment-methods", h.AuthMW.Optional, h.PaymentMethod.Commit)
	api.Post("/payments", h.AuthMW.Optional, h.PayIn.CreatePayment)
	api.Post("/payments/:id/payin", h.AuthMW.Optional, h.PayIn.Initiate)
	api.Get("/payments/:id/secure-mode", h.PayIn.CompleteSecureMode)
	api.Get("/orders/:id/return", h.PayIn.VerifyReturn)

	// Account management.
	authenticated := api.Group("/", h.AuthMW.Handler)
	authenticated.Post("/logout", h.Auth.Logout)
	authenticated.Get("/payment-methods", h.PaymentMethod.List)
	authenticated.Delete("/payment-methods/:id", h.PaymentMethod.Delete)
	authenticated.Post("/payments/:id/refund", h.PayIn.Refund)
}
