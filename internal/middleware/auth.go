// Package middleware provides HTTP middleware for the fiber application.
package middleware

import (
	"log"
	"strings"

	"payflow/internal/models"
	"payflow/internal/services/auth"
	"payflow/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT bearer tokens and adds the user claims to the
// request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Handler rejects requests without a valid, current bearer token.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	claims, err := m.parse(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// Optional resolves claims when a bearer token is present but lets anonymous
// requests through. Checkout works for guests; a valid token only attaches
// the card to the account.
func (m *AuthMiddleware) Optional(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}

	claims, err := m.parse(c)
	if err != nil {
		log.Printf("ignoring invalid bearer token: %v", err)
		return c.Next()
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

func (m *AuthMiddleware) parse(c *fiber.Ctx) (*models.UserClaims, error) {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		log.Printf("token validation error: %v", err)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	currentVersion, err := m.authService.GetUserTokenVersion(claims.UserID)
	if err != nil {
		log.Printf("unable to load token version for user %d: %v", claims.UserID, err)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}
	if claims.TokenVersion != currentVersion {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "session expired")
	}

	return claims, nil
}

// AccountID returns the authenticated account id, or 0 for anonymous
// requests.
func AccountID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
