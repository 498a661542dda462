package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// IdentityHeader carries the opaque user id asserted by the identity
// provider at the edge. The core never issues or verifies credentials;
// it trusts the gateway that terminates authentication.
const IdentityHeader = "X-User-ID"

// IdentityRequired extracts the caller's external user id from the identity
// header and stores it in Locals("userID") and the request context. Requests
// without an id are rejected before reaching any handler.
func IdentityRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(IdentityHeader))
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing user identity",
			})
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		return c.Next()
	}
}

// OptionalIdentity extracts the identity header when present but lets
// anonymous requests through. Read-only browse endpoints use this.
func OptionalIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID := strings.TrimSpace(c.Get(IdentityHeader)); userID != "" {
			c.Locals("userID", userID)
			c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		}
		return c.Next()
	}
}
