package middleware

import (
	"github.com/gofiber/fiber/v3"

	"invoicing-service/internal/utils"
)

// UserIDKey is the locals key the gateway-asserted caller id is stored under.
const UserIDKey = "user_id"

// RequireUser extracts the caller identity the gateway asserts via X-User-Id.
// Mutations without one are rejected; reads pass through with an empty id.
func RequireUser() fiber.Handler {
	return func(c fiber.Ctx) error {
		userID := c.Get("X-User-Id")
		c.Locals(UserIDKey, userID)

		if userID == "" && c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
			return c.Status(fiber.StatusUnauthorized).JSON(
				utils.CreateErrorResponse("UNAUTHORIZED", "X-User-Id header is required"))
		}

		return c.Next()
	}
}

// CallerID reads the caller identity stored by RequireUser.
func CallerID(c fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}
