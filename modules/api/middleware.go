package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderUserID carries the already-authenticated caller identity.
	HeaderUserID = "X-User-Id"

	// UserContextKey is the key used to store the user ID in the Fiber context.
	UserContextKey = "userID"
)

// RequireUserID creates a middleware that enforces a non-empty X-User-Id
// header. The identity is trusted as-is; authentication happens upstream.
func RequireUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(HeaderUserID))
		if userID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "validation_error",
				Message: "X-User-Id header is required",
			})
		}

		c.Locals(UserContextKey, userID)
		return c.Next()
	}
}

// requestUserID returns the user ID stored by RequireUserID.
func requestUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserContextKey).(string)
	return userID
}
