package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/pkg/jwt"
)

const userIDKey = "userID"

// Auth is a thin adapter around jwt.Manager.Authenticate: it extracts the
// bearer token, verifies it and exposes the subject's user id to downstream
// handlers. The token is read from the "token" header, with an
// "Authorization: Bearer" fallback.
func Auth(tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get("token")
		if tokenString == "" {
			if header := c.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				tokenString = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(models.ErrorResponse("Not Authorized. Login Again"))
		}

		userID, err := tokens.Authenticate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(models.ErrorResponse("Token is not valid"))
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(userIDKey).(uint)
	return userID, ok
}
