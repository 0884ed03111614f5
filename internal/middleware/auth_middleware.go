package middleware

import (
	"strings"

	"vivaham/internal/logger"
	"vivaham/internal/services"
	"vivaham/internal/sessions"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const userIDLocal = "user_id"

// AuthRequired admits requests carrying either a valid session cookie or an
// "Authorization: Bearer <token>" header, and stores the caller's id in
// the request locals.
func AuthRequired(sessionManager *sessions.Manager, authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if !(len(parts) == 2 && parts[0] == "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Authorization header format must be 'Bearer <token>'",
				})
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				logger.Log.WithError(err).Debug("bearer token rejected")
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid or expired token",
				})
			}
			c.Locals(userIDLocal, claims.UserID)
			return c.Next()
		}

		userID, ok, err := sessionManager.UserID(c)
		if err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{"path": c.Path()}).Error("failed to load session")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized. Please log in.",
			})
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// CurrentUserID returns the id stored by AuthRequired, or 0 outside it.
func CurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(userIDLocal).(uint)
	return id
}
