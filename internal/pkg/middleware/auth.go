package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/janmeyer/memora/app/repository"
	"github.com/janmeyer/memora/internal/pkg/session"
	"github.com/janmeyer/memora/internal/pkg/usercontext"
)

// RequireSession guards API routes with a bearer session token. Every
// failure cause (missing header, malformed or expired token, unknown user)
// yields the same 401 body so nothing leaks about which check failed.
func RequireSession(issuer *session.Issuer, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return unauthorized(c)
		}

		userID, err := issuer.Validate(token)
		if err != nil {
			return unauthorized(c)
		}

		user, err := users.GetByID(userID)
		if err != nil {
			return unauthorized(c)
		}

		usercontext.Set(c, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "unauthorized",
		"message": "login required",
	})
}
