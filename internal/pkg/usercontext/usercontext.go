package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/janmeyer/memora/app/models"
)

const contextKey = "USER_CONTEXT"

// UserContext represents the authenticated caller for a request
type UserContext struct {
	User       *models.User
	IsLoggedIn bool
}

// Set stores the user context on the request
func Set(c *fiber.Ctx, user *models.User) {
	c.Locals(contextKey, UserContext{User: user, IsLoggedIn: user != nil})
}

// Get retrieves the user context from fiber context.
// Returns a default anonymous context if none is set.
func Get(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(contextKey); ctx != nil {
		if uc, ok := ctx.(UserContext); ok {
			return uc
		}
	}
	return UserContext{}
}

// CurrentUser returns the authenticated user, or nil when anonymous
func CurrentUser(c *fiber.Ctx) *models.User {
	return Get(c).User
}
