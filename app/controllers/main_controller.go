package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/janmeyer/memora/internal/pkg/database"
)

// HandleWelcome answers the root route
func HandleWelcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to the Memora API!",
	})
}

// HandleHealth reports service and database health
func HandleHealth(c *fiber.Ctx) error {
	dbStatus := "connected"
	if err := database.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
