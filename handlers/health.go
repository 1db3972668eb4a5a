package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lexistream/api/database"
	"github.com/lexistream/api/utils/response"
)

// HandleCheckHealth reports service and database health
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Database unavailable", "DB_UNAVAILABLE")
	}

	return response.Success(c, fiber.Map{"status": "ok"})
}
