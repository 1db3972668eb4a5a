package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/response"
)

// Dashboard returns platform-wide statistics for the admin panel
// GET /admin/dashboard
func Dashboard(c *fiber.Ctx, analytics *services.AnalyticsService) error {
	stats, err := analytics.GetAdminDashboardStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard statistics")
	}
	return response.Success(c, stats)
}

// RefreshDashboard drops the cached statistics so the next request
// recomputes them
// POST /admin/dashboard/refresh
func RefreshDashboard(c *fiber.Ctx, analytics *services.AnalyticsService) error {
	analytics.InvalidateAdminStats(c.Context())

	stats, err := analytics.GetAdminDashboardStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute dashboard statistics")
	}
	return response.Success(c, stats)
}
