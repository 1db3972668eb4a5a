package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/middleware"
	"github.com/lexistream/api/utils/response"
)

// DashboardHandler serves the user and teacher dashboards
type DashboardHandler struct {
	analytics *services.AnalyticsService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(analytics *services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

// UserDashboard returns the current user's home screen payload
func (h *DashboardHandler) UserDashboard(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	dashboard, err := h.analytics.GetUserDashboard(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, dashboard)
}

// TeacherDashboard returns platform learning activity. Teacher or admin only.
func (h *DashboardHandler) TeacherDashboard(c *fiber.Ctx) error {
	dashboard, err := h.analytics.GetTeacherDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, dashboard)
}
