package notification

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/middleware"
	"github.com/lexistream/api/utils/response"
)

// NotificationHandler handles user notification requests
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List returns the current user's notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := h.service.ListNotifications(c.Context(), services.ListNotificationsOptions{
		UserID:     userID,
		UnreadOnly: c.QueryBool("unread_only", false),
		Category:   c.Query("category"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to load notifications")
	}

	return response.Paginated(c, notifications, response.CalculatePagination(page, limit, total))
}

// UnreadCount returns the badge count for the current user
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	count, err := h.service.UnreadCount(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to count notifications")
	}

	return response.Success(c, fiber.Map{"unread": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.service.MarkRead(c.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to update notification")
	}

	return response.SuccessWithMessage(c, "Notification marked read", nil)
}

// MarkAllRead marks every notification for the current user as read
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	updated, err := h.service.MarkAllRead(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to update notifications")
	}

	return response.Success(c, fiber.Map{"updated": updated})
}
