package goal

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/utils/middleware"
	"github.com/lexistream/api/utils/response"
)

// GoalHandler handles the daily practice goal and streak
type GoalHandler struct {
	db *gorm.DB
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{db: db}
}

// UpdateGoalRequest represents a goal update payload
type UpdateGoalRequest struct {
	DailyMinutes int `json:"daily_minutes" validate:"required,min=1,max=480"`
}

// Get returns the user's goal, creating it with defaults on first access
func (h *GoalHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	goal, err := h.loadOrCreate(userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load goal")
	}

	return response.Success(c, goal)
}

// Update changes the daily minutes target. Streak state is untouched.
func (h *GoalHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.DailyMinutes < 1 || req.DailyMinutes > 480 {
		return response.BadRequest(c, "daily_minutes must be between 1 and 480")
	}

	goal, err := h.loadOrCreate(userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load goal")
	}

	goal.DailyMinutes = req.DailyMinutes
	if err := h.db.Save(goal).Error; err != nil {
		return response.InternalServerError(c, "Failed to update goal")
	}

	return response.Success(c, goal)
}

func (h *GoalHandler) loadOrCreate(userID uint) (*model.Goal, error) {
	var goal model.Goal
	err := h.db.Where("user_id = ?", userID).First(&goal).Error
	if err == gorm.ErrRecordNotFound {
		goal = model.Goal{
			UserID:       userID,
			DailyMinutes: model.DefaultDailyMinutes,
		}
		if err := h.db.Create(&goal).Error; err != nil {
			return nil, err
		}
		return &goal, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
