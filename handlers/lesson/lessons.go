package lesson

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/middleware"
	"github.com/lexistream/api/utils/response"
)

// LessonHandler handles lesson catalog requests
type LessonHandler struct {
	db        *gorm.DB
	analytics *services.AnalyticsService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(db *gorm.DB, analytics *services.AnalyticsService) *LessonHandler {
	return &LessonHandler{db: db, analytics: analytics}
}

// LessonRequest represents a lesson create/update payload
type LessonRequest struct {
	Title      string `json:"title" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
}

// List returns the lesson catalog, optionally filtered by difficulty,
// ordered by difficulty then title.
func (h *LessonHandler) List(c *fiber.Ctx) error {
	query := h.db.Model(&model.Lesson{})

	if difficulty := c.Query("difficulty"); difficulty != "" {
		d := model.Difficulty(difficulty)
		if !model.ValidDifficulty(d) {
			return response.BadRequest(c, "Difficulty must be Easy, Medium or Hard")
		}
		query = query.Where("difficulty = ?", d)
	}

	var lessons []model.Lesson
	if err := query.Order("difficulty, title").Find(&lessons).Error; err != nil {
		return response.InternalServerError(c, "Failed to load lessons")
	}

	return response.Success(c, lessons)
}

// Get returns a single lesson and records the view
func (h *LessonHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid lesson ID")
	}

	var lesson model.Lesson
	if err := h.db.First(&lesson, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to load lesson")
	}

	if userID, ok := middleware.GetUserID(c); ok {
		h.analytics.LogActivity(userID, model.ActivityTypeLessonView, "lesson", lesson.ID, c.IP())
	}

	return response.Success(c, lesson)
}

// Create adds a lesson to the catalog. Teacher or admin only.
func (h *LessonHandler) Create(c *fiber.Ctx) error {
	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)

	if req.Title == "" || req.Content == "" {
		return response.BadRequest(c, "Title and content are required")
	}

	difficulty := model.Difficulty(req.Difficulty)
	if !model.ValidDifficulty(difficulty) {
		return response.BadRequest(c, "Difficulty must be Easy, Medium or Hard")
	}

	lesson := model.Lesson{
		Title:      req.Title,
		Content:    req.Content,
		Difficulty: difficulty,
	}

	if err := h.db.Create(&lesson).Error; err != nil {
		return response.InternalServerError(c, "Failed to create lesson")
	}

	return response.Created(c, lesson)
}

// Update edits an existing lesson. Teacher or admin only.
func (h *LessonHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid lesson ID")
	}

	var lesson model.Lesson
	if err := h.db.First(&lesson, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Lesson not found")
		}
		return response.InternalServerError(c, "Failed to load lesson")
	}

	var req LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title != "" {
		lesson.Title = strings.TrimSpace(req.Title)
	}
	if req.Content != "" {
		lesson.Content = strings.TrimSpace(req.Content)
	}
	if req.Difficulty != "" {
		difficulty := model.Difficulty(req.Difficulty)
		if !model.ValidDifficulty(difficulty) {
			return response.BadRequest(c, "Difficulty must be Easy, Medium or Hard")
		}
		lesson.Difficulty = difficulty
	}

	if err := h.db.Save(&lesson).Error; err != nil {
		return response.InternalServerError(c, "Failed to update lesson")
	}

	return response.Success(c, lesson)
}

// Delete removes a lesson from the catalog. Teacher or admin only.
func (h *LessonHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid lesson ID")
	}

	result := h.db.Delete(&model.Lesson{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete lesson")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Lesson not found")
	}

	return response.SuccessWithMessage(c, "Lesson deleted", nil)
}
