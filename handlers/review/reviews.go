package review

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/middleware"
	"github.com/lexistream/api/utils/response"
)

// ReviewHandler handles peer feedback on recordings
type ReviewHandler struct {
	db            *gorm.DB
	notifications *services.NotificationService
	analytics     *services.AnalyticsService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB, notifications *services.NotificationService, analytics *services.AnalyticsService) *ReviewHandler {
	return &ReviewHandler{db: db, notifications: notifications, analytics: analytics}
}

// CreateReviewRequest represents a review submission
type CreateReviewRequest struct {
	RecordingID  uint   `json:"recording_id" validate:"required"`
	FeedbackText string `json:"feedback_text" validate:"required"`
}

// Create leaves feedback on a recording and notifies its owner
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.FeedbackText = strings.TrimSpace(req.FeedbackText)
	if req.RecordingID == 0 || req.FeedbackText == "" {
		return response.BadRequest(c, "recording_id and feedback_text are required")
	}

	var recording model.Recording
	if err := h.db.First(&recording, req.RecordingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Recording not found")
		}
		return response.InternalServerError(c, "Failed to load recording")
	}

	review := model.Review{
		RecordingID:  recording.ID,
		ReviewerID:   user.ID,
		FeedbackText: req.FeedbackText,
	}

	if err := h.db.Create(&review).Error; err != nil {
		return response.InternalServerError(c, "Failed to save review")
	}

	reviewerName := user.DisplayName
	if reviewerName == "" {
		reviewerName = user.Username
	}
	h.notifications.NotifyReviewReceived(c.Context(), &review, reviewerName, recording.UserID)
	h.analytics.LogActivity(user.ID, model.ActivityTypeReviewGiven, "review", review.ID, c.IP())

	return response.Created(c, review)
}

// Feed returns recent recordings by other users that the caller can
// review, newest first
func (h *ReviewHandler) Feed(c *fiber.Ctx) error {
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

	query := h.db.Model(&model.Recording{}).Where("user_id != ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count recordings")
	}

	var recordings []model.Recording
	err := query.Preload("User").
		Preload("Reviews").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recordings).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load recordings")
	}

	for i := range recordings {
		recordings[i].User.PasswordHash = ""
	}

	return response.Paginated(c, recordings, response.CalculatePagination(page, limit, total))
}

// ListForRecording returns reviews on one recording, oldest first
func (h *ReviewHandler) ListForRecording(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid recording ID")
	}

	var reviews []model.Review
	err = h.db.Where("recording_id = ?", id).
		Preload("Reviewer").
		Order("created_at ASC").
		Find(&reviews).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load reviews")
	}

	return response.Success(c, reviews)
}

// ListGiven returns reviews the current user has written
func (h *ReviewHandler) ListGiven(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var reviews []model.Review
	err := h.db.Where("reviewer_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load reviews")
	}

	return response.Success(c, reviews)
}
