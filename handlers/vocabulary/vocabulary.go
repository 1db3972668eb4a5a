package vocabulary

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/middleware"
	"github.com/lexistream/api/utils/response"
	"github.com/lexistream/api/utils/validation"
)

// VocabularyHandler handles the personal vocabulary bank
type VocabularyHandler struct {
	db        *gorm.DB
	analytics *services.AnalyticsService
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(db *gorm.DB, analytics *services.AnalyticsService) *VocabularyHandler {
	return &VocabularyHandler{db: db, analytics: analytics}
}

// VocabularyRequest represents an add/update payload
type VocabularyRequest struct {
	Word       string `json:"word" validate:"required"`
	Phonetic   string `json:"phonetic,omitempty"`
	Definition string `json:"definition,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// List returns the user's vocabulary bank, newest first, with optional
// word search
func (h *VocabularyHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	query := h.db.Where("user_id = ?", userID)

	if search := strings.TrimSpace(c.Query("q")); search != "" {
		query = query.Where("word LIKE ?", "%"+search+"%")
	}

	var entries []model.Vocabulary
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return response.InternalServerError(c, "Failed to load vocabulary")
	}

	return response.Success(c, entries)
}

// Create adds a word to the user's vocabulary bank
func (h *VocabularyHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req VocabularyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Word = validation.SanitizeString(req.Word)
	if req.Word == "" {
		return response.BadRequest(c, "Word is required")
	}

	entry := model.Vocabulary{
		UserID:     userID,
		Word:       req.Word,
		Phonetic:   strings.TrimSpace(req.Phonetic),
		Definition: strings.TrimSpace(req.Definition),
		Notes:      strings.TrimSpace(req.Notes),
	}

	if err := h.db.Create(&entry).Error; err != nil {
		return response.InternalServerError(c, "Failed to save word")
	}

	h.analytics.LogActivity(userID, model.ActivityTypeVocabularyAdd, "vocabulary", entry.ID, c.IP())

	return response.Created(c, entry)
}

// Update edits one of the user's vocabulary entries
func (h *VocabularyHandler) Update(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid vocabulary ID")
	}

	var entry model.Vocabulary
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Vocabulary entry not found")
		}
		return response.InternalServerError(c, "Failed to load entry")
	}

	var req VocabularyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Word != "" {
		entry.Word = validation.SanitizeString(req.Word)
	}
	if req.Phonetic != "" {
		entry.Phonetic = strings.TrimSpace(req.Phonetic)
	}
	if req.Definition != "" {
		entry.Definition = strings.TrimSpace(req.Definition)
	}
	if req.Notes != "" {
		entry.Notes = strings.TrimSpace(req.Notes)
	}

	if err := h.db.Save(&entry).Error; err != nil {
		return response.InternalServerError(c, "Failed to update entry")
	}

	return response.Success(c, entry)
}

// Delete removes one of the user's vocabulary entries
func (h *VocabularyHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid vocabulary ID")
	}

	result := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Vocabulary{})
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete entry")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Vocabulary entry not found")
	}

	return response.SuccessWithMessage(c, "Word removed", nil)
}
