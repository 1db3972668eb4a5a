package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/database"
	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/response"
)

// ListRecordingsRequest represents the query parameters for listing recordings
type ListRecordingsRequest struct {
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
	UserID  int    `query:"user_id"`
	Search  string `query:"search"`
	Sort    string `query:"sort"`
	SortDir string `query:"sort_dir"`
}

var allowedRecordingSorts = map[string]bool{
	"created_at":       true,
	"words_per_minute": true,
	"duration_seconds": true,
}

// ListRecordings retrieves recordings across all users
// GET /admin/recordings
func ListRecordings(c *fiber.Ctx, store database.Storage) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	var req ListRecordingsRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	if !allowedRecordingSorts[req.Sort] {
		req.Sort = "created_at"
	}
	if req.SortDir != "asc" && req.SortDir != "desc" {
		req.SortDir = "desc"
	}

	query := db.Model(&model.Recording{})

	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(transcript) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count recordings")
	}

	var recordings []model.Recording
	offset := (req.Page - 1) * req.Limit
	orderBy := req.Sort + " " + req.SortDir

	if err := query.Preload("User").Offset(offset).Limit(req.Limit).Order(orderBy).Find(&recordings).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch recordings")
	}

	for i := range recordings {
		recordings[i].User.PasswordHash = ""
	}

	return response.Paginated(c, recordings, response.CalculatePagination(req.Page, req.Limit, total))
}

// DeleteRecording permanently removes any user's recording and its
// audio file
// DELETE /admin/recordings/:id
func DeleteRecording(c *fiber.Ctx, store database.Storage, recordings *services.RecordingService) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid recording ID")
	}

	var recording model.Recording
	if err := db.Unscoped().First(&recording, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Recording not found")
		}
		return response.InternalServerError(c, "Failed to fetch recording")
	}

	if err := recordings.HardDeleteRecording(c.UserContext(), recording.ID); err != nil {
		return response.InternalServerError(c, "Failed to delete recording")
	}

	return response.SuccessWithMessage(c, "Recording deleted", nil)
}
