package recording

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/middleware"
	"github.com/lexistream/api/utils/response"
)

// maxAudioBytes caps a recording upload at 25 MB
const maxAudioBytes = 25 << 20

// RecordingHandler handles recording submission and listing
type RecordingHandler struct {
	db        *gorm.DB
	service   *services.RecordingService
	analytics *services.AnalyticsService
}

// NewRecordingHandler creates a new recording handler
func NewRecordingHandler(db *gorm.DB, service *services.RecordingService, analytics *services.AnalyticsService) *RecordingHandler {
	return &RecordingHandler{db: db, service: service, analytics: analytics}
}

// Submit accepts a multipart audio upload plus its duration and runs the
// full submission workflow
func (h *RecordingHandler) Submit(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return response.BadRequest(c, "Audio file is required")
	}

	if fileHeader.Size > maxAudioBytes {
		return response.BadRequest(c, "Audio file too large")
	}

	duration, err := strconv.ParseFloat(c.FormValue("duration_seconds"), 64)
	if err != nil || duration < 0 {
		return response.BadRequest(c, "duration_seconds must be a non-negative number")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read audio file")
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return response.InternalServerError(c, "Failed to read audio file")
	}

	result, err := h.service.SubmitRecording(c.Context(), services.SubmitRecordingRequest{
		UserID:          userID,
		Filename:        fileHeader.Filename,
		Audio:           audio,
		DurationSeconds: duration,
	})
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedAudioFormat) {
			return response.BadRequest(c, "Audio format must be wav, mp3, m4a, flac or webm")
		}
		return response.InternalServerError(c, "Failed to save recording")
	}

	h.analytics.LogActivity(userID, model.ActivityTypeRecordingUpload, "recording", result.Recording.ID, c.IP())

	return response.Created(c, result)
}

// List returns the current user's recordings, newest first
func (h *RecordingHandler) List(c *fiber.Ctx) error {
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

	recordings, total, err := h.service.ListRecordings(c.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load recordings")
	}

	return response.Paginated(c, recordings, response.CalculatePagination(page, limit, total))
}

// Get returns one recording with its reviews. Any authenticated user can
// view a recording so peers can leave feedback.
func (h *RecordingHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid recording ID")
	}

	recording, err := h.service.GetRecording(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrRecordingNotFound) {
			return response.NotFound(c, "Recording not found")
		}
		return response.InternalServerError(c, "Failed to load recording")
	}

	return response.Success(c, recording)
}

// Delete soft-deletes the current user's own recording
func (h *RecordingHandler) Delete(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid recording ID")
	}

	if err := h.service.DeleteRecording(c.Context(), userID, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrRecordingNotFound):
			return response.NotFound(c, "Recording not found")
		case errors.Is(err, services.ErrNotRecordingOwner):
			return response.Forbidden(c, "You can only delete your own recordings")
		default:
			return response.InternalServerError(c, "Failed to delete recording")
		}
	}

	return response.SuccessWithMessage(c, "Recording deleted", nil)
}

// Progress returns the user's WPM history for the progress chart
func (h *RecordingHandler) Progress(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var entries []model.Progress
	err := h.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to load progress")
	}

	return response.Success(c, entries)
}
