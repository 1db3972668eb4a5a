package auth

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services/storage"
	"github.com/lexistream/api/utils/middleware"
	"github.com/lexistream/api/utils/response"
	"github.com/lexistream/api/utils/validation"
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
	Website     *string `json:"website,omitempty"`
}

// GetProfile retrieves the current user's profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	return response.Success(c, toUserResponse(user))
}

// UpdateProfile updates the current user's profile fields. Absent fields
// are left alone; empty strings clear them.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.DisplayName != nil {
		user.DisplayName = validation.SanitizeString(*req.DisplayName)
	}
	if req.Bio != nil {
		user.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Location != nil {
		user.Location = validation.SanitizeString(*req.Location)
	}
	if req.Website != nil {
		user.Website = strings.TrimSpace(*req.Website)
	}

	if err := h.db.Save(user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, toUserResponse(user))
}

// ProfileHandler extends AuthHandler with avatar uploads
type ProfileHandler struct {
	*AuthHandler
	store storage.Store
}

// NewProfileHandler creates a profile handler with avatar storage
func NewProfileHandler(authHandler *AuthHandler, store storage.Store) *ProfileHandler {
	return &ProfileHandler{AuthHandler: authHandler, store: store}
}

// UploadAvatar replaces the current user's avatar image
func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return response.BadRequest(c, "Avatar file is required")
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if ext != "png" && ext != "jpg" && ext != "jpeg" {
		return response.BadRequest(c, "Avatar must be a PNG or JPEG image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read avatar file")
	}
	defer file.Close()

	key := storage.AvatarKey(user.ID, fileHeader.Filename)
	url, err := h.store.Save(c.Context(), key, file, storage.ContentTypeFor(ext))
	if err != nil {
		return response.InternalServerError(c, "Failed to store avatar")
	}

	user.AvatarURL = url
	if err := h.db.Model(&model.User{}).Where("id = ?", user.ID).Update("avatar_url", url).Error; err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, fiber.Map{"avatar_url": url})
}
