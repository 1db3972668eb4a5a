package admin

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/database"
	"github.com/lexistream/api/model"
	"github.com/lexistream/api/services"
	"github.com/lexistream/api/utils/auth"
	"github.com/lexistream/api/utils/response"
)

// ListUsersRequest represents the query parameters for listing users
type ListUsersRequest struct {
	Page    int    `query:"page"`
	Limit   int    `query:"limit"`
	Role    string `query:"role"`
	Search  string `query:"search"`
	Sort    string `query:"sort"`
	SortDir string `query:"sort_dir"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// ResetPasswordRequest represents the request for admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=7"`
}

var allowedUserSorts = map[string]bool{
	"created_at": true,
	"username":   true,
	"email":      true,
	"role":       true,
}

func gormDB(c *fiber.Ctx, store database.Storage) (*gorm.DB, error) {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return nil, response.InternalServerError(c, "Database connection error")
	}
	return db, nil
}

// ListUsers retrieves all users with pagination and filters
// GET /admin/users
func ListUsers(c *fiber.Ctx, store database.Storage) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	var req ListUsersRequest
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	if !allowedUserSorts[req.Sort] {
		req.Sort = "created_at"
	}
	if req.SortDir != "asc" && req.SortDir != "desc" {
		req.SortDir = "desc"
	}

	query := db.Model(&model.User{})

	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	if req.Search != "" {
		searchTerm := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count users")
	}

	var users []model.User
	offset := (req.Page - 1) * req.Limit
	orderBy := req.Sort + " " + req.SortDir

	if err := query.Offset(offset).Limit(req.Limit).Order(orderBy).Find(&users).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch users")
	}

	return response.Paginated(c, users, response.CalculatePagination(req.Page, req.Limit, total))
}

// GetUser retrieves a single user with their goal and counts
// GET /admin/users/:id
func GetUser(c *fiber.Ctx, store database.Storage) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	var recordingCount, vocabularyCount int64
	db.Model(&model.Recording{}).Where("user_id = ?", user.ID).Count(&recordingCount)
	db.Model(&model.Vocabulary{}).Where("user_id = ?", user.ID).Count(&vocabularyCount)

	var goal model.Goal
	db.Where("user_id = ?", user.ID).First(&goal)

	return response.Success(c, fiber.Map{
		"user":             user,
		"recording_count":  recordingCount,
		"vocabulary_count": vocabularyCount,
		"goal":             goal,
	})
}

// UpdateUser edits a user's email, role or display name
// PUT /admin/users/:id
func UpdateUser(c *fiber.Ctx, store database.Storage) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return response.BadRequest(c, "Role must be user, teacher or admin")
		}
		// Demoting the last admin would lock everyone out of /admin
		if user.Role == model.RoleAdmin && req.Role != model.RoleAdmin {
			var adminCount int64
			db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&adminCount)
			if adminCount <= 1 {
				return response.Conflict(c, "Cannot demote the last admin")
			}
		}
		user.Role = req.Role
	}

	if req.Email != "" {
		var count int64
		db.Model(&model.User{}).Where("email = ? AND id != ?", req.Email, user.ID).Count(&count)
		if count > 0 {
			return response.Conflict(c, "Email already registered")
		}
		user.Email = req.Email
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}

	if err := db.Save(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update user")
	}

	return response.Success(c, user)
}

// ResetUserPassword sets a new password for a user and invalidates all
// their sessions
// POST /admin/users/:id/reset-password
func ResetUserPassword(c *fiber.Ctx, store database.Storage) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(req.NewPassword) < auth.MinPasswordLength {
		return response.BadRequest(c, "Password must be at least 7 characters long")
	}

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user.PasswordHash = hash
	user.TokenVersion++ // kick every outstanding session
	if err := db.Save(&user).Error; err != nil {
		return response.InternalServerError(c, "Failed to update password")
	}

	return response.SuccessWithMessage(c, "Password reset", nil)
}

// DeleteUser removes a non-admin user and all their data, including
// stored audio files. Admin accounts cannot be deleted.
// DELETE /admin/users/:id
func DeleteUser(c *fiber.Ctx, store database.Storage, recordings *services.RecordingService) error {
	db, errResp := gormDB(c, store)
	if errResp != nil {
		return errResp
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid user ID")
	}

	var user model.User
	if err := db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to fetch user")
	}

	if user.IsAdmin() {
		return response.Forbidden(c, "Admin accounts cannot be deleted")
	}

	// Remove recordings (and their audio files) first. This also takes
	// the reviews received on them with it.
	var userRecordings []model.Recording
	if err := db.Unscoped().Where("user_id = ?", user.ID).Find(&userRecordings).Error; err != nil {
		return response.InternalServerError(c, "Failed to list recordings")
	}
	for _, rec := range userRecordings {
		if err := recordings.HardDeleteRecording(c.UserContext(), rec.ID); err != nil {
			log.Printf("failed to delete recording %d while removing user %d: %v", rec.ID, user.ID, err)
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.Progress{},
			&model.Vocabulary{},
			&model.Goal{},
			&model.UserNotification{},
			&model.UserActivity{},
			&model.JWTTokenBlacklist{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(m).Error; err != nil {
				return err
			}
		}

		// Reviews this user wrote on other people's recordings
		if err := tx.Unscoped().Where("reviewer_id = ?", user.ID).Delete(&model.Review{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&user).Error
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to delete user")
	}

	return response.SuccessWithMessage(c, "User deleted", nil)
}
