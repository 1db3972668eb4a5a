package auth

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lexistream/api/model"
)

// BlacklistService manages revoked JWT tokens
type BlacklistService struct {
	db *gorm.DB
}

// NewBlacklistService creates a new blacklist service
func NewBlacklistService(db *gorm.DB) *BlacklistService {
	return &BlacklistService{db: db}
}

// RevokeToken adds a token JTI to the blacklist
func (s *BlacklistService) RevokeToken(jti string, userID uint, expiresAt time.Time, reason string) error {
	entry := model.JWTTokenBlacklist{
		Token:     jti,
		UserID:    userID,
		Reason:    reason,
		ExpiresAt: expiresAt,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsTokenRevoked checks whether a token JTI has been revoked
func (s *BlacklistService) IsTokenRevoked(jti string) (bool, error) {
	var count int64
	err := s.db.Model(&model.JWTTokenBlacklist{}).
		Where("token = ? AND expires_at > ?", jti, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}

	return count > 0, nil
}

// RevokeAllUserTokens invalidates every token issued to a user by bumping
// their token version. Outstanding tokens fail the version check on the
// next request.
func (s *BlacklistService) RevokeAllUserTokens(userID uint) error {
	err := s.db.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}

	return nil
}

// CleanupExpiredTokens removes blacklist entries whose tokens have expired
func (s *BlacklistService) CleanupExpiredTokens() (int64, error) {
	result := s.db.Where("expires_at <= ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to cleanup expired tokens: %w", result.Error)
	}

	return result.RowsAffected, nil
}
