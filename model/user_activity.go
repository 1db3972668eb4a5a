package model

import (
	"time"
)

// ActivityType represents the type of user activity
type ActivityType string

const (
	ActivityTypeLogin           ActivityType = "login"
	ActivityTypeLogout          ActivityType = "logout"
	ActivityTypeRecordingUpload ActivityType = "recording_upload"
	ActivityTypeLessonView      ActivityType = "lesson_view"
	ActivityTypeReviewGiven     ActivityType = "review_given"
	ActivityTypeVocabularyAdd   ActivityType = "vocabulary_add"
)

// UserActivity tracks user actions for the admin/teacher analytics views
type UserActivity struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"not null;index:idx_user_activity" json:"user_id"`
	ActivityType ActivityType `gorm:"type:varchar(50);not null;index:idx_activity_type" json:"activity_type"`
	ResourceType string       `gorm:"type:varchar(50)" json:"resource_type"` // e.g. "recording", "lesson"
	ResourceID   uint         `json:"resource_id"`
	IPAddress    string       `gorm:"type:varchar(45)" json:"ip_address"`
	CreatedAt    time.Time    `gorm:"index:idx_activity_created_at" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for UserActivity
func (UserActivity) TableName() string {
	return "user_activities"
}
