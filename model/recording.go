package model

import (
	"time"

	"gorm.io/gorm"
)

// Recording represents one submitted practice recording with its
// transcript and derived words-per-minute score. WordsPerMinute is
// always computed server-side, never taken from the client.
type Recording struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	StorageKey      string         `gorm:"not null" json:"storage_key"` // key of the audio object in file storage
	FileURL         string         `gorm:"type:text" json:"file_url,omitempty"`
	Transcript      string         `gorm:"type:text" json:"transcript"`
	WordsPerMinute  float64        `gorm:"not null;default:0" json:"words_per_minute"`
	DurationSeconds float64        `gorm:"not null;default:0" json:"duration_seconds"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Reviews []Review `gorm:"foreignKey:RecordingID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

// TableName specifies the table name for Recording
func (Recording) TableName() string {
	return "recordings"
}
