package model

import (
	"time"
)

// Progress is the immutable per-submission WPM snapshot used for the
// progress chart. Created in the same transaction as its Recording and
// never updated afterward.
type Progress struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	RecordingID    *uint     `gorm:"index" json:"recording_id,omitempty"`
	WordsPerMinute float64   `gorm:"not null" json:"words_per_minute"`

	// Relationships
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recording *Recording `gorm:"foreignKey:RecordingID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for Progress
func (Progress) TableName() string {
	return "progress_entries"
}
