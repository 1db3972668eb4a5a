package model

import (
	"time"
)

// Review is peer feedback left on a recording. Reviews are write-once:
// there is no update path.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	RecordingID  uint      `gorm:"not null;index" json:"recording_id"`
	ReviewerID   uint      `gorm:"not null;index" json:"reviewer_id"`
	FeedbackText string    `gorm:"type:text;not null" json:"feedback_text"`

	// Relationships
	Recording Recording `gorm:"foreignKey:RecordingID;constraint:OnDelete:CASCADE" json:"-"`
	Reviewer  User      `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"reviewer,omitempty"`
}

// TableName specifies the table name for Review
func (Review) TableName() string {
	return "reviews"
}
