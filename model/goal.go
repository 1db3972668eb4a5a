package model

import (
	"time"
)

// DefaultDailyMinutes is the practice target assigned to a goal created lazily.
const DefaultDailyMinutes = 15

// Goal holds a user's daily practice target and streak state. A user
// has one goal row in practice; lookups use first-match semantics and
// the row is created lazily on first use.
type Goal struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	DailyMinutes  int        `gorm:"not null;default:15" json:"daily_minutes"`
	CurrentStreak int        `gorm:"not null;default:0" json:"current_streak"`
	// Calendar date (UTC) of the most recent recording submission; nil
	// until the first submission.
	LastActivityDate *time.Time `gorm:"type:date" json:"last_activity_date,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Goal
func (Goal) TableName() string {
	return "goals"
}
