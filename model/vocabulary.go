package model

import (
	"time"
)

// Vocabulary is a word saved to a user's personal vocabulary bank
type Vocabulary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Word       string    `gorm:"type:varchar(100);not null" json:"word"`
	Phonetic   string    `gorm:"type:varchar(200)" json:"phonetic,omitempty"`
	Definition string    `gorm:"type:text" json:"definition,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Vocabulary
func (Vocabulary) TableName() string {
	return "vocabulary_entries"
}
