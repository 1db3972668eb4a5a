package model

import (
	"time"

	"gorm.io/gorm"
)

// Difficulty represents the reading level of a lesson
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d Difficulty) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Lesson represents a graded reading passage users practice against
type Lesson struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	Title      string         `gorm:"type:varchar(200);not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Difficulty Difficulty     `gorm:"type:varchar(20);not null;index" json:"difficulty"`
}

// TableName specifies the table name for Lesson
func (Lesson) TableName() string {
	return "lessons"
}
