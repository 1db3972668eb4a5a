package model

import (
	"time"

	"gorm.io/gorm"
)

// Role values for User.Role. Role is the single source of truth for
// authorization; admin-ness is derived, never stored separately.
const (
	RoleUser    = "user"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleTeacher || s == RoleAdmin
}

// User represents a registered account in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Username     string         `gorm:"uniqueIndex;not null;type:varchar(15)" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string         `gorm:"type:varchar(20);default:'user'" json:"role"`
	TokenVersion int            `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens

	// Profile fields
	DisplayName string `gorm:"type:varchar(120)" json:"display_name,omitempty"`
	Bio         string `gorm:"type:text" json:"bio,omitempty"`
	Location    string `gorm:"type:varchar(120)" json:"location,omitempty"`
	Website     string `gorm:"type:varchar(255)" json:"website,omitempty"`
	AvatarURL   string `gorm:"type:varchar(255)" json:"avatar_url,omitempty"`

	// Relationships
	Recordings     []Recording         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Progress       []Progress          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Vocabulary     []Vocabulary        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Goals          []Goal              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews        []Review            `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications  []UserNotification  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Activities     []UserActivity      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTeacher reports whether the user holds the teacher role.
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
