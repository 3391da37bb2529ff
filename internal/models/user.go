package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values. Role is assigned server-side; no endpoint accepts it.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered citizen or an administrator.
// Email is stored lowercased so lookups are case-insensitive.
type User struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Firstname   string    `gorm:"size:100;not null" json:"firstname"`
	Lastname    string    `gorm:"size:100;not null" json:"lastname"`
	Othernames  string    `gorm:"size:100" json:"othernames,omitempty"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PhoneNumber string    `gorm:"size:30" json:"phoneNumber"`
	Username    string    `gorm:"size:100;index" json:"username"`
	Password    string    `gorm:"not null" json:"-"`
	Role        string    `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
