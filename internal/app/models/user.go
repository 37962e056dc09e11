package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Email       string    `json:"email" db:"email" example:"user@example.com"`
	Password    string    `json:"-" db:"password"` // Hashed password (excluded from JSON)
	DisplayName string    `json:"displayName" db:"display_name" example:"Jana Nováková"`
	RoleType    RoleType  `json:"roleType" db:"role_type" example:"student"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.RoleType == RoleAdmin
}
