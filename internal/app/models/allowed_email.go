package models

import "time"

// AllowedEmail is a whitelist entry permitting an email address to register.
// Case-insensitive uniqueness is checked by the repository before insert,
// with a functional unique index on LOWER(email) settling concurrent adds.
type AllowedEmail struct {
	ID      int64     `json:"id" db:"id"`
	Email   string    `json:"email" db:"email"`
	AddedAt time.Time `json:"addedAt" db:"added_at"`
}
