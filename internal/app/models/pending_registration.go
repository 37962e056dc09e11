package models

import "time"

// PendingRegistration is an access request from an email address that is
// not on the whitelist. Requests sit in the queue until an admin approves
// them into allowed_emails or rejects them.
type PendingRegistration struct {
	ID          int64     `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Message     string    `json:"message" db:"message"`
	RequestedAt time.Time `json:"requestedAt" db:"requested_at"`
}
