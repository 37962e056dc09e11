package dto

import "time"

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin team student"`
}

// UserFilterRequest represents user list filtering parameters
type UserFilterRequest struct {
	Email    *string `form:"email,omitempty"`
	Role     *string `form:"role,omitempty"`
	Page     int     `form:"page,default=1" binding:"min=1"`
	PageSize int     `form:"pageSize,default=50" binding:"min=1,max=500"`
}

// AddAllowedEmailRequest adds an email to the registration whitelist
type AddAllowedEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AllowedEmailResponse represents one whitelist entry
type AllowedEmailResponse struct {
	ID      int64     `json:"id"`
	Email   string    `json:"email"`
	AddedAt time.Time `json:"addedAt"`
}

// AccessRequestSubmission asks for registration access for an email that is
// not on the whitelist
type AccessRequestSubmission struct {
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"max=2000"`
}

// PendingRegistrationResponse represents one queued access request
type PendingRegistrationResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	RequestedAt time.Time `json:"requestedAt"`
}
