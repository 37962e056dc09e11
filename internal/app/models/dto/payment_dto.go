package dto

import "time"

// PaymentResponse represents a bank payment record
type PaymentResponse struct {
	ID               string     `json:"id"`
	VS               string     `json:"vs"`
	Amount           string     `json:"amount"`
	Date             *time.Time `json:"date,omitempty"`
	Message          string     `json:"message"`
	SenderName       string     `json:"senderName"`
	SenderIBAN       string     `json:"senderIban"`
	MatchedStudentID *string    `json:"matchedStudentId,omitempty"`
	MatchStatus      string     `json:"matchStatus"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// AssignPaymentRequest manually pairs a payment with a student
type AssignPaymentRequest struct {
	StudentID string `json:"studentId" binding:"required,uuid"`
}

// AutoPairResponse summarizes a bulk auto-pairing run. Demoted counts
// payments whose previous resolution no longer holds and were written back
// to unmatched.
type AutoPairResponse struct {
	Matched   int `json:"matched"`
	Ambiguous int `json:"ambiguous"`
	Demoted   int `json:"demoted"`
	Unchanged int `json:"unchanged"`
}

// PaymentFilterRequest represents payment list filtering parameters
type PaymentFilterRequest struct {
	MatchStatus *string `form:"matchStatus,omitempty"`
	VS          *string `form:"vs,omitempty"`
	Page        int     `form:"page,default=1" binding:"min=1"`
	PageSize    int     `form:"pageSize,default=50" binding:"min=1,max=500"`
}
