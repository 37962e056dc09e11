package models

import "time"

// Payment defines the payment model based on the 'payments' table.
// Payments arrive from bank-statement imports; the match annotation is the
// only mutable part and is maintained by the reconciliation engine.
type Payment struct {
	ID               string      `json:"id" db:"id"`
	VS               string      `json:"vs" db:"vs"` // Variable symbol as printed on the bank statement
	Amount           Cents       `json:"amountCents" db:"amount_cents"`
	Date             *time.Time  `json:"date,omitempty" db:"date"` // Bank transaction date; nil when the import row had none
	Message          string      `json:"message" db:"message"`
	SenderName       string      `json:"senderName" db:"sender_name"`
	SenderIBAN       string      `json:"senderIban" db:"sender_iban"`
	MatchedStudentID *string     `json:"matchedStudentId" db:"matched_student_id"` // Set only when MatchStatus is matched
	MatchStatus      MatchStatus `json:"matchStatus" db:"match_status"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}

// MatchUpdate is the reconciliation annotation written back to a payment.
type MatchUpdate struct {
	PaymentID        string
	MatchedStudentID *string
	MatchStatus      MatchStatus
}
