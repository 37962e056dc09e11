package dto

import "time"

// CreateStudentRequest represents a manually created student record
type CreateStudentRequest struct {
	Name            string `json:"name" binding:"required"`
	Surname         string `json:"surname" binding:"required"`
	Mail            string `json:"mail" binding:"required,email"`
	TelephoneNumber string `json:"telephoneNumber"`
	School          string `json:"school"`
	Region          string `json:"region"`
	Note            string `json:"note"`
	IBAN            string `json:"iban"`
	VS              string `json:"vs"`
	Period          string `json:"period"`
	Amount          string `json:"amount"`
	TypeOfPayment   string `json:"typeOfPayment"`
}

// UpdateStudentRequest represents editable student fields. Pointer fields
// distinguish "leave unchanged" from "set to empty".
type UpdateStudentRequest struct {
	Name            *string `json:"name,omitempty"`
	Surname         *string `json:"surname,omitempty"`
	Mail            *string `json:"mail,omitempty" binding:"omitempty,email"`
	TelephoneNumber *string `json:"telephoneNumber,omitempty"`
	School          *string `json:"school,omitempty"`
	Region          *string `json:"region,omitempty"`
	Note            *string `json:"note,omitempty"`
	IBAN            *string `json:"iban,omitempty"`
	VS              *string `json:"vs,omitempty"`
	Period          *string `json:"period,omitempty"`
	Amount          *string `json:"amount,omitempty"`
	TypeOfPayment   *string `json:"typeOfPayment,omitempty"`
}

// UpdateStudentAmountRequest overrides a student's base amount
type UpdateStudentAmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// StudentResponse represents a student record
type StudentResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Surname         string     `json:"surname"`
	Mail            string     `json:"mail"`
	TelephoneNumber string     `json:"telephoneNumber"`
	School          string     `json:"school"`
	Region          string     `json:"region"`
	Note            string     `json:"note"`
	IBAN            string     `json:"iban"`
	VS              string     `json:"vs"`
	Period          string     `json:"period"`
	Amount          string     `json:"amount"`
	TypeOfPayment   string     `json:"typeOfPayment"`
	ImportedAt      *time.Time `json:"importedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// StudentInstallmentResponse is one row of the reconciliation report:
// a student with the expected, paid and derived status for the selected
// installment index.
type StudentInstallmentResponse struct {
	Student     StudentResponse `json:"student"`
	Installment int             `json:"installment"`
	Expected    string          `json:"expected"`
	Paid        string          `json:"paid"`
	Difference  string          `json:"difference"`
	Status      string          `json:"status"`
}

// StudentProfileResponse is the self-service view for a signed-in student:
// their record, matched payments and the next payment deadline.
type StudentProfileResponse struct {
	Student      StudentResponse   `json:"student"`
	Payments     []PaymentResponse `json:"payments"`
	NextDeadline *time.Time        `json:"nextDeadline,omitempty"`
}
