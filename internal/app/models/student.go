package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID              string        `json:"id" db:"id" example:"8f14e45f-ceea-4e8b-9d2c-1c1b2a3d4e5f"` // Opaque record identifier
	Name            string        `json:"name" db:"name" example:"Jana"`
	Surname         string        `json:"surname" db:"surname" example:"Nováková"`
	Mail            string        `json:"mail" db:"mail" example:"jana.novakova@example.com"` // Contact email, also the sign-in link
	TelephoneNumber string        `json:"telephoneNumber" db:"telephone_number" example:"+421950123456"`
	School          string        `json:"school" db:"school" example:"Gymnázium Grösslingová"`
	Region          string        `json:"region" db:"region" example:"Bratislavský kraj"` // Free text; normalized only for statistics
	Note            string        `json:"note" db:"note"`
	IBAN            string        `json:"iban" db:"iban" example:"SK1234567890"`
	VS              string        `json:"vs" db:"vs" example:"0123456"` // Variable symbol; string, leading zeros significant
	Period          BillingPeriod `json:"period" db:"period" example:"year"`
	PeriodRaw       string        `json:"periodRaw" db:"period_raw" example:"Year"` // Label as imported, kept for display
	Amount          Cents         `json:"amountCents" db:"amount_cents" example:"36000"` // Base amount per billing cycle
	TypeOfPayment   string        `json:"typeOfPayment" db:"type_of_payment" example:"Classis"`
	ImportedAt      *time.Time    `json:"importedAt,omitempty" db:"imported_at"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}

// FullName is the display name used in listings, surname first.
func (s *Student) FullName() string {
	return s.Surname + " " + s.Name
}
