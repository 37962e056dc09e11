package dto

// ImportStudentItem is one element of an imported student JSON array.
// All fields are free text as exported by the upstream spreadsheet; only
// mail, name and surname are required for the record to be accepted.
type ImportStudentItem struct {
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Region          string `json:"region"`
	School          string `json:"school"`
	Mail            string `json:"mail"`
	TelephoneNumber string `json:"telephoneNumber"`
	TypeOfPayment   string `json:"typeOfPayment"`
	Period          string `json:"period"`
	Amount          string `json:"amount"`
	IBAN            string `json:"iban"`
	Note            string `json:"note"`
	VS              string `json:"vs"`
}

// ImportPaymentItem is one element of an imported bank statement JSON array.
// No field is required; malformed amounts or dates are tolerated and default
// to zero values.
type ImportPaymentItem struct {
	Date       string `json:"date"`
	Amount     string `json:"amount"`
	SenderIBAN string `json:"senderIban"`
	SenderName string `json:"senderName"`
	VS         string `json:"vs"`
	Message    string `json:"message"`
}

// ImportSummary is the aggregate result of an import run
type ImportSummary struct {
	SuccessCount int `json:"successCount"`
	ErrorCount   int `json:"errorCount"`
}
