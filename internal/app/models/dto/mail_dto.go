package dto

import (
	"encoding/json"
	"fmt"
)

// StringOrSlice accepts either a single JSON string or an array of strings.
// The legacy mail endpoint historically allowed both shapes for its bcc
// field.
type StringOrSlice []string

// UnmarshalJSON implements json.Unmarshaler
func (s *StringOrSlice) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = nil
			return nil
		}
		*s = []string{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or array of strings: %w", err)
	}
	*s = many
	return nil
}

// SendMailRequest represents a bulk notification request. Each recipient
// receives a separate message; recipients never see each other.
type SendMailRequest struct {
	Recipients []string `json:"recipients" binding:"required,min=1,dive,email"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
}

// LegacyMailRequest is the body of the historical send-mail endpoint
type LegacyMailRequest struct {
	BCC     StringOrSlice `json:"bcc"`
	Subject string        `json:"subject"`
	Text    string        `json:"text"`
}

// MailResult is the per-recipient outcome of a send run
type MailResult struct {
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
	Info      string `json:"info,omitempty"`
}

// SendMailResponse aggregates the per-recipient outcomes
type SendMailResponse struct {
	OK      bool         `json:"ok"`
	Count   int          `json:"count"`
	Results []MailResult `json:"results"`
}
