package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
	"github.com/dstcrm/dstcrm/internal/pkg/email"
)

// MailService relays notifications to members, one discrete message per
// recipient.
type MailService struct {
	sender email.Sender
	logger zerolog.Logger
}

// NewMailService creates a new MailService
func NewMailService(sender email.Sender, logger zerolog.Logger) *MailService {
	return &MailService{
		sender: sender,
		logger: logger,
	}
}

// Send delivers the message to every recipient separately and collects the
// per-recipient outcome. An empty recipient list is a validation error; all
// sends failing is a transport error.
func (s *MailService) Send(ctx context.Context, recipients []string, subject, body string) (*dto.SendMailResponse, error) {
	if len(recipients) == 0 {
		return nil, apperrors.ErrNoRecipients
	}

	results := make([]dto.MailResult, 0, len(recipients))
	sent := 0
	for _, recipient := range recipients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := s.sender.Send(recipient, subject, body); err != nil {
			s.logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send notification")
			results = append(results, dto.MailResult{
				Recipient: recipient,
				Status:    "error",
				Info:      err.Error(),
			})
			continue
		}

		sent++
		results = append(results, dto.MailResult{
			Recipient: recipient,
			Status:    "sent",
		})
	}

	if sent == 0 {
		return nil, apperrors.ErrAllSendsFailed
	}

	s.logger.Info().Int("sent", sent).Int("recipients", len(recipients)).Msg("Notification run finished")
	return &dto.SendMailResponse{
		OK:      true,
		Count:   sent,
		Results: results,
	}, nil
}
