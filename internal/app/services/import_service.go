package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
)

// paymentDateLayouts are the date formats accepted from bank statement
// exports, tried in order.
var paymentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
}

// StudentBulkWriter persists imported student records
type StudentBulkWriter interface {
	BulkInsertStudents(ctx context.Context, students []*models.Student) (int, error)
}

// PaymentBulkWriter persists imported payment records
type PaymentBulkWriter interface {
	BulkInsertPayments(ctx context.Context, payments []*models.Payment) (int, error)
}

// ImportService turns raw JSON import arrays into canonical records.
// Validation is per record: a bad record is skipped and counted, the rest of
// the array is still imported. There is no duplicate detection; re-importing
// the same file creates duplicate records.
type ImportService struct {
	students StudentBulkWriter
	payments PaymentBulkWriter
	logger   zerolog.Logger
}

// NewImportService creates a new ImportService
func NewImportService(students StudentBulkWriter, payments PaymentBulkWriter, logger zerolog.Logger) *ImportService {
	return &ImportService{
		students: students,
		payments: payments,
		logger:   logger,
	}
}

// ImportStudents validates and writes a student import array. Records missing
// mail, name or surname are skipped and counted as errors, as are records
// whose amount cannot be parsed.
func (s *ImportService) ImportStudents(ctx context.Context, items []dto.ImportStudentItem) (*dto.ImportSummary, error) {
	summary := &dto.ImportSummary{}
	now := time.Now()

	valid := make([]*models.Student, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Mail) == "" ||
			strings.TrimSpace(item.Name) == "" ||
			strings.TrimSpace(item.Surname) == "" {
			summary.ErrorCount++
			continue
		}

		amount, err := models.ParseCents(item.Amount)
		if err != nil {
			s.logger.Warn().Str("mail", item.Mail).Str("amount", item.Amount).Msg("Skipping student with unparseable amount")
			summary.ErrorCount++
			continue
		}

		importedAt := now
		valid = append(valid, &models.Student{
			Name:            strings.TrimSpace(item.Name),
			Surname:         strings.TrimSpace(item.Surname),
			Mail:            strings.TrimSpace(item.Mail),
			TelephoneNumber: item.TelephoneNumber,
			School:          item.School,
			Region:          models.NormalizeRegion(item.Region),
			Note:            item.Note,
			IBAN:            item.IBAN,
			VS:              models.NormalizeVS(item.VS),
			Period:          models.ParseBillingPeriod(item.Period),
			PeriodRaw:       item.Period,
			Amount:          amount,
			TypeOfPayment:   item.TypeOfPayment,
			ImportedAt:      &importedAt,
		})
	}

	written, err := s.students.BulkInsertStudents(ctx, valid)
	if err != nil {
		// Rows written before the failing chunk stay in place.
		s.logger.Error().Err(err).Int("written", written).Msg("Student import aborted mid-batch")
		summary.ErrorCount += len(valid) - written
	}
	summary.SuccessCount = written

	s.logger.Info().
		Int("successCount", summary.SuccessCount).
		Int("errorCount", summary.ErrorCount).
		Msg("Student import finished")
	return summary, nil
}

// ImportPayments writes a bank statement import array. No field is required;
// unparseable amounts become zero and unparseable dates become null.
func (s *ImportService) ImportPayments(ctx context.Context, items []dto.ImportPaymentItem) (*dto.ImportSummary, error) {
	summary := &dto.ImportSummary{}

	valid := make([]*models.Payment, 0, len(items))
	for _, item := range items {
		amount, err := models.ParseCents(item.Amount)
		if err != nil {
			amount = 0
		}

		valid = append(valid, &models.Payment{
			VS:          models.NormalizeVS(item.VS),
			Amount:      amount,
			Date:        parsePaymentDate(item.Date),
			Message:     item.Message,
			SenderName:  item.SenderName,
			SenderIBAN:  item.SenderIBAN,
			MatchStatus: models.MatchStatusUnmatched,
		})
	}

	written, err := s.payments.BulkInsertPayments(ctx, valid)
	if err != nil {
		s.logger.Error().Err(err).Int("written", written).Msg("Payment import aborted mid-batch")
		summary.ErrorCount += len(valid) - written
	}
	summary.SuccessCount = written

	s.logger.Info().
		Int("successCount", summary.SuccessCount).
		Int("errorCount", summary.ErrorCount).
		Msg("Payment import finished")
	return summary, nil
}

func parsePaymentDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
