package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/billing"
	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
)

// StudentReader lists student records for matching and reporting
type StudentReader interface {
	GetAllStudents(ctx context.Context, region *string) ([]*models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
}

// PaymentMatcher reads payments and writes match resolutions
type PaymentMatcher interface {
	GetAllPayments(ctx context.Context) ([]*models.Payment, error)
	GetPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	UpdateMatch(ctx context.Context, paymentID string, matchedStudentID *string, status models.MatchStatus) error
	BulkUpdateMatches(ctx context.Context, updates []models.MatchUpdate) error
}

// ReconcileService pairs bank payments with students by variable symbol and
// derives per-student payment standing.
type ReconcileService struct {
	students StudentReader
	payments PaymentMatcher
	logger   zerolog.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(students StudentReader, payments PaymentMatcher, logger zerolog.Logger) *ReconcileService {
	return &ReconcileService{
		students: students,
		payments: payments,
		logger:   logger,
	}
}

// AutoPair resolves every non-matched payment against the student VS index.
// Exactly one candidate matches the payment, several candidates mark it
// ambiguous, none leave it unmatched. Only rows whose resolved state differs
// from the stored state are written, so a second run with unchanged data
// produces zero writes.
func (s *ReconcileService) AutoPair(ctx context.Context) (*dto.AutoPairResponse, error) {
	students, err := s.students.GetAllStudents(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("auto-pair failed to load students: %w", err)
	}
	payments, err := s.payments.GetAllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("auto-pair failed to load payments: %w", err)
	}

	byVS := make(map[string][]string, len(students))
	for _, student := range students {
		vs := models.NormalizeVS(student.VS)
		if vs == "" {
			continue
		}
		byVS[vs] = append(byVS[vs], student.ID)
	}

	result := &dto.AutoPairResponse{}
	updates := []models.MatchUpdate{}

	for _, payment := range payments {
		if payment.MatchStatus == models.MatchStatusMatched {
			continue
		}

		candidates := byVS[models.NormalizeVS(payment.VS)]

		var wantID *string
		var wantStatus models.MatchStatus
		switch len(candidates) {
		case 0:
			wantID, wantStatus = nil, models.MatchStatusUnmatched
		case 1:
			id := candidates[0]
			wantID, wantStatus = &id, models.MatchStatusMatched
		default:
			wantID, wantStatus = nil, models.MatchStatusAmbiguous
		}

		if payment.MatchStatus == wantStatus && equalID(payment.MatchedStudentID, wantID) {
			result.Unchanged++
			continue
		}

		updates = append(updates, models.MatchUpdate{
			PaymentID:        payment.ID,
			MatchedStudentID: wantID,
			MatchStatus:      wantStatus,
		})
		switch wantStatus {
		case models.MatchStatusMatched:
			result.Matched++
		case models.MatchStatusAmbiguous:
			result.Ambiguous++
		default:
			result.Demoted++
		}
	}

	if err := s.payments.BulkUpdateMatches(ctx, updates); err != nil {
		return nil, fmt.Errorf("auto-pair failed to apply matches: %w", err)
	}

	s.logger.Info().
		Int("matched", result.Matched).
		Int("ambiguous", result.Ambiguous).
		Int("demoted", result.Demoted).
		Int("unchanged", result.Unchanged).
		Int("writes", len(updates)).
		Msg("Auto-pair run finished")
	return result, nil
}

func equalID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// AssignPayment unconditionally pairs a payment with a student, overriding
// any previous auto-pair outcome.
func (s *ReconcileService) AssignPayment(ctx context.Context, paymentID, studentID string) error {
	if _, err := s.payments.GetPaymentByID(ctx, paymentID); err != nil {
		return err
	}
	student, err := s.students.GetStudentByID(ctx, studentID)
	if err != nil {
		return err
	}
	return s.payments.UpdateMatch(ctx, paymentID, &student.ID, models.MatchStatusMatched)
}

// UnassignPayment clears a payment's match fields
func (s *ReconcileService) UnassignPayment(ctx context.Context, paymentID string) error {
	if _, err := s.payments.GetPaymentByID(ctx, paymentID); err != nil {
		return err
	}
	return s.payments.UpdateMatch(ctx, paymentID, nil, models.MatchStatusUnmatched)
}

// InstallmentsReport derives each student's expected amount, paid total and
// status for the given installment index. An optional status filter keeps
// only rows with that derived status.
func (s *ReconcileService) InstallmentsReport(ctx context.Context, installment int, statusFilter *models.PaymentStatus) ([]dto.StudentInstallmentResponse, error) {
	installment = billing.ClampInstallment(installment)

	students, err := s.students.GetAllStudents(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("report failed to load students: %w", err)
	}
	payments, err := s.payments.GetAllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("report failed to load payments: %w", err)
	}

	paidByStudent := make(map[string]models.Cents)
	for _, payment := range payments {
		if payment.MatchedStudentID != nil {
			paidByStudent[*payment.MatchedStudentID] += payment.Amount
		}
	}

	report := []dto.StudentInstallmentResponse{}
	for _, student := range students {
		expected := billing.InstallmentExpected(student.Period, student.Amount, installment)
		paid := paidByStudent[student.ID]
		status := billing.DeriveStatus(expected, paid)

		if statusFilter != nil && status != *statusFilter {
			continue
		}

		report = append(report, dto.StudentInstallmentResponse{
			Student:     toStudentResponse(student),
			Installment: installment,
			Expected:    expected.String(),
			Paid:        paid.String(),
			Difference:  (paid - expected).String(),
			Status:      string(status),
		})
	}
	return report, nil
}
