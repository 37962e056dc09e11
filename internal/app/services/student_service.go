package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/billing"
	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
)

// StudentStore reads and writes student records
type StudentStore interface {
	CreateStudent(ctx context.Context, student *models.Student) (string, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	GetStudentByMail(ctx context.Context, mail string) (*models.Student, error)
	GetAllStudents(ctx context.Context, region *string) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	UpdateStudentAmount(ctx context.Context, id string, amount models.Cents) error
	DeleteStudent(ctx context.Context, id string) error
}

// StudentPayments lists the payments matched to a student
type StudentPayments interface {
	GetPaymentsByStudent(ctx context.Context, studentID string) ([]*models.Payment, error)
}

// StudentService handles the student roster
type StudentService struct {
	students StudentStore
	payments StudentPayments
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, payments StudentPayments, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		payments: payments,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateStudent canonicalizes and stores a manually entered student
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	amount, err := models.ParseCents(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}

	student := &models.Student{
		Name:            strings.TrimSpace(req.Name),
		Surname:         strings.TrimSpace(req.Surname),
		Mail:            strings.TrimSpace(req.Mail),
		TelephoneNumber: req.TelephoneNumber,
		School:          req.School,
		Region:          models.NormalizeRegion(req.Region),
		Note:            req.Note,
		IBAN:            req.IBAN,
		VS:              models.NormalizeVS(req.VS),
		Period:          models.ParseBillingPeriod(req.Period),
		PeriodRaw:       req.Period,
		Amount:          amount,
		TypeOfPayment:   req.TypeOfPayment,
	}

	id, err := s.students.CreateStudent(ctx, student)
	if err != nil {
		return nil, err
	}

	created, err := s.students.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(created)
	return &resp, nil
}

// GetStudent retrieves one student
func (s *StudentService) GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.students.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

// ListStudents retrieves the roster, optionally filtered by region code
func (s *StudentService) ListStudents(ctx context.Context, region *string) ([]dto.StudentResponse, error) {
	var normalized *string
	if region != nil {
		code := models.NormalizeRegion(*region)
		normalized = &code
	}

	students, err := s.students.GetAllStudents(ctx, normalized)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		out = append(out, toStudentResponse(student))
	}
	return out, nil
}

// UpdateStudent applies a partial update. Omitted fields keep their stored
// values; period and amount are re-canonicalized when present.
func (s *StudentService) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.students.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.Surname != nil {
		student.Surname = strings.TrimSpace(*req.Surname)
	}
	if req.Mail != nil {
		student.Mail = strings.TrimSpace(*req.Mail)
	}
	if req.TelephoneNumber != nil {
		student.TelephoneNumber = *req.TelephoneNumber
	}
	if req.School != nil {
		student.School = *req.School
	}
	if req.Region != nil {
		student.Region = models.NormalizeRegion(*req.Region)
	}
	if req.Note != nil {
		student.Note = *req.Note
	}
	if req.IBAN != nil {
		student.IBAN = *req.IBAN
	}
	if req.VS != nil {
		student.VS = models.NormalizeVS(*req.VS)
	}
	if req.Period != nil {
		student.Period = models.ParseBillingPeriod(*req.Period)
		student.PeriodRaw = *req.Period
	}
	if req.Amount != nil {
		amount, err := models.ParseCents(*req.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
		}
		student.Amount = amount
	}
	if req.TypeOfPayment != nil {
		student.TypeOfPayment = *req.TypeOfPayment
	}

	if err := s.students.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}
	resp := toStudentResponse(student)
	return &resp, nil
}

// UpdateAmount overrides a student's base amount
func (s *StudentService) UpdateAmount(ctx context.Context, id string, rawAmount string) error {
	amount, err := models.ParseCents(rawAmount)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	return s.students.UpdateStudentAmount(ctx, id, amount)
}

// DeleteStudent removes a student; payments referencing it are unmatched by
// the store in the same transaction.
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	return s.students.DeleteStudent(ctx, id)
}

// ProfileByEmail is the self-service view for a signed-in member: their
// student record, matched payments and next payment deadline.
func (s *StudentService) ProfileByEmail(ctx context.Context, mail string) (*dto.StudentProfileResponse, error) {
	student, err := s.students.GetStudentByMail(ctx, mail)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.GetPaymentsByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	paymentResponses := make([]dto.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		paymentResponses = append(paymentResponses, toPaymentResponse(payment))
	}

	profile := &dto.StudentProfileResponse{
		Student:  toStudentResponse(student),
		Payments: paymentResponses,
	}
	if next, ok := billing.NextDeadline(student.Period, s.now()); ok {
		profile.NextDeadline = &next
	}
	return profile, nil
}
