package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/pkg/helpers"
)

// PaymentStore reads and deletes payment records
type PaymentStore interface {
	GetPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	GetPaymentsPage(ctx context.Context, filter dto.PaymentFilterRequest) ([]*models.Payment, int64, error)
	DeletePayment(ctx context.Context, id string) error
}

// PaymentService handles the payment ledger
type PaymentService struct {
	payments PaymentStore
	logger   zerolog.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(payments PaymentStore, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		logger:   logger,
	}
}

// GetPayment retrieves one payment
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	payment, err := s.payments.GetPaymentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toPaymentResponse(payment)
	return &resp, nil
}

// ListPayments retrieves a filtered page of payments
func (s *PaymentService) ListPayments(ctx context.Context, filter dto.PaymentFilterRequest) (*dto.PaginatedResponse, error) {
	payments, total, err := s.payments.GetPaymentsPage(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		items = append(items, toPaymentResponse(payment))
	}

	return &dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// DeletePayment removes a payment record
func (s *PaymentService) DeletePayment(ctx context.Context, id string) error {
	return s.payments.DeletePayment(ctx, id)
}
