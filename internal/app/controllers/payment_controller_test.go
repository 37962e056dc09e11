package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
	"github.com/dstcrm/dstcrm/internal/app/services"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
)

type fakePaymentLedger struct {
	students []*models.Student
	payments []*models.Payment
}

func (f *fakePaymentLedger) GetAllStudents(_ context.Context, region *string) ([]*models.Student, error) {
	return f.students, nil
}

func (f *fakePaymentLedger) GetStudentByID(_ context.Context, id string) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakePaymentLedger) GetAllPayments(_ context.Context) ([]*models.Payment, error) {
	return f.payments, nil
}

func (f *fakePaymentLedger) GetPaymentByID(_ context.Context, id string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrPaymentNotFound
}

func (f *fakePaymentLedger) GetPaymentsPage(_ context.Context, filter dto.PaymentFilterRequest) ([]*models.Payment, int64, error) {
	return f.payments, int64(len(f.payments)), nil
}

func (f *fakePaymentLedger) UpdateMatch(_ context.Context, paymentID string, matchedStudentID *string, status models.MatchStatus) error {
	for _, p := range f.payments {
		if p.ID == paymentID {
			p.MatchedStudentID = matchedStudentID
			p.MatchStatus = status
			return nil
		}
	}
	return apperrors.ErrPaymentNotFound
}

func (f *fakePaymentLedger) BulkUpdateMatches(_ context.Context, updates []models.MatchUpdate) error {
	for _, u := range updates {
		for _, p := range f.payments {
			if p.ID == u.PaymentID {
				p.MatchedStudentID = u.MatchedStudentID
				p.MatchStatus = u.MatchStatus
			}
		}
	}
	return nil
}

func (f *fakePaymentLedger) DeletePayment(_ context.Context, id string) error {
	for i, p := range f.payments {
		if p.ID == id {
			f.payments = append(f.payments[:i], f.payments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrPaymentNotFound
}

func newPaymentRouter(ledger *fakePaymentLedger) *gin.Engine {
	paymentSvc := services.NewPaymentService(ledger, zerolog.Nop())
	reconcileSvc := services.NewReconcileService(ledger, ledger, zerolog.Nop())
	ctrl := NewPaymentController(paymentSvc, reconcileSvc, zerolog.Nop())

	router := gin.New()
	router.GET("/payments", ctrl.ListPayments)
	router.GET("/payments/installments", ctrl.InstallmentsReport)
	router.POST("/payments/auto-pair", ctrl.AutoPair)
	router.GET("/payments/:id", ctrl.GetPayment)
	router.DELETE("/payments/:id", ctrl.DeletePayment)
	router.POST("/payments/:id/assign", ctrl.AssignPayment)
	router.DELETE("/payments/:id/assign", ctrl.UnassignPayment)
	return router
}

func TestAutoPairEndpoint(t *testing.T) {
	ledger := &fakePaymentLedger{
		students: []*models.Student{{ID: "5f3c7be5-9f0a-4a8e-8d51-2f7b1c9e0a11", VS: "123456"}},
		payments: []*models.Payment{{ID: "p1", VS: "123456", MatchStatus: models.MatchStatusUnmatched}},
	}
	router := newPaymentRouter(ledger)

	rec := performRequest(t, router, http.MethodPost, "/payments/auto-pair", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data dto.AutoPairResponse `json:"data"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.Data.Matched)
	assert.Equal(t, 0, resp.Data.Ambiguous)
	assert.Equal(t, models.MatchStatusMatched, ledger.payments[0].MatchStatus)
}

func TestGetPaymentNotFound(t *testing.T) {
	router := newPaymentRouter(&fakePaymentLedger{})

	rec := performRequest(t, router, http.MethodGet, "/payments/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssignPaymentEndpoint(t *testing.T) {
	studentID := "5f3c7be5-9f0a-4a8e-8d51-2f7b1c9e0a11"
	ledger := &fakePaymentLedger{
		students: []*models.Student{{ID: studentID, VS: "1"}},
		payments: []*models.Payment{{ID: "p1", VS: "999", MatchStatus: models.MatchStatusUnmatched}},
	}
	router := newPaymentRouter(ledger)

	rec := performRequest(t, router, http.MethodPost, "/payments/p1/assign", dto.AssignPaymentRequest{
		StudentID: studentID,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MatchStatusMatched, ledger.payments[0].MatchStatus)
	if assert.NotNil(t, ledger.payments[0].MatchedStudentID) {
		assert.Equal(t, studentID, *ledger.payments[0].MatchedStudentID)
	}
}

func TestAssignPaymentRejectsMalformedStudentID(t *testing.T) {
	router := newPaymentRouter(&fakePaymentLedger{})

	rec := performRequest(t, router, http.MethodPost, "/payments/p1/assign", map[string]string{
		"studentId": "not-a-uuid",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnassignPaymentEndpoint(t *testing.T) {
	matched := "5f3c7be5-9f0a-4a8e-8d51-2f7b1c9e0a11"
	ledger := &fakePaymentLedger{
		payments: []*models.Payment{{ID: "p1", MatchedStudentID: &matched, MatchStatus: models.MatchStatusMatched}},
	}
	router := newPaymentRouter(ledger)

	rec := performRequest(t, router, http.MethodDelete, "/payments/p1/assign", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, ledger.payments[0].MatchedStudentID)
	assert.Equal(t, models.MatchStatusUnmatched, ledger.payments[0].MatchStatus)
}

func TestInstallmentsReportEndpoint(t *testing.T) {
	studentID := "5f3c7be5-9f0a-4a8e-8d51-2f7b1c9e0a11"
	ledger := &fakePaymentLedger{
		students: []*models.Student{{ID: studentID, Period: models.PeriodMonth, Amount: 1800}},
		payments: []*models.Payment{{ID: "p1", Amount: 3600, MatchedStudentID: &studentID, MatchStatus: models.MatchStatusMatched}},
	}
	router := newPaymentRouter(ledger)

	rec := performRequest(t, router, http.MethodGet, "/payments/installments?installment=2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []dto.StudentInstallmentResponse `json:"data"`
	}
	decodeBody(t, rec, &resp)
	if assert.Len(t, resp.Data, 1) {
		assert.Equal(t, 2, resp.Data[0].Installment)
		assert.Equal(t, "36.00", resp.Data[0].Paid)
		assert.Equal(t, string(models.StatusPaid), resp.Data[0].Status)
	}
}

func TestInstallmentsReportRejectsBadStatus(t *testing.T) {
	router := newPaymentRouter(&fakePaymentLedger{})

	rec := performRequest(t, router, http.MethodGet, "/payments/installments?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePaymentEndpoint(t *testing.T) {
	ledger := &fakePaymentLedger{payments: []*models.Payment{{ID: "p1"}}}
	router := newPaymentRouter(ledger)

	rec := performRequest(t, router, http.MethodDelete, "/payments/p1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ledger.payments)
}
