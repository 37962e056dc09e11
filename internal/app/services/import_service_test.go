package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/app/models/dto"
)

type fakeStudentWriter struct {
	inserted []*models.Student
}

func (f *fakeStudentWriter) BulkInsertStudents(_ context.Context, students []*models.Student) (int, error) {
	f.inserted = append(f.inserted, students...)
	return len(students), nil
}

type fakePaymentWriter struct {
	inserted []*models.Payment
}

func (f *fakePaymentWriter) BulkInsertPayments(_ context.Context, payments []*models.Payment) (int, error) {
	f.inserted = append(f.inserted, payments...)
	return len(payments), nil
}

func TestImportStudentsCountsMissingRequiredFields(t *testing.T) {
	students := &fakeStudentWriter{}
	svc := NewImportService(students, &fakePaymentWriter{}, zerolog.Nop())

	summary, err := svc.ImportStudents(context.Background(), []dto.ImportStudentItem{
		{Name: "Jana", Surname: "Nováková", Mail: "jana@example.com", Period: "Monthly", Amount: "18"},
		{Name: "Peter", Surname: "Kováč"}, // missing mail
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Len(t, students.inserted, 1)
}

func TestImportStudentsCanonicalizesFields(t *testing.T) {
	students := &fakeStudentWriter{}
	svc := NewImportService(students, &fakePaymentWriter{}, zerolog.Nop())

	_, err := svc.ImportStudents(context.Background(), []dto.ImportStudentItem{
		{
			Name:    " Jana ",
			Surname: "Nováková",
			Mail:    "jana@example.com",
			Period:  "Half Year",
			Amount:  "90,00",
			VS:      " 0042 ",
			Region:  "ba kraj",
		},
	})
	assert.NoError(t, err)
	if assert.Len(t, students.inserted, 1) {
		s := students.inserted[0]
		assert.Equal(t, "Jana", s.Name)
		assert.Equal(t, models.PeriodHalfYear, s.Period)
		assert.Equal(t, "Half Year", s.PeriodRaw)
		assert.Equal(t, models.Cents(9000), s.Amount)
		assert.Equal(t, "0042", s.VS)
		assert.Equal(t, "BA", s.Region)
		assert.NotNil(t, s.ImportedAt)
	}
}

func TestImportStudentsRejectsBadAmount(t *testing.T) {
	students := &fakeStudentWriter{}
	svc := NewImportService(students, &fakePaymentWriter{}, zerolog.Nop())

	summary, err := svc.ImportStudents(context.Background(), []dto.ImportStudentItem{
		{Name: "Jana", Surname: "Nováková", Mail: "jana@example.com", Amount: "abc"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
}

func TestImportPaymentsToleratesEverything(t *testing.T) {
	payments := &fakePaymentWriter{}
	svc := NewImportService(&fakeStudentWriter{}, payments, zerolog.Nop())

	summary, err := svc.ImportPayments(context.Background(), []dto.ImportPaymentItem{
		{VS: "123", Amount: "18.50", Date: "2025-10-01"},
		{}, // entirely empty is still a valid payment record
		{Amount: "garbage", Date: "not a date"},
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.SuccessCount)
	assert.Equal(t, 0, summary.ErrorCount)

	if assert.Len(t, payments.inserted, 3) {
		assert.Equal(t, models.Cents(1850), payments.inserted[0].Amount)
		assert.NotNil(t, payments.inserted[0].Date)
		assert.Equal(t, models.MatchStatusUnmatched, payments.inserted[0].MatchStatus)

		assert.Equal(t, models.Cents(0), payments.inserted[2].Amount)
		assert.Nil(t, payments.inserted[2].Date)
	}
}

func TestImportPaymentsDateLayouts(t *testing.T) {
	payments := &fakePaymentWriter{}
	svc := NewImportService(&fakeStudentWriter{}, payments, zerolog.Nop())

	_, err := svc.ImportPayments(context.Background(), []dto.ImportPaymentItem{
		{Date: "2025-09-30"},
		{Date: "30.09.2025"},
		{Date: "5.9.2025"},
	})
	assert.NoError(t, err)
	for i, p := range payments.inserted {
		assert.NotNil(t, p.Date, "row %d", i)
	}
}
