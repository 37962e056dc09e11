package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dstcrm/dstcrm/internal/app/models"
	"github.com/dstcrm/dstcrm/internal/pkg/apperrors"
)

type fakeStudentReader struct {
	students []*models.Student
}

func (f *fakeStudentReader) GetAllStudents(_ context.Context, region *string) ([]*models.Student, error) {
	if region == nil {
		return f.students, nil
	}
	out := []*models.Student{}
	for _, s := range f.students {
		if s.Region == *region {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudentReader) GetStudentByID(_ context.Context, id string) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

type fakePaymentMatcher struct {
	payments []*models.Payment
	updates  []models.MatchUpdate
}

func (f *fakePaymentMatcher) GetAllPayments(_ context.Context) ([]*models.Payment, error) {
	return f.payments, nil
}

func (f *fakePaymentMatcher) GetPaymentByID(_ context.Context, id string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrPaymentNotFound
}

func (f *fakePaymentMatcher) UpdateMatch(_ context.Context, paymentID string, matchedStudentID *string, status models.MatchStatus) error {
	for _, p := range f.payments {
		if p.ID == paymentID {
			p.MatchedStudentID = matchedStudentID
			p.MatchStatus = status
			return nil
		}
	}
	return apperrors.ErrPaymentNotFound
}

func (f *fakePaymentMatcher) BulkUpdateMatches(_ context.Context, updates []models.MatchUpdate) error {
	f.updates = append(f.updates, updates...)
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

func newReconcileFixture(students []*models.Student, payments []*models.Payment) (*ReconcileService, *fakePaymentMatcher) {
	matcher := &fakePaymentMatcher{payments: payments}
	svc := NewReconcileService(&fakeStudentReader{students: students}, matcher, zerolog.Nop())
	return svc, matcher
}

func TestAutoPairSingleCandidate(t *testing.T) {
	students := []*models.Student{{ID: "s1", VS: "123456"}}
	payments := []*models.Payment{{ID: "p1", VS: "123456", MatchStatus: models.MatchStatusUnmatched}}
	svc, matcher := newReconcileFixture(students, payments)

	result, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 0, result.Ambiguous)

	assert.Len(t, matcher.updates, 1)
	assert.Equal(t, models.MatchStatusMatched, payments[0].MatchStatus)
	if assert.NotNil(t, payments[0].MatchedStudentID) {
		assert.Equal(t, "s1", *payments[0].MatchedStudentID)
	}
}

func TestAutoPairAmbiguousCandidates(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", VS: "999"},
		{ID: "s2", VS: "999"},
	}
	payments := []*models.Payment{{ID: "p1", VS: "999", MatchStatus: models.MatchStatusUnmatched}}
	svc, _ := newReconcileFixture(students, payments)

	result, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Ambiguous)
	assert.Equal(t, models.MatchStatusAmbiguous, payments[0].MatchStatus)
	assert.Nil(t, payments[0].MatchedStudentID)
}

func TestAutoPairIsIdempotent(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", VS: "111"},
		{ID: "s2", VS: "222"},
		{ID: "s3", VS: "222"},
	}
	payments := []*models.Payment{
		{ID: "p1", VS: "111", MatchStatus: models.MatchStatusUnmatched},
		{ID: "p2", VS: "222", MatchStatus: models.MatchStatusUnmatched},
		{ID: "p3", VS: "000", MatchStatus: models.MatchStatusUnmatched},
	}
	svc, matcher := newReconcileFixture(students, payments)

	first, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Matched)
	assert.Equal(t, 1, first.Ambiguous)
	firstWrites := len(matcher.updates)
	assert.Equal(t, 2, firstWrites)

	second, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Matched)
	assert.Equal(t, 0, second.Ambiguous)
	assert.Equal(t, firstWrites, len(matcher.updates), "second run must produce zero writes")
}

func TestAutoPairDemotesStaleAmbiguous(t *testing.T) {
	students := []*models.Student{{ID: "s1", VS: "555"}}
	payments := []*models.Payment{
		{ID: "p1", VS: "999", MatchStatus: models.MatchStatusAmbiguous},
	}
	svc, matcher := newReconcileFixture(students, payments)

	first, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Demoted)
	assert.Equal(t, 0, first.Unchanged)
	assert.Len(t, matcher.updates, 1)
	assert.Equal(t, models.MatchStatusUnmatched, payments[0].MatchStatus)

	second, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Demoted)
	assert.Equal(t, 1, second.Unchanged)
	assert.Len(t, matcher.updates, 1, "second run must produce zero writes")
}

func TestAutoPairSkipsAlreadyMatched(t *testing.T) {
	manual := "s2"
	students := []*models.Student{{ID: "s1", VS: "777"}}
	payments := []*models.Payment{
		{ID: "p1", VS: "777", MatchedStudentID: &manual, MatchStatus: models.MatchStatusMatched},
	}
	svc, matcher := newReconcileFixture(students, payments)

	_, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, matcher.updates, "matched payments must not be touched")
	assert.Equal(t, "s2", *payments[0].MatchedStudentID)
}

func TestAutoPairNormalizesVS(t *testing.T) {
	students := []*models.Student{{ID: "s1", VS: " 0042 "}}
	payments := []*models.Payment{{ID: "p1", VS: "0042", MatchStatus: models.MatchStatusUnmatched}}
	svc, _ := newReconcileFixture(students, payments)

	result, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
}

func TestAutoPairIgnoresEmptyStudentVS(t *testing.T) {
	students := []*models.Student{{ID: "s1", VS: ""}}
	payments := []*models.Payment{{ID: "p1", VS: "", MatchStatus: models.MatchStatusUnmatched}}
	svc, matcher := newReconcileFixture(students, payments)

	result, err := svc.AutoPair(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Matched)
	assert.Empty(t, matcher.updates)
}

func TestAssignPaymentOverridesAutoPair(t *testing.T) {
	other := "s1"
	students := []*models.Student{{ID: "s1", VS: "1"}, {ID: "s2", VS: "2"}}
	payments := []*models.Payment{
		{ID: "p1", VS: "1", MatchedStudentID: &other, MatchStatus: models.MatchStatusMatched},
	}
	svc, _ := newReconcileFixture(students, payments)

	err := svc.AssignPayment(context.Background(), "p1", "s2")
	assert.NoError(t, err)
	assert.Equal(t, "s2", *payments[0].MatchedStudentID)
	assert.Equal(t, models.MatchStatusMatched, payments[0].MatchStatus)
}

func TestAssignPaymentUnknownStudent(t *testing.T) {
	payments := []*models.Payment{{ID: "p1", MatchStatus: models.MatchStatusUnmatched}}
	svc, _ := newReconcileFixture(nil, payments)

	err := svc.AssignPayment(context.Background(), "p1", "nope")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUnassignPayment(t *testing.T) {
	matched := "s1"
	students := []*models.Student{{ID: "s1", VS: "1"}}
	payments := []*models.Payment{
		{ID: "p1", VS: "1", MatchedStudentID: &matched, MatchStatus: models.MatchStatusMatched},
	}
	svc, _ := newReconcileFixture(students, payments)

	err := svc.UnassignPayment(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Nil(t, payments[0].MatchedStudentID)
	assert.Equal(t, models.MatchStatusUnmatched, payments[0].MatchStatus)
}

func TestInstallmentsReport(t *testing.T) {
	s1 := "s1"
	students := []*models.Student{
		{ID: "s1", VS: "1", Period: models.PeriodMonth, Amount: 1800},
		{ID: "s2", VS: "2", Period: models.PeriodYear, Amount: 18000},
	}
	payments := []*models.Payment{
		{ID: "p1", VS: "1", Amount: 3600, MatchedStudentID: &s1, MatchStatus: models.MatchStatusMatched},
		{ID: "p2", VS: "2", Amount: 500, MatchStatus: models.MatchStatusUnmatched},
	}
	svc, _ := newReconcileFixture(students, payments)

	report, err := svc.InstallmentsReport(context.Background(), 2, nil)
	assert.NoError(t, err)
	assert.Len(t, report, 2)

	assert.Equal(t, "36.00", report[0].Expected)
	assert.Equal(t, "36.00", report[0].Paid)
	assert.Equal(t, string(models.StatusPaid), report[0].Status)

	// The unmatched payment contributes nothing to the yearly payer.
	assert.Equal(t, "180.00", report[1].Expected)
	assert.Equal(t, "0.00", report[1].Paid)
	assert.Equal(t, string(models.StatusPartial), report[1].Status)
}

func TestInstallmentsReportStatusFilter(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", Period: models.PeriodYear, Amount: 18000},
		{ID: "s2", Period: models.PeriodYear, Amount: 18000},
	}
	s2 := "s2"
	payments := []*models.Payment{
		{ID: "p1", Amount: 18000, MatchedStudentID: &s2, MatchStatus: models.MatchStatusMatched},
	}
	svc, _ := newReconcileFixture(students, payments)

	status := models.StatusPaid
	report, err := svc.InstallmentsReport(context.Background(), 1, &status)
	assert.NoError(t, err)
	assert.Len(t, report, 1)
	assert.Equal(t, "s2", report[0].Student.ID)
}
