package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/dstcrm/dstcrm/internal/app/models"
)

func newStatsFixture(students []*models.Student, payments []*models.Payment, at time.Time) *StatsService {
	svc := NewStatsService(
		&fakeStudentReader{students: students},
		&fakePaymentMatcher{payments: payments},
		zerolog.Nop(),
	)
	svc.now = func() time.Time { return at }
	return svc
}

func TestFinanceExpectedFollowsAcademicCalendar(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", Period: models.PeriodMonth, Amount: 1800},
		{ID: "s2", Period: models.PeriodHalfYear, Amount: 9000},
		{ID: "s3", Period: models.PeriodYear, Amount: 18000},
	}

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		// September: monthly + yearly due, half-year not.
		{"september", time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), "198.00"},
		// October: only monthly.
		{"october", time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC), "18.00"},
		// January is academic month 5: monthly + half-year.
		{"january", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "108.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newStatsFixture(students, nil, tt.at)
			report, err := svc.Finance(context.Background(), nil)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, report.Expected)
		})
	}
}

func TestFinancePaidAndSubsetRules(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", Region: "BA", Period: models.PeriodMonth, Amount: 1800},
		{ID: "s2", Region: "KE", Period: models.PeriodMonth, Amount: 1800},
	}
	s1, s2 := "s1", "s2"
	payments := []*models.Payment{
		{ID: "p1", Amount: 1000, MatchedStudentID: &s1, MatchStatus: models.MatchStatusMatched},
		{ID: "p2", Amount: 2000, MatchedStudentID: &s2, MatchStatus: models.MatchStatusMatched},
		{ID: "p3", Amount: 400, MatchStatus: models.MatchStatusUnmatched},
	}
	at := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	svc := newStatsFixture(students, payments, at)

	all, err := svc.Finance(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, "all", all.Subset)
	assert.Equal(t, "34.00", all.Paid)

	// Region filter keeps the region's matched payments plus unmatched ones.
	region := "BA"
	ba, err := svc.Finance(context.Background(), &region)
	assert.NoError(t, err)
	assert.Equal(t, 1, ba.StudentCount)
	assert.Equal(t, "14.00", ba.Paid)
}

func TestFinanceFinalAndDifference(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", Period: models.PeriodMonth, Amount: 1800},
		{ID: "s2", Period: models.PeriodHalfYear, Amount: 9000},
		{ID: "s3", Period: models.PeriodYear, Amount: 18000},
	}
	at := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	svc := newStatsFixture(students, nil, at)
	report, err := svc.Finance(context.Background(), nil)
	assert.NoError(t, err)

	// month 18×10 + half-year 90×2 + year 180×1 = 540
	assert.Equal(t, "540.00", report.Final)
	assert.Equal(t, "-18.00", report.Difference)
}

func TestFinanceIgnoresUnknownPeriod(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", Period: models.PeriodMonth, Amount: 1800},
		{ID: "s2", Period: models.PeriodUnknown, Amount: 9000},
	}
	at := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	svc := newStatsFixture(students, nil, at)
	report, err := svc.Finance(context.Background(), nil)
	assert.NoError(t, err)

	// The unrecognized period contributes nothing to expected or final.
	assert.Equal(t, "18.00", report.Expected)
	assert.Equal(t, "180.00", report.Final)
	assert.Equal(t, 2, report.StudentCount)
}

func TestOverviewGroupsByNormalizedRegion(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", Region: "BA", Period: models.PeriodYear, Amount: 18000},
		{ID: "s2", Region: "BA", Period: models.PeriodYear, Amount: 18000},
		{ID: "s3", Region: "neznamy", Period: models.PeriodYear, Amount: 18000},
	}
	at := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	svc := newStatsFixture(students, nil, at)
	overview, err := svc.Overview(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 3, overview.Total.StudentCount)
	assert.Len(t, overview.Regions, 2)
	assert.Equal(t, "BA", overview.Regions[0].Region)
	assert.Equal(t, 2, overview.Regions[0].StudentCount)
	assert.Equal(t, models.UnknownRegion, overview.Regions[1].Region)
}

func TestTiersBucketsByFullYearLiability(t *testing.T) {
	students := []*models.Student{
		{ID: "s1", Period: models.PeriodMonth, Amount: 1800},    // 180 full year
		{ID: "s2", Period: models.PeriodYear, Amount: 18000},    // 180 full year
		{ID: "s3", Period: models.PeriodHalfYear, Amount: 18000}, // 360 full year
		{ID: "s4", Period: models.PeriodYear, Amount: 5000},     // other
	}
	at := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	svc := newStatsFixture(students, nil, at)
	resp, err := svc.Tiers(context.Background())
	assert.NoError(t, err)

	assert.Len(t, resp.Tiers, 3)
	assert.Equal(t, "50.00", resp.Tiers[0].Liability)
	assert.Equal(t, "other", resp.Tiers[0].Label)
	assert.Equal(t, "180.00", resp.Tiers[1].Liability)
	assert.Equal(t, "standard", resp.Tiers[1].Label)
	assert.Equal(t, 2, resp.Tiers[1].StudentCount)
	assert.Equal(t, "360.00", resp.Tiers[2].Liability)
	assert.Equal(t, "double", resp.Tiers[2].Label)
}
