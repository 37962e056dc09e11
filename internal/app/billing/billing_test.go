package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dstcrm/dstcrm/internal/app/models"
)

func TestInstallmentExpectedYear(t *testing.T) {
	base := models.Cents(18000)
	for i := 1; i <= 10; i++ {
		assert.Equal(t, base, InstallmentExpected(models.PeriodYear, base, i), "index %d", i)
	}
}

func TestInstallmentExpectedHalfYear(t *testing.T) {
	base := models.Cents(9000)
	for i := 1; i <= 5; i++ {
		assert.Equal(t, base, InstallmentExpected(models.PeriodHalfYear, base, i), "index %d", i)
	}
	for i := 6; i <= 10; i++ {
		assert.Equal(t, 2*base, InstallmentExpected(models.PeriodHalfYear, base, i), "index %d", i)
	}
}

func TestInstallmentExpectedMonth(t *testing.T) {
	base := models.Cents(1800)
	for i := 1; i <= 10; i++ {
		assert.Equal(t, base*models.Cents(i), InstallmentExpected(models.PeriodMonth, base, i), "index %d", i)
	}
}

func TestInstallmentExpectedClampsIndex(t *testing.T) {
	base := models.Cents(1800)

	assert.Equal(t, base, InstallmentExpected(models.PeriodMonth, base, 0))
	assert.Equal(t, base, InstallmentExpected(models.PeriodMonth, base, -3))
	assert.Equal(t, 10*base, InstallmentExpected(models.PeriodMonth, base, 11))
	assert.Equal(t, 10*base, InstallmentExpected(models.PeriodMonth, base, 100))
}

func TestInstallmentExpectedUnknownPeriodFallsBackToMonthly(t *testing.T) {
	base := models.Cents(500)
	assert.Equal(t, 4*base, InstallmentExpected(models.PeriodUnknown, base, 4))
}

func TestAcademicMonthIndex(t *testing.T) {
	tests := []struct {
		month time.Month
		want  int
	}{
		{time.September, 1},
		{time.October, 2},
		{time.December, 4},
		{time.January, 5},
		{time.February, 6},
		{time.June, 10},
		{time.August, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AcademicMonthIndex(tt.month), "month %s", tt.month)
	}
}

func TestAcademicMonthIndexFromDates(t *testing.T) {
	assert.Equal(t, 2, AcademicMonthIndex(time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC).Month()))
	assert.Equal(t, 1, AcademicMonthIndex(time.Date(2025, time.September, 5, 0, 0, 0, 0, time.UTC).Month()))
	assert.Equal(t, 12, AcademicMonthIndex(time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC).Month()))
}

func TestDueInMonth(t *testing.T) {
	tests := []struct {
		name   string
		period models.BillingPeriod
		month  int
		want   bool
	}{
		{"yearly due in september", models.PeriodYear, 1, true},
		{"yearly not due in october", models.PeriodYear, 2, false},
		{"half-year due at boundary", models.PeriodHalfYear, 5, true},
		{"half-year not due in september", models.PeriodHalfYear, 1, false},
		{"monthly always due", models.PeriodMonth, 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueInMonth(tt.period, tt.month))
		})
	}
}

func TestUnknownPeriodNeverDue(t *testing.T) {
	for month := 1; month <= 12; month++ {
		assert.False(t, DueInMonth(models.PeriodUnknown, month), "academic month %d", month)
	}
}

func TestFullYearLiability(t *testing.T) {
	assert.Equal(t, models.Cents(18000), FullYearLiability(models.PeriodMonth, 1800))
	assert.Equal(t, models.Cents(18000), FullYearLiability(models.PeriodHalfYear, 9000))
	assert.Equal(t, models.Cents(18000), FullYearLiability(models.PeriodYear, 18000))
	assert.Equal(t, models.Cents(0), FullYearLiability(models.PeriodUnknown, 500))
	assert.Equal(t, 0, FullYearMultiplier(models.PeriodUnknown))
}

func TestSchoolYearStart(t *testing.T) {
	assert.Equal(t, 2025, SchoolYearStart(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, SchoolYearStart(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, SchoolYearStart(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2026, SchoolYearStart(time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)))
}

func TestDeadlines(t *testing.T) {
	yearly := Deadlines(models.PeriodYear, 2025)
	assert.Len(t, yearly, 1)
	assert.Equal(t, deadline(2025, time.September, 30), yearly[0])

	half := Deadlines(models.PeriodHalfYear, 2025)
	assert.Len(t, half, 2)
	assert.Equal(t, deadline(2026, time.February, 28), half[1])

	monthly := Deadlines(models.PeriodMonth, 2025)
	assert.Len(t, monthly, 10)
	assert.Equal(t, deadline(2025, time.September, 30), monthly[0])
	assert.Equal(t, deadline(2026, time.June, 30), monthly[9])
	for i := 1; i < len(monthly); i++ {
		assert.True(t, monthly[i].After(monthly[i-1]), "deadlines out of order at %d", i)
	}
}

func TestNextDeadline(t *testing.T) {
	t.Run("before academic year start", func(t *testing.T) {
		_, ok := NextDeadline(models.PeriodMonth, time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC))
		assert.False(t, ok)
	})

	t.Run("mid year monthly", func(t *testing.T) {
		next, ok := NextDeadline(models.PeriodMonth, time.Date(2025, time.October, 10, 0, 0, 0, 0, time.UTC))
		assert.True(t, ok)
		assert.Equal(t, deadline(2025, time.October, 31), next)
	})

	t.Run("yearly after its only deadline", func(t *testing.T) {
		_, ok := NextDeadline(models.PeriodYear, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
		assert.False(t, ok)
	})

	t.Run("exactly on a deadline", func(t *testing.T) {
		next, ok := NextDeadline(models.PeriodHalfYear, deadline(2025, time.September, 30))
		assert.True(t, ok)
		assert.Equal(t, deadline(2025, time.September, 30), next)
	})
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		expected models.Cents
		paid     models.Cents
		want     models.PaymentStatus
	}{
		{"exact payment", 18000, 18000, models.StatusPaid},
		{"overpaid", 18000, 20000, models.StatusOverpaid},
		{"partial", 18000, 9000, models.StatusPartial},
		{"nothing paid", 18000, 0, models.StatusPartial},
		{"zero expected zero paid", 0, 0, models.StatusUnpaid},
		{"zero expected with payment", 0, 100, models.StatusOverpaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.expected, tt.paid))
		})
	}
}
