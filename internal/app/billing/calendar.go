package billing

import (
	"time"

	"github.com/dstcrm/dstcrm/internal/app/models"
)

// AcademicMonthIndex maps a calendar month to its 1-based offset from
// September: September is 1, October is 2, August is 12.
func AcademicMonthIndex(m time.Month) int {
	return (int(m)-9+12)%12 + 1
}

// DueInMonth reports whether a student's base amount counts as due in the
// given academic month. Monthly payers are always due, half-yearly payers are
// due only in academic month 5 (the January/February boundary) and yearly
// payers only in academic month 1 (September). Unknown periods are never due
// and contribute nothing to the expected sum.
func DueInMonth(period models.BillingPeriod, academicMonth int) bool {
	switch period {
	case models.PeriodYear:
		return academicMonth == 1
	case models.PeriodHalfYear:
		return academicMonth == 5
	case models.PeriodMonth:
		return true
	default:
		return false
	}
}

// FullYearMultiplier returns the number of payments a period produces over a
// full academic year: 10 for monthly, 2 for half-yearly, 1 for yearly.
// Unknown periods carry no liability and return 0.
func FullYearMultiplier(period models.BillingPeriod) int {
	switch period {
	case models.PeriodMonth:
		return 10
	case models.PeriodHalfYear:
		return 2
	case models.PeriodYear:
		return 1
	default:
		return 0
	}
}

// FullYearLiability is a student's total liability over a full academic year.
func FullYearLiability(period models.BillingPeriod, base models.Cents) models.Cents {
	return base * models.Cents(FullYearMultiplier(period))
}

// SchoolYearStart returns the calendar year in which the academic year
// containing the given date begins. A date in September through December
// belongs to the academic year starting that same year; January through
// August belong to the year that started the previous September.
func SchoolYearStart(at time.Time) int {
	if at.Month() >= time.September {
		return at.Year()
	}
	return at.Year() - 1
}

func deadline(year int, m time.Month, day int) time.Time {
	return time.Date(year, m, day, 12, 0, 0, 0, time.UTC)
}

// Deadlines returns the payment due dates for a billing period within the
// academic year starting in schoolYearStart, in chronological order. Monthly
// payers have ten deadlines from September 30 through June 30; half-yearly
// payers two; yearly payers one.
func Deadlines(period models.BillingPeriod, schoolYearStart int) []time.Time {
	y0 := schoolYearStart
	y1 := schoolYearStart + 1

	sep30 := deadline(y0, time.September, 30)

	switch period {
	case models.PeriodHalfYear:
		return []time.Time{
			sep30,
			deadline(y1, time.February, 28),
		}
	case models.PeriodMonth:
		return []time.Time{
			sep30,
			deadline(y0, time.October, 31),
			deadline(y0, time.November, 30),
			deadline(y0, time.December, 31),
			deadline(y1, time.January, 31),
			deadline(y1, time.February, 28),
			deadline(y1, time.March, 31),
			deadline(y1, time.April, 30),
			deadline(y1, time.May, 31),
			deadline(y1, time.June, 30),
		}
	default:
		return []time.Time{sep30}
	}
}

// NextDeadline returns the first deadline on or after the given date within
// the current academic year. The second return value is false when no
// deadline remains (everything for the year is past due) or when the academic
// year has not started yet.
func NextDeadline(period models.BillingPeriod, at time.Time) (time.Time, bool) {
	start := SchoolYearStart(at)
	sep1 := deadline(start, time.September, 1)
	if at.Before(sep1) {
		return time.Time{}, false
	}
	for _, d := range Deadlines(period, start) {
		if !d.Before(at) {
			return d, true
		}
	}
	return time.Time{}, false
}
