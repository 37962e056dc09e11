package models

import "strings"

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleTeam    RoleType = "team"
	RoleStudent RoleType = "student"
)

// IsValid reports whether the role is one of the known roles.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeam, RoleStudent:
		return true
	}
	return false
}

// BillingPeriod determines how a student's base fee recurs.
type BillingPeriod string

const (
	PeriodYear     BillingPeriod = "year"
	PeriodHalfYear BillingPeriod = "half-year"
	PeriodMonth    BillingPeriod = "month"
	PeriodUnknown  BillingPeriod = ""
)

// ParseBillingPeriod normalizes the free-text period labels found in import
// files ("Year", "halfyear", "half year", "Monthly", ...) into the canonical
// set. Unrecognized labels map to PeriodUnknown; callers decide the fallback.
func ParseBillingPeriod(raw string) BillingPeriod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "year", "yearly":
		return PeriodYear
	case "half-year", "halfyear", "half year":
		return PeriodHalfYear
	case "month", "monthly":
		return PeriodMonth
	}
	return PeriodUnknown
}

// MatchStatus classifies a payment's resolution state relative to students.
type MatchStatus string

const (
	MatchStatusMatched   MatchStatus = "matched"
	MatchStatusUnmatched MatchStatus = "unmatched"
	MatchStatusAmbiguous MatchStatus = "ambiguous"
)

// PaymentStatus is the derived expected-vs-paid classification of a student.
type PaymentStatus string

const (
	StatusPaid     PaymentStatus = "paid"
	StatusPartial  PaymentStatus = "partial"
	StatusUnpaid   PaymentStatus = "unpaid"
	StatusOverpaid PaymentStatus = "overpaid"
)

// NormalizeVS trims a variable symbol. The VS stays a string throughout the
// system: leading zeros are significant and must never be lost to a numeric
// conversion.
func NormalizeVS(vs string) string {
	return strings.TrimSpace(vs)
}
