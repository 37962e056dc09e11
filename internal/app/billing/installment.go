// Package billing contains the pure payment-policy logic: expected amounts,
// academic-calendar gating, payment status derivation and deadline schedules.
// Two distinct expected-amount policies coexist: the installment heuristic
// used by the reconciliation report and the academic-calendar rule used by
// the statistics aggregator. They are intentionally kept separate.
package billing

import (
	"github.com/dstcrm/dstcrm/internal/app/models"
)

const (
	// MinInstallment and MaxInstallment bound the installment index.
	MinInstallment = 1
	MaxInstallment = 10
)

// ClampInstallment forces an installment index into the valid 1..10 range.
func ClampInstallment(i int) int {
	if i < MinInstallment {
		return MinInstallment
	}
	if i > MaxInstallment {
		return MaxInstallment
	}
	return i
}

// InstallmentExpected computes the amount a student is expected to have paid
// after i billing cycles, given their base amount and billing period.
// A yearly payer owes the full base from the first cycle, a half-yearly payer
// owes one half-payment through cycle 5 and two afterwards, and a monthly
// payer (or a student with an unrecognized period) owes the base amount per
// elapsed cycle.
func InstallmentExpected(period models.BillingPeriod, base models.Cents, i int) models.Cents {
	i = ClampInstallment(i)
	switch period {
	case models.PeriodYear:
		return base
	case models.PeriodHalfYear:
		if i <= 5 {
			return base
		}
		return 2 * base
	default:
		return base * models.Cents(i)
	}
}
