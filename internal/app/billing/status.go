package billing

import (
	"github.com/dstcrm/dstcrm/internal/app/models"
)

// DeriveStatus classifies a student's payment state from the expected and
// paid totals. Comparison is exact; amounts are integer cents so there is no
// rounding tolerance to account for.
func DeriveStatus(expected, paid models.Cents) models.PaymentStatus {
	switch {
	case paid == expected && expected > 0:
		return models.StatusPaid
	case paid > expected:
		return models.StatusOverpaid
	case paid >= 0 && paid < expected:
		return models.StatusPartial
	default:
		return models.StatusUnpaid
	}
}
