package payslip

import (
	"fmt"

	paysliperrors "github.com/sahithdaddla/latish13-Payslip-Module/internal/payslip/errors"
)

const (
	collectionEarnings   = "earnings"
	collectionDeductions = "deductions"
)

// ValidateLineItems checks both collections and stops at the first bad item.
// Earnings must not be empty; deductions may be.
func ValidateLineItems(earnings, deductions []LineItem) error {
	if len(earnings) == 0 {
		return paysliperrors.ErrEmptyEarnings
	}
	if err := validateCollection(collectionEarnings, earnings); err != nil {
		return err
	}
	return validateCollection(collectionDeductions, deductions)
}

func validateCollection(collection string, items []LineItem) error {
	for _, item := range items {
		if !ValidAlphabeticName(item.Component) {
			return paysliperrors.Invalid(fmt.Sprintf("invalid %s component: %q", collection, item.Component))
		}
		if item.Amount.IsNegative() {
			return paysliperrors.Invalid(fmt.Sprintf("invalid %s amount for %q, must not be negative", collection, item.Component))
		}
	}
	return nil
}
