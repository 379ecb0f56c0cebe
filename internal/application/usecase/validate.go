package usecase

import (
	"fmt"

	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

func validateProfile(p valueobject.BorrowerProfile) error {
	if p.BusinessAgeMonths < 0 {
		return fmt.Errorf("%w: business age months cannot be negative", model.ErrValidation)
	}
	if p.CreditScore < 0 || p.CreditScore > model.CreditScoreCeiling {
		return fmt.Errorf("%w: credit score must be between 0 and %d", model.ErrValidation, model.CreditScoreCeiling)
	}
	if p.CurrentBalance.IsNegative() {
		return fmt.Errorf("%w: current balance cannot be negative", model.ErrValidation)
	}
	if p.AvgMonthlyInflow.IsNegative() {
		return fmt.Errorf("%w: monthly inflow cannot be negative", model.ErrValidation)
	}
	if p.RequestedAmount.IsNegative() {
		return fmt.Errorf("%w: requested amount cannot be negative", model.ErrValidation)
	}
	if p.PreferredTenureMonths < 0 {
		return fmt.Errorf("%w: preferred tenure cannot be negative", model.ErrValidation)
	}
	return nil
}
