package service

import (
	"github.com/shopspring/decimal"

	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// EligibilityEngine – domain service for lender rule matching
// ---------------------------------------------------------------------------

// LimitRange is the lender-configured recommended credit band.
type LimitRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// EligibilityBreakdown is the per-criterion result of matching a borrower
// profile against one parameter set. RecommendedLimit is nil unless every
// criterion passed.
type EligibilityBreakdown struct {
	BusinessAge      bool
	GST              bool
	Balance          bool
	Inflow           bool
	CreditScore      bool
	Overall          bool
	RecommendedLimit *LimitRange
}

// EligibilityEngine encapsulates the lender eligibility rule set. It is pure:
// no I/O, no side effects, deterministic for a given input.
type EligibilityEngine struct{}

// NewEligibilityEngine returns a new engine instance.
func NewEligibilityEngine() *EligibilityEngine {
	return &EligibilityEngine{}
}

// Evaluate computes all five criteria independently and AND-composes them.
// GST is an exact match against the lender's requirement, not "at least".
func (e *EligibilityEngine) Evaluate(profile valueobject.BorrowerProfile, params model.LenderParameterSet) EligibilityBreakdown {
	breakdown := EligibilityBreakdown{
		BusinessAge: profile.BusinessAgeMonths >= params.MinBusinessAgeMonths(),
		GST:         profile.HasGST == params.GSTRequired(),
		Balance:     profile.CurrentBalance.GreaterThanOrEqual(params.MinMaintainedBalance()),
		Inflow:      profile.AvgMonthlyInflow.GreaterThanOrEqual(params.MinMonthlyInflow()),
		CreditScore: profile.CreditScore >= params.MinCreditScore() && profile.CreditScore <= params.MaxCreditScore(),
	}

	breakdown.Overall = breakdown.BusinessAge &&
		breakdown.GST &&
		breakdown.Balance &&
		breakdown.Inflow &&
		breakdown.CreditScore

	if breakdown.Overall {
		breakdown.RecommendedLimit = &LimitRange{
			Min: params.MinRecommendedLimit(),
			Max: params.MaxRecommendedLimit(),
		}
	}

	return breakdown
}

// MaxEligibleAmount applies the clamping law for one matched parameter set:
// the requested amount caps the recommendation, the lender's ceiling is the
// hard bound. Requests above the ceiling are clamped, never rejected here.
func MaxEligibleAmount(params model.LenderParameterSet, profile valueobject.BorrowerProfile) decimal.Decimal {
	ceiling := params.MaxRecommendedLimit()
	if !profile.HasRequestedAmount() {
		return ceiling
	}
	return decimal.Min(ceiling, profile.RequestedAmount)
}

// DefaultTenureCeilingMonths is the system default when the borrower does not
// propose a tenure.
const DefaultTenureCeilingMonths = 36

// RecommendedTenure picks the borrower's preferred tenure, falling back to
// the product's maximum capped at the system default ceiling.
func RecommendedTenure(product model.LoanProduct, profile valueobject.BorrowerProfile) int {
	if profile.HasPreferredTenure() {
		return profile.PreferredTenureMonths
	}
	if product.MaxTenureMonths() < DefaultTenureCeilingMonths {
		return product.MaxTenureMonths()
	}
	return DefaultTenureCeilingMonths
}
