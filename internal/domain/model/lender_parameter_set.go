package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LenderParameterSet aggregate root
// ---------------------------------------------------------------------------

// Credit scores follow the Indian bureau band.
const (
	CreditScoreFloor   = 300
	CreditScoreCeiling = 900
)

// LenderParameterSet holds the eligibility thresholds a lender configures for
// one of its loan products. Owned and mutated only by the issuing lender.
type LenderParameterSet struct {
	id                   string
	lenderID             string
	loanProductID        string
	minBusinessAgeMonths int
	gstRequired          bool
	minMaintainedBalance decimal.Decimal
	maxOutflowRatio      decimal.Decimal
	minMonthlyInflow     decimal.Decimal
	minRecommendedLimit  decimal.Decimal
	maxRecommendedLimit  decimal.Decimal
	businessMix          valueobject.BusinessMixCategory
	minCreditScore       int
	maxCreditScore       int
	createdAt            time.Time
	updatedAt            time.Time
}

// LenderParameterSetAttrs carries the caller-supplied threshold values for
// construction and update.
type LenderParameterSetAttrs struct {
	MinBusinessAgeMonths int
	GSTRequired          bool
	MinMaintainedBalance decimal.Decimal
	MaxOutflowRatio      decimal.Decimal
	MinMonthlyInflow     decimal.Decimal
	MinRecommendedLimit  decimal.Decimal
	MaxRecommendedLimit  decimal.Decimal
	BusinessMix          valueobject.BusinessMixCategory
	MinCreditScore       int
	MaxCreditScore       int
}

// NewLenderParameterSet creates a new parameter set, enforcing every write-time
// invariant from the product rules.
func NewLenderParameterSet(lenderID, loanProductID string, attrs LenderParameterSetAttrs, now time.Time) (LenderParameterSet, error) {
	if lenderID == "" {
		return LenderParameterSet{}, fmt.Errorf("%w: lender ID is required", ErrValidation)
	}
	if loanProductID == "" {
		return LenderParameterSet{}, fmt.Errorf("%w: loan product ID is required", ErrValidation)
	}
	if err := validateAttrs(attrs); err != nil {
		return LenderParameterSet{}, err
	}

	return LenderParameterSet{
		id:                   uuid.New().String(),
		lenderID:             lenderID,
		loanProductID:        loanProductID,
		minBusinessAgeMonths: attrs.MinBusinessAgeMonths,
		gstRequired:          attrs.GSTRequired,
		minMaintainedBalance: attrs.MinMaintainedBalance,
		maxOutflowRatio:      attrs.MaxOutflowRatio,
		minMonthlyInflow:     attrs.MinMonthlyInflow,
		minRecommendedLimit:  attrs.MinRecommendedLimit,
		maxRecommendedLimit:  attrs.MaxRecommendedLimit,
		businessMix:          attrs.BusinessMix,
		minCreditScore:       attrs.MinCreditScore,
		maxCreditScore:       attrs.MaxCreditScore,
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

func validateAttrs(attrs LenderParameterSetAttrs) error {
	if attrs.MinBusinessAgeMonths < 0 {
		return fmt.Errorf("%w: minimum business age cannot be negative", ErrValidation)
	}
	if attrs.MinMaintainedBalance.IsNegative() {
		return fmt.Errorf("%w: minimum maintained balance cannot be negative", ErrValidation)
	}
	if attrs.MinMonthlyInflow.IsNegative() {
		return fmt.Errorf("%w: minimum monthly inflow cannot be negative", ErrValidation)
	}
	if attrs.MaxOutflowRatio.IsNegative() || attrs.MaxOutflowRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: max outflow ratio must be between 0 and 1", ErrValidation)
	}
	if attrs.MinRecommendedLimit.IsNegative() {
		return fmt.Errorf("%w: minimum recommended limit cannot be negative", ErrValidation)
	}
	if attrs.MaxRecommendedLimit.LessThan(attrs.MinRecommendedLimit) {
		return fmt.Errorf("%w: maximum recommended limit must not be below the minimum", ErrValidation)
	}
	if attrs.BusinessMix.IsZero() {
		return fmt.Errorf("%w: business mix category is required", ErrValidation)
	}
	if attrs.MinCreditScore < CreditScoreFloor || attrs.MinCreditScore > CreditScoreCeiling {
		return fmt.Errorf("%w: minimum credit score must be between %d and %d", ErrValidation, CreditScoreFloor, CreditScoreCeiling)
	}
	if attrs.MaxCreditScore < CreditScoreFloor || attrs.MaxCreditScore > CreditScoreCeiling {
		return fmt.Errorf("%w: maximum credit score must be between %d and %d", ErrValidation, CreditScoreFloor, CreditScoreCeiling)
	}
	if attrs.MaxCreditScore < attrs.MinCreditScore {
		return fmt.Errorf("%w: maximum credit score must not be below the minimum", ErrValidation)
	}
	return nil
}

// ReconstructLenderParameterSet rebuilds the aggregate from persistence
// without revalidation or side-effects.
func ReconstructLenderParameterSet(
	id, lenderID, loanProductID string,
	attrs LenderParameterSetAttrs,
	createdAt, updatedAt time.Time,
) LenderParameterSet {
	return LenderParameterSet{
		id:                   id,
		lenderID:             lenderID,
		loanProductID:        loanProductID,
		minBusinessAgeMonths: attrs.MinBusinessAgeMonths,
		gstRequired:          attrs.GSTRequired,
		minMaintainedBalance: attrs.MinMaintainedBalance,
		maxOutflowRatio:      attrs.MaxOutflowRatio,
		minMonthlyInflow:     attrs.MinMonthlyInflow,
		minRecommendedLimit:  attrs.MinRecommendedLimit,
		maxRecommendedLimit:  attrs.MaxRecommendedLimit,
		businessMix:          attrs.BusinessMix,
		minCreditScore:       attrs.MinCreditScore,
		maxCreditScore:       attrs.MaxCreditScore,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// WithAttrs returns a copy carrying the new thresholds. The same write-time
// invariants apply as on creation.
func (s LenderParameterSet) WithAttrs(attrs LenderParameterSetAttrs, now time.Time) (LenderParameterSet, error) {
	if err := validateAttrs(attrs); err != nil {
		return s, err
	}
	next := s
	next.minBusinessAgeMonths = attrs.MinBusinessAgeMonths
	next.gstRequired = attrs.GSTRequired
	next.minMaintainedBalance = attrs.MinMaintainedBalance
	next.maxOutflowRatio = attrs.MaxOutflowRatio
	next.minMonthlyInflow = attrs.MinMonthlyInflow
	next.minRecommendedLimit = attrs.MinRecommendedLimit
	next.maxRecommendedLimit = attrs.MaxRecommendedLimit
	next.businessMix = attrs.BusinessMix
	next.minCreditScore = attrs.MinCreditScore
	next.maxCreditScore = attrs.MaxCreditScore
	next.updatedAt = now
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (s LenderParameterSet) ID() string                            { return s.id }
func (s LenderParameterSet) LenderID() string                      { return s.lenderID }
func (s LenderParameterSet) LoanProductID() string                 { return s.loanProductID }
func (s LenderParameterSet) MinBusinessAgeMonths() int             { return s.minBusinessAgeMonths }
func (s LenderParameterSet) GSTRequired() bool                     { return s.gstRequired }
func (s LenderParameterSet) MinMaintainedBalance() decimal.Decimal { return s.minMaintainedBalance }
func (s LenderParameterSet) MaxOutflowRatio() decimal.Decimal      { return s.maxOutflowRatio }
func (s LenderParameterSet) MinMonthlyInflow() decimal.Decimal     { return s.minMonthlyInflow }
func (s LenderParameterSet) MinRecommendedLimit() decimal.Decimal  { return s.minRecommendedLimit }
func (s LenderParameterSet) MaxRecommendedLimit() decimal.Decimal  { return s.maxRecommendedLimit }
func (s LenderParameterSet) BusinessMix() valueobject.BusinessMixCategory {
	return s.businessMix
}
func (s LenderParameterSet) MinCreditScore() int  { return s.minCreditScore }
func (s LenderParameterSet) MaxCreditScore() int  { return s.maxCreditScore }
func (s LenderParameterSet) CreatedAt() time.Time { return s.createdAt }
func (s LenderParameterSet) UpdatedAt() time.Time { return s.updatedAt }
