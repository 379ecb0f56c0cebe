package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// LoanProduct aggregate root (lender catalog)
// ---------------------------------------------------------------------------

// LoanProduct is a lender-owned catalog entry describing a loan offering.
type LoanProduct struct {
	id                   string
	lenderID             string
	name                 string
	description          string
	loanType             string
	targetSegment        string
	minTenureMonths      int
	maxTenureMonths      int
	minAmount            decimal.Decimal
	maxAmount            decimal.Decimal
	interestRate         decimal.Decimal
	processingFeePercent decimal.Decimal
	prepaymentPenalty    decimal.Decimal
	latePaymentFee       decimal.Decimal
	gracePeriodDays      int
	requiredDocuments    []string
	createdAt            time.Time
	updatedAt            time.Time
}

// LoanProductAttrs carries caller-supplied product terms.
type LoanProductAttrs struct {
	Name                 string
	Description          string
	LoanType             string
	TargetSegment        string
	MinTenureMonths      int
	MaxTenureMonths      int
	MinAmount            decimal.Decimal
	MaxAmount            decimal.Decimal
	InterestRate         decimal.Decimal
	ProcessingFeePercent decimal.Decimal
	PrepaymentPenalty    decimal.Decimal
	LatePaymentFee       decimal.Decimal
	GracePeriodDays      int
	RequiredDocuments    []string
}

// NewLoanProduct creates a catalog entry owned by the given lender.
func NewLoanProduct(lenderID string, attrs LoanProductAttrs, now time.Time) (LoanProduct, error) {
	if lenderID == "" {
		return LoanProduct{}, fmt.Errorf("%w: lender ID is required", ErrValidation)
	}
	if err := validateProductAttrs(attrs); err != nil {
		return LoanProduct{}, err
	}

	return LoanProduct{
		id:                   uuid.New().String(),
		lenderID:             lenderID,
		name:                 attrs.Name,
		description:          attrs.Description,
		loanType:             attrs.LoanType,
		targetSegment:        attrs.TargetSegment,
		minTenureMonths:      attrs.MinTenureMonths,
		maxTenureMonths:      attrs.MaxTenureMonths,
		minAmount:            attrs.MinAmount,
		maxAmount:            attrs.MaxAmount,
		interestRate:         attrs.InterestRate,
		processingFeePercent: attrs.ProcessingFeePercent,
		prepaymentPenalty:    attrs.PrepaymentPenalty,
		latePaymentFee:       attrs.LatePaymentFee,
		gracePeriodDays:      attrs.GracePeriodDays,
		requiredDocuments:    copyDocs(attrs.RequiredDocuments),
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

func validateProductAttrs(attrs LoanProductAttrs) error {
	if attrs.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if attrs.LoanType == "" {
		return fmt.Errorf("%w: loan type is required", ErrValidation)
	}
	if attrs.MinTenureMonths <= 0 {
		return fmt.Errorf("%w: minimum tenure must be positive", ErrValidation)
	}
	if attrs.MaxTenureMonths < attrs.MinTenureMonths {
		return fmt.Errorf("%w: maximum tenure must not be below the minimum", ErrValidation)
	}
	if !attrs.MinAmount.IsPositive() {
		return fmt.Errorf("%w: minimum amount must be positive", ErrValidation)
	}
	if attrs.MaxAmount.LessThan(attrs.MinAmount) {
		return fmt.Errorf("%w: maximum amount must not be below the minimum", ErrValidation)
	}
	if attrs.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative", ErrValidation)
	}
	return nil
}

// ReconstructLoanProduct rebuilds the aggregate from persistence.
func ReconstructLoanProduct(id, lenderID string, attrs LoanProductAttrs, createdAt, updatedAt time.Time) LoanProduct {
	return LoanProduct{
		id:                   id,
		lenderID:             lenderID,
		name:                 attrs.Name,
		description:          attrs.Description,
		loanType:             attrs.LoanType,
		targetSegment:        attrs.TargetSegment,
		minTenureMonths:      attrs.MinTenureMonths,
		maxTenureMonths:      attrs.MaxTenureMonths,
		minAmount:            attrs.MinAmount,
		maxAmount:            attrs.MaxAmount,
		interestRate:         attrs.InterestRate,
		processingFeePercent: attrs.ProcessingFeePercent,
		prepaymentPenalty:    attrs.PrepaymentPenalty,
		latePaymentFee:       attrs.LatePaymentFee,
		gracePeriodDays:      attrs.GracePeriodDays,
		requiredDocuments:    copyDocs(attrs.RequiredDocuments),
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// WithAttrs returns a copy carrying updated product terms.
func (p LoanProduct) WithAttrs(attrs LoanProductAttrs, now time.Time) (LoanProduct, error) {
	if err := validateProductAttrs(attrs); err != nil {
		return p, err
	}
	next := p
	next.name = attrs.Name
	next.description = attrs.Description
	next.loanType = attrs.LoanType
	next.targetSegment = attrs.TargetSegment
	next.minTenureMonths = attrs.MinTenureMonths
	next.maxTenureMonths = attrs.MaxTenureMonths
	next.minAmount = attrs.MinAmount
	next.maxAmount = attrs.MaxAmount
	next.interestRate = attrs.InterestRate
	next.processingFeePercent = attrs.ProcessingFeePercent
	next.prepaymentPenalty = attrs.PrepaymentPenalty
	next.latePaymentFee = attrs.LatePaymentFee
	next.gracePeriodDays = attrs.GracePeriodDays
	next.requiredDocuments = copyDocs(attrs.RequiredDocuments)
	next.updatedAt = now
	return next, nil
}

func copyDocs(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (p LoanProduct) ID() string                            { return p.id }
func (p LoanProduct) LenderID() string                      { return p.lenderID }
func (p LoanProduct) Name() string                          { return p.name }
func (p LoanProduct) Description() string                   { return p.description }
func (p LoanProduct) LoanType() string                      { return p.loanType }
func (p LoanProduct) TargetSegment() string                 { return p.targetSegment }
func (p LoanProduct) MinTenureMonths() int                  { return p.minTenureMonths }
func (p LoanProduct) MaxTenureMonths() int                  { return p.maxTenureMonths }
func (p LoanProduct) MinAmount() decimal.Decimal            { return p.minAmount }
func (p LoanProduct) MaxAmount() decimal.Decimal            { return p.maxAmount }
func (p LoanProduct) InterestRate() decimal.Decimal         { return p.interestRate }
func (p LoanProduct) ProcessingFeePercent() decimal.Decimal { return p.processingFeePercent }
func (p LoanProduct) PrepaymentPenalty() decimal.Decimal    { return p.prepaymentPenalty }
func (p LoanProduct) LatePaymentFee() decimal.Decimal       { return p.latePaymentFee }
func (p LoanProduct) GracePeriodDays() int                  { return p.gracePeriodDays }
func (p LoanProduct) RequiredDocuments() []string           { return copyDocs(p.requiredDocuments) }
func (p LoanProduct) CreatedAt() time.Time                  { return p.createdAt }
func (p LoanProduct) UpdatedAt() time.Time                  { return p.updatedAt }
