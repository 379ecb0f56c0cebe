package valueobject

import "github.com/shopspring/decimal"

// BorrowerProfile is the financial snapshot a borrower submits for an
// eligibility check. RequestedAmount and PreferredTenureMonths are optional;
// zero values mean "not specified".
type BorrowerProfile struct {
	BusinessAgeMonths     int
	HasGST                bool
	CurrentBalance        decimal.Decimal
	AvgMonthlyInflow      decimal.Decimal
	CreditScore           int
	RequestedAmount       decimal.Decimal
	PreferredTenureMonths int
}

// HasRequestedAmount reports whether the borrower proposed an amount.
func (p BorrowerProfile) HasRequestedAmount() bool {
	return p.RequestedAmount.IsPositive()
}

// HasPreferredTenure reports whether the borrower proposed a tenure.
func (p BorrowerProfile) HasPreferredTenure() bool {
	return p.PreferredTenureMonths > 0
}
