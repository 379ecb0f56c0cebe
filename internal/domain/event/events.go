package event

import (
	"github.com/shopspring/decimal"

	"github.com/ArchanSureja/QuickCredit/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Eligibility events
// ---------------------------------------------------------------------------

// EligibilityChecked is raised when an eligibility check produces offers and
// a record is persisted.
type EligibilityChecked struct {
	events.BaseEvent
	BorrowerID   string `json:"borrower_id"`
	ProductCount int    `json:"product_count"`
}

func NewEligibilityChecked(recordID, lenderID, borrowerID string, productCount int) EligibilityChecked {
	return EligibilityChecked{
		BaseEvent:    events.NewBaseEvent("lending.eligibility.checked", recordID, "EligibilityRecord", lenderID),
		BorrowerID:   borrowerID,
		ProductCount: productCount,
	}
}

// ---------------------------------------------------------------------------
// Loan application events
// ---------------------------------------------------------------------------

// LoanApplicationSubmitted is raised when a new application enters the system.
type LoanApplicationSubmitted struct {
	events.BaseEvent
	BorrowerID    string          `json:"borrower_id"`
	LoanProductID string          `json:"loan_product_id"`
	Limit         decimal.Decimal `json:"limit"`
	TenureMonths  int             `json:"tenure_months"`
}

func NewLoanApplicationSubmitted(applicationID, lenderID, borrowerID, loanProductID string, limit decimal.Decimal, tenureMonths int) LoanApplicationSubmitted {
	return LoanApplicationSubmitted{
		BaseEvent:     events.NewBaseEvent("lending.loan_application.submitted", applicationID, "LoanApplication", lenderID),
		BorrowerID:    borrowerID,
		LoanProductID: loanProductID,
		Limit:         limit,
		TenureMonths:  tenureMonths,
	}
}

// LoanApplicationApproved is raised when a lender admin approves an application.
type LoanApplicationApproved struct {
	events.BaseEvent
	BorrowerID  string `json:"borrower_id"`
	ProcessedBy string `json:"processed_by"`
}

func NewLoanApplicationApproved(applicationID, lenderID, borrowerID, processedBy string) LoanApplicationApproved {
	return LoanApplicationApproved{
		BaseEvent:   events.NewBaseEvent("lending.loan_application.approved", applicationID, "LoanApplication", lenderID),
		BorrowerID:  borrowerID,
		ProcessedBy: processedBy,
	}
}

// LoanApplicationRejected is raised when a lender admin rejects an application.
type LoanApplicationRejected struct {
	events.BaseEvent
	BorrowerID  string `json:"borrower_id"`
	ProcessedBy string `json:"processed_by"`
	Reason      string `json:"reason"`
}

func NewLoanApplicationRejected(applicationID, lenderID, borrowerID, processedBy, reason string) LoanApplicationRejected {
	return LoanApplicationRejected{
		BaseEvent:   events.NewBaseEvent("lending.loan_application.rejected", applicationID, "LoanApplication", lenderID),
		BorrowerID:  borrowerID,
		ProcessedBy: processedBy,
		Reason:      reason,
	}
}

// LoanDisbursed marks the funds-released intent. An external consumer picks
// this up to run the actual transfer and notify the borrower.
type LoanDisbursed struct {
	events.BaseEvent
	BorrowerID   string          `json:"borrower_id"`
	Limit        decimal.Decimal `json:"limit"`
	TenureMonths int             `json:"tenure_months"`
	DisbursedBy  string          `json:"disbursed_by"`
}

func NewLoanDisbursed(applicationID, lenderID, borrowerID string, limit decimal.Decimal, tenureMonths int, disbursedBy string) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:    events.NewBaseEvent("lending.loan.disbursed", applicationID, "LoanApplication", lenderID),
		BorrowerID:   borrowerID,
		Limit:        limit,
		TenureMonths: tenureMonths,
		DisbursedBy:  disbursedBy,
	}
}
