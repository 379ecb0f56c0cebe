package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ArchanSureja/QuickCredit/internal/domain/event"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// MatchedRules is the criteria snapshot stored alongside an application.
type MatchedRules struct {
	CreditScoreMatch bool
	BusinessAgeMatch bool
}

// LoanApplication is an immutable aggregate. Every mutation returns a new copy.
// Once disbursed the application is terminal.
type LoanApplication struct {
	id                  string
	borrowerID          string
	loanProductID       string
	lenderID            string
	limit               decimal.Decimal
	tenureMonths        int
	status              valueobject.ApplicationStatus
	matchedRules        MatchedRules
	disbursement        bool
	eligibilityRecordID string
	processedBy         string
	processedAt         *time.Time
	disbursedBy         string
	disbursedAt         *time.Time
	rejectionReason     string
	createdAt           time.Time
	domainEvents        []event.DomainEvent
}

// NewLoanApplication creates a brand-new application in pending status.
// eligibilityRecordID is empty for admin-created applications.
func NewLoanApplication(
	borrowerID, loanProductID, lenderID string,
	limit decimal.Decimal,
	tenureMonths int,
	matched MatchedRules,
	eligibilityRecordID string,
	now time.Time,
) (LoanApplication, error) {
	if borrowerID == "" {
		return LoanApplication{}, fmt.Errorf("%w: borrower ID is required", ErrValidation)
	}
	if loanProductID == "" {
		return LoanApplication{}, fmt.Errorf("%w: loan product ID is required", ErrValidation)
	}
	if lenderID == "" {
		return LoanApplication{}, fmt.Errorf("%w: lender ID is required", ErrValidation)
	}
	if limit.LessThanOrEqual(decimal.Zero) {
		return LoanApplication{}, fmt.Errorf("%w: loan limit must be positive", ErrValidation)
	}
	if tenureMonths <= 0 {
		return LoanApplication{}, fmt.Errorf("%w: tenure months must be positive", ErrValidation)
	}

	id := uuid.New().String()
	app := LoanApplication{
		id:                  id,
		borrowerID:          borrowerID,
		loanProductID:       loanProductID,
		lenderID:            lenderID,
		limit:               limit,
		tenureMonths:        tenureMonths,
		status:              valueobject.ApplicationStatusPending,
		matchedRules:        matched,
		eligibilityRecordID: eligibilityRecordID,
		createdAt:           now,
	}

	app.domainEvents = append(app.domainEvents, event.NewLoanApplicationSubmitted(
		id, lenderID, borrowerID, loanProductID, limit, tenureMonths,
	))
	return app, nil
}

// ReconstructLoanApplication rebuilds an aggregate from persistence without side-effects.
func ReconstructLoanApplication(
	id, borrowerID, loanProductID, lenderID string,
	limit decimal.Decimal,
	tenureMonths int,
	status valueobject.ApplicationStatus,
	matched MatchedRules,
	disbursement bool,
	eligibilityRecordID string,
	processedBy string, processedAt *time.Time,
	disbursedBy string, disbursedAt *time.Time,
	rejectionReason string,
	createdAt time.Time,
) LoanApplication {
	return LoanApplication{
		id:                  id,
		borrowerID:          borrowerID,
		loanProductID:       loanProductID,
		lenderID:            lenderID,
		limit:               limit,
		tenureMonths:        tenureMonths,
		status:              status,
		matchedRules:        matched,
		disbursement:        disbursement,
		eligibilityRecordID: eligibilityRecordID,
		processedBy:         processedBy,
		processedAt:         processedAt,
		disbursedBy:         disbursedBy,
		disbursedAt:         disbursedAt,
		rejectionReason:     rejectionReason,
		createdAt:           createdAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve transitions pending -> approved and stamps the processing admin.
func (a LoanApplication) Approve(adminID string, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusPending) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusApproved
	next.processedBy = adminID
	next.processedAt = &now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApplicationApproved(
		a.id, a.lenderID, a.borrowerID, adminID,
	))
	return next, nil
}

// Reject transitions pending -> rejected with a reason.
func (a LoanApplication) Reject(adminID, reason string, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusPending) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusRejected
	next.processedBy = adminID
	next.processedAt = &now
	next.rejectionReason = reason
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApplicationRejected(
		a.id, a.lenderID, a.borrowerID, adminID, reason,
	))
	return next, nil
}

// MarkDisbursed transitions approved -> disbursed and records the intent for
// the external fund-transfer process.
func (a LoanApplication) MarkDisbursed(adminID string, now time.Time) (LoanApplication, error) {
	if !a.status.Equal(valueobject.ApplicationStatusApproved) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.ApplicationStatusDisbursed
	next.disbursement = true
	next.disbursedBy = adminID
	next.disbursedAt = &now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDisbursed(
		a.id, a.lenderID, a.borrowerID, a.limit, a.tenureMonths, adminID,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                                { return a.id }
func (a LoanApplication) BorrowerID() string                        { return a.borrowerID }
func (a LoanApplication) LoanProductID() string                     { return a.loanProductID }
func (a LoanApplication) LenderID() string                          { return a.lenderID }
func (a LoanApplication) Limit() decimal.Decimal                    { return a.limit }
func (a LoanApplication) TenureMonths() int                         { return a.tenureMonths }
func (a LoanApplication) Status() valueobject.ApplicationStatus     { return a.status }
func (a LoanApplication) MatchedRules() MatchedRules                { return a.matchedRules }
func (a LoanApplication) Disbursement() bool                        { return a.disbursement }
func (a LoanApplication) EligibilityRecordID() string               { return a.eligibilityRecordID }
func (a LoanApplication) ProcessedBy() string                       { return a.processedBy }
func (a LoanApplication) ProcessedAt() *time.Time                   { return a.processedAt }
func (a LoanApplication) DisbursedBy() string                       { return a.disbursedBy }
func (a LoanApplication) DisbursedAt() *time.Time                   { return a.disbursedAt }
func (a LoanApplication) RejectionReason() string                   { return a.rejectionReason }
func (a LoanApplication) CreatedAt() time.Time                      { return a.createdAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent         { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// CallLog
// ---------------------------------------------------------------------------

// CallLog is one append-only audit entry on an application.
type CallLog struct {
	ID            string
	ApplicationID string
	AuthorID      string
	Notes         string
	CreatedAt     time.Time
}

// NewCallLog creates an audit entry. Allowed in any application status.
func NewCallLog(applicationID, authorID, notes string, now time.Time) (CallLog, error) {
	if applicationID == "" {
		return CallLog{}, fmt.Errorf("%w: application ID is required", ErrValidation)
	}
	if authorID == "" {
		return CallLog{}, fmt.Errorf("%w: author ID is required", ErrValidation)
	}
	if notes == "" {
		return CallLog{}, fmt.Errorf("%w: notes are required", ErrValidation)
	}
	return CallLog{
		ID:            uuid.New().String(),
		ApplicationID: applicationID,
		AuthorID:      authorID,
		Notes:         notes,
		CreatedAt:     now,
	}, nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
