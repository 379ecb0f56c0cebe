package port

import (
	"context"
	"errors"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/domain/event"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrNotFound covers both a genuinely absent resource and one owned by a
	// different tenant; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate signals a uniqueness violation, e.g. a second parameter
	// set for the same lender and loan product.
	ErrDuplicate = errors.New("already exists")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LenderParameterSetRepository persists lender eligibility thresholds.
type LenderParameterSetRepository interface {
	Save(ctx context.Context, params model.LenderParameterSet) error
	Update(ctx context.Context, params model.LenderParameterSet) error
	// FindByID scopes the lookup to the owning lender.
	FindByID(ctx context.Context, lenderID, id string) (model.LenderParameterSet, error)
	FindByLenderID(ctx context.Context, lenderID string) ([]model.LenderParameterSet, error)
	Delete(ctx context.Context, lenderID, id string) error
	// FindMatching returns every parameter set whose thresholds the profile
	// satisfies, ordered oldest-first (created_at, then id) so the recorded
	// first match is deterministic.
	FindMatching(ctx context.Context, profile valueobject.BorrowerProfile) ([]model.LenderParameterSet, error)
}

// LoanProductRepository persists the lender loan catalog.
type LoanProductRepository interface {
	Save(ctx context.Context, product model.LoanProduct) error
	Update(ctx context.Context, product model.LoanProduct) error
	FindByID(ctx context.Context, lenderID, id string) (model.LoanProduct, error)
	GetByID(ctx context.Context, id string) (model.LoanProduct, error)
	FindByLenderID(ctx context.Context, lenderID string) ([]model.LoanProduct, error)
	FindByLenderIDs(ctx context.Context, lenderIDs []string) ([]model.LoanProduct, error)
	Delete(ctx context.Context, lenderID, id string) error
}

// EligibilityRecordRepository persists eligibility check snapshots.
type EligibilityRecordRepository interface {
	Save(ctx context.Context, record model.EligibilityRecord) error
	// FindByIDAndBorrower enforces ownership in the query itself.
	FindByIDAndBorrower(ctx context.Context, id, borrowerID string) (model.EligibilityRecord, error)
}

// StatusTransition carries the audit stamps for an atomic status update.
type StatusTransition struct {
	From            valueobject.ApplicationStatus
	To              valueobject.ApplicationStatus
	ActorID         string
	At              time.Time
	RejectionReason string
}

// LoanApplicationRepository persists loan applications and their audit trail.
type LoanApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, lenderID, id string) (model.LoanApplication, error)
	FindByLenderID(ctx context.Context, lenderID string, status *valueobject.ApplicationStatus) ([]model.LoanApplication, error)
	FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.LoanApplication, error)

	// Transition performs the lifecycle guard as one conditional update:
	// it matches {id, lenderID, status == From} and applies the stamps in a
	// single statement, returning the updated application. An absent or
	// foreign application yields ErrNotFound; a present one in the wrong
	// status yields valueobject.ErrInvalidStatusTransition.
	Transition(ctx context.Context, lenderID, id string, t StatusTransition) (model.LoanApplication, error)

	// AppendCallLog inserts the entry only when the application belongs to
	// the author's lender, in one statement.
	AppendCallLog(ctx context.Context, lenderID string, log model.CallLog) error
	ListCallLogs(ctx context.Context, lenderID, applicationID string) ([]model.CallLog, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
