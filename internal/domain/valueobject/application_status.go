package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the lifecycle stage of a loan application.
// The admin UI additionally shows a "review" filter label; that label has no
// backend transition and is deliberately not a status here.
type ApplicationStatus struct {
	value string
}

const (
	statusPending   = "pending"
	statusApproved  = "approved"
	statusRejected  = "rejected"
	statusDisbursed = "disbursed"
)

var (
	ApplicationStatusPending   = ApplicationStatus{value: statusPending}
	ApplicationStatusApproved  = ApplicationStatus{value: statusApproved}
	ApplicationStatusRejected  = ApplicationStatus{value: statusRejected}
	ApplicationStatusDisbursed = ApplicationStatus{value: statusDisbursed}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	statusPending:   ApplicationStatusPending,
	statusApproved:  ApplicationStatusApproved,
	statusRejected:  ApplicationStatusRejected,
	statusDisbursed: ApplicationStatusDisbursed,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}

// IsTerminal reports whether no further transition is allowed from this status.
func (s ApplicationStatus) IsTerminal() bool {
	return s.value == statusRejected || s.value == statusDisbursed
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
