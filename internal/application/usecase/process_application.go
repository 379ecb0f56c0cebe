package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ProcessApplicationUseCase records an admin decision on a pending
// application. The transition is a single conditional update: two admins
// racing on the same application cannot both win.
type ProcessApplicationUseCase struct {
	appRepo   port.LoanApplicationRepository
	publisher port.EventPublisher
}

// NewProcessApplicationUseCase wires dependencies.
func NewProcessApplicationUseCase(
	appRepo port.LoanApplicationRepository,
	publisher port.EventPublisher,
) *ProcessApplicationUseCase {
	return &ProcessApplicationUseCase{appRepo: appRepo, publisher: publisher}
}

// Execute approves or rejects a pending application owned by the caller.
func (uc *ProcessApplicationUseCase) Execute(
	ctx context.Context,
	req dto.ProcessApplicationRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	if req.Action != ActionApprove && req.Action != ActionReject {
		return dto.LoanApplicationResponse{}, fmt.Errorf(
			"%w: action must be %q or %q", model.ErrValidation, ActionApprove, ActionReject,
		)
	}

	// 1. Load the aggregate; missing and foreign applications read the same.
	app, err := uc.appRepo.FindByID(ctx, req.LenderID, req.ApplicationID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	// 2. The aggregate decides whether the move is legal and emits the
	// decision event.
	var next model.LoanApplication
	if req.Action == ActionApprove {
		next, err = app.Approve(req.LenderID, now)
	} else {
		next, err = app.Reject(req.LenderID, req.RejectionReason, now)
	}
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("process application: %w", err)
	}

	// 3. Persist behind the status guard. A racing admin loses here even
	// though both passed the aggregate check.
	persisted, err := uc.appRepo.Transition(ctx, req.LenderID, req.ApplicationID, port.StatusTransition{
		From:            valueobject.ApplicationStatusPending,
		To:              next.Status(),
		ActorID:         req.LenderID,
		At:              now,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("transition application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, next.DomainEvents()...); err != nil {
		slog.WarnContext(ctx, "failed to publish decision event",
			"application_id", persisted.ID(), "error", err)
	}

	return toApplicationResponse(persisted), nil
}
