package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

// DisburseLoanUseCase marks an approved application as disbursed and
// publishes the disbursement event consumed by downstream payout systems.
type DisburseLoanUseCase struct {
	appRepo   port.LoanApplicationRepository
	publisher port.EventPublisher
}

// NewDisburseLoanUseCase wires dependencies.
func NewDisburseLoanUseCase(
	appRepo port.LoanApplicationRepository,
	publisher port.EventPublisher,
) *DisburseLoanUseCase {
	return &DisburseLoanUseCase{appRepo: appRepo, publisher: publisher}
}

// Execute disburses an approved application owned by the caller. A second
// disbursement attempt fails on the status guard.
func (uc *DisburseLoanUseCase) Execute(
	ctx context.Context,
	req dto.DisburseLoanRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	app, err := uc.appRepo.FindByID(ctx, req.LenderID, req.ApplicationID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	// The aggregate enforces approved -> disbursed and emits LoanDisbursed.
	next, err := app.MarkDisbursed(req.LenderID, now)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("disburse application: %w", err)
	}

	// The conditional update settles concurrent disbursement attempts.
	persisted, err := uc.appRepo.Transition(ctx, req.LenderID, req.ApplicationID, port.StatusTransition{
		From:    valueobject.ApplicationStatusApproved,
		To:      valueobject.ApplicationStatusDisbursed,
		ActorID: req.LenderID,
		At:      now,
	})
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("transition application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, next.DomainEvents()...); err != nil {
		slog.WarnContext(ctx, "failed to publish disbursement event",
			"application_id", persisted.ID(), "error", err)
	}

	return toApplicationResponse(persisted), nil
}
