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

// CreateApplicationUseCase is the back-office path: an admin files an
// application on a borrower's behalf against one of their own products,
// bypassing the eligibility funnel.
type CreateApplicationUseCase struct {
	productRepo port.LoanProductRepository
	appRepo     port.LoanApplicationRepository
	publisher   port.EventPublisher
}

// NewCreateApplicationUseCase wires dependencies.
func NewCreateApplicationUseCase(
	productRepo port.LoanProductRepository,
	appRepo port.LoanApplicationRepository,
	publisher port.EventPublisher,
) *CreateApplicationUseCase {
	return &CreateApplicationUseCase{
		productRepo: productRepo,
		appRepo:     appRepo,
		publisher:   publisher,
	}
}

// Execute creates a pending application for the caller's product.
func (uc *CreateApplicationUseCase) Execute(
	ctx context.Context,
	req dto.CreateApplicationRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	// The product must belong to the calling lender.
	if _, err := uc.productRepo.FindByID(ctx, req.LenderID, req.ProductID); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find product: %w", err)
	}

	// Back-office entries carry the same matched-rules snapshot as funnel
	// applications: the admin vouches for the borrower.
	app, err := model.NewLoanApplication(
		req.BorrowerID, req.ProductID, req.LenderID,
		req.Limit, req.TenureMonths,
		model.MatchedRules{CreditScoreMatch: true, BusinessAgeMatch: true}, "", now,
	)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		slog.WarnContext(ctx, "failed to publish application events",
			"application_id", app.ID(), "error", err)
	}

	return toApplicationResponse(app.ClearEvents()), nil
}

// ApplicationQueriesUseCase serves the read side of the application book for
// both lenders and borrowers.
type ApplicationQueriesUseCase struct {
	appRepo port.LoanApplicationRepository
}

// NewApplicationQueriesUseCase wires dependencies.
func NewApplicationQueriesUseCase(appRepo port.LoanApplicationRepository) *ApplicationQueriesUseCase {
	return &ApplicationQueriesUseCase{appRepo: appRepo}
}

// Get returns one application owned by the calling lender.
func (uc *ApplicationQueriesUseCase) Get(
	ctx context.Context,
	lenderID, applicationID string,
) (dto.LoanApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, lenderID, applicationID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}

// ListForLender returns the lender's application book, optionally filtered
// by status. An unknown status value is a validation error.
func (uc *ApplicationQueriesUseCase) ListForLender(
	ctx context.Context,
	lenderID, status string,
) ([]dto.LoanApplicationResponse, error) {
	var filter *valueobject.ApplicationStatus
	if status != "" {
		st, err := valueobject.NewApplicationStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrValidation, err)
		}
		filter = &st
	}
	apps, err := uc.appRepo.FindByLenderID(ctx, lenderID, filter)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return toApplicationResponses(apps), nil
}

// ListForBorrower returns every application the borrower has filed.
func (uc *ApplicationQueriesUseCase) ListForBorrower(
	ctx context.Context,
	borrowerID string,
) ([]dto.LoanApplicationResponse, error) {
	apps, err := uc.appRepo.FindByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return toApplicationResponses(apps), nil
}

func toApplicationResponses(apps []model.LoanApplication) []dto.LoanApplicationResponse {
	out := make([]dto.LoanApplicationResponse, len(apps))
	for i, app := range apps {
		out[i] = toApplicationResponse(app)
	}
	return out
}
