package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
)

// ErrEligibilityExpired is returned when expiry enforcement is on and the
// referenced record is past its validity window.
var ErrEligibilityExpired = errors.New("eligibility record has expired")

// ApplyForLoanUseCase converts an eligibility offer into a pending loan
// application. The record is the sole authority on what the borrower may
// request: product membership and the amount ceiling both come from it.
type ApplyForLoanUseCase struct {
	recordRepo    port.EligibilityRecordRepository
	productRepo   port.LoanProductRepository
	appRepo       port.LoanApplicationRepository
	publisher     port.EventPublisher
	enforceExpiry bool
}

// NewApplyForLoanUseCase wires dependencies.
func NewApplyForLoanUseCase(
	recordRepo port.EligibilityRecordRepository,
	productRepo port.LoanProductRepository,
	appRepo port.LoanApplicationRepository,
	publisher port.EventPublisher,
	enforceExpiry bool,
) *ApplyForLoanUseCase {
	return &ApplyForLoanUseCase{
		recordRepo:    recordRepo,
		productRepo:   productRepo,
		appRepo:       appRepo,
		publisher:     publisher,
		enforceExpiry: enforceExpiry,
	}
}

// Execute creates a pending application from an offer the borrower holds.
func (uc *ApplyForLoanUseCase) Execute(
	ctx context.Context,
	req dto.ApplyForLoanRequest,
) (dto.LoanApplicationResponse, error) {
	now := time.Now().UTC()

	if req.EligibilityRecordID == "" {
		return dto.LoanApplicationResponse{}, fmt.Errorf("%w: eligibility ID is required", model.ErrValidation)
	}
	if req.ProductID == "" {
		return dto.LoanApplicationResponse{}, fmt.Errorf("%w: product ID is required", model.ErrValidation)
	}

	// 1. The record must exist and belong to the caller. Missing and
	// foreign records are indistinguishable to the borrower.
	record, err := uc.recordRepo.FindByIDAndBorrower(ctx, req.EligibilityRecordID, req.BorrowerID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("find eligibility record: %w", err)
	}

	if uc.enforceExpiry && record.Expired(now) {
		return dto.LoanApplicationResponse{}, ErrEligibilityExpired
	}

	// 2. The requested product must be one of the record's offers.
	offer, ok := record.Offer(req.ProductID)
	if !ok {
		return dto.LoanApplicationResponse{}, fmt.Errorf("%w: product is not part of the eligibility record", model.ErrValidation)
	}

	// 3. The requested amount may not exceed the offer's ceiling.
	if !req.Amount.IsPositive() {
		return dto.LoanApplicationResponse{}, fmt.Errorf("%w: amount must be positive", model.ErrValidation)
	}
	if req.Amount.GreaterThan(offer.MaxEligibleAmount) {
		return dto.LoanApplicationResponse{}, fmt.Errorf(
			"%w: requested amount %s exceeds eligible amount %s",
			model.ErrValidation, req.Amount.String(), offer.MaxEligibleAmount.String(),
		)
	}

	tenure := req.TenureMonths
	if tenure <= 0 {
		tenure = offer.RecommendedTenureMonths
	}

	// 4. The application lands on the lender that owns the product. A
	// record's offers can span several lenders, so the winning set's lender
	// is not authoritative here.
	product, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return dto.LoanApplicationResponse{}, fmt.Errorf("resolve product lender: %w", err)
	}

	app, err := model.NewLoanApplication(
		req.BorrowerID, req.ProductID, product.LenderID(),
		req.Amount, tenure,
		model.MatchedRules{CreditScoreMatch: true, BusinessAgeMatch: true},
		record.ID(), now,
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
