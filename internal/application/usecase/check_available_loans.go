package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/domain/event"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/service"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

const (
	// MsgNoMatchingParams is returned when no lender's coarse criteria match.
	MsgNoMatchingParams = "No matching lender parameters found for your profile"
	// MsgNoProducts is returned when matched lenders have no product catalog.
	MsgNoProducts = "No loan products available from matching lenders"
	// MsgOffersFound is returned alongside a non-empty offer list.
	MsgOffersFound = "Eligible loan products found"
)

// CheckAvailableLoansUseCase runs the full offer search for a borrower:
// match lender parameter sets, join their products, build per-product
// offers, and persist an eligibility record for the winning set.
type CheckAvailableLoansUseCase struct {
	paramsRepo  port.LenderParameterSetRepository
	productRepo port.LoanProductRepository
	recordRepo  port.EligibilityRecordRepository
	engine      *service.EligibilityEngine
	publisher   port.EventPublisher
	validity    time.Duration
}

// NewCheckAvailableLoansUseCase wires dependencies. A non-positive validity
// falls back to the default record lifetime.
func NewCheckAvailableLoansUseCase(
	paramsRepo port.LenderParameterSetRepository,
	productRepo port.LoanProductRepository,
	recordRepo port.EligibilityRecordRepository,
	engine *service.EligibilityEngine,
	publisher port.EventPublisher,
	validity time.Duration,
) *CheckAvailableLoansUseCase {
	if validity <= 0 {
		validity = model.DefaultEligibilityValidity
	}
	return &CheckAvailableLoansUseCase{
		paramsRepo:  paramsRepo,
		productRepo: productRepo,
		recordRepo:  recordRepo,
		engine:      engine,
		publisher:   publisher,
		validity:    validity,
	}
}

// Execute performs one offer search. Every call is a fresh evaluation and,
// when offers exist, a fresh eligibility record; prior records are untouched.
func (uc *CheckAvailableLoansUseCase) Execute(
	ctx context.Context,
	req dto.EligibilityCheckRequest,
) (dto.EligibilityCheckResponse, error) {
	now := time.Now().UTC()

	profile := valueobject.BorrowerProfile{
		BusinessAgeMonths:     req.BusinessAgeMonths,
		HasGST:                req.HasGST,
		CurrentBalance:        req.CurrentBalance,
		AvgMonthlyInflow:      req.AvgMonthlyInflow,
		CreditScore:           req.CreditScore,
		RequestedAmount:       req.RequestedAmount,
		PreferredTenureMonths: req.PreferredTenureMonths,
	}
	if err := validateProfile(profile); err != nil {
		return dto.EligibilityCheckResponse{}, err
	}

	// 1. Coarse filter: parameter sets whose thresholds the profile clears,
	// oldest set first per lender.
	matched, err := uc.paramsRepo.FindMatching(ctx, profile)
	if err != nil {
		return dto.EligibilityCheckResponse{}, fmt.Errorf("find matching params: %w", err)
	}
	if len(matched) == 0 {
		return dto.EligibilityCheckResponse{
			EligibleProducts: []dto.OfferResponse{},
			Message:          MsgNoMatchingParams,
		}, nil
	}

	// Keep one parameter set per lender. FindMatching orders oldest first,
	// so the first set seen for a lender wins ties.
	byLender := make(map[string]model.LenderParameterSet, len(matched))
	lenderIDs := make([]string, 0, len(matched))
	for _, params := range matched {
		if _, seen := byLender[params.LenderID()]; seen {
			continue
		}
		byLender[params.LenderID()] = params
		lenderIDs = append(lenderIDs, params.LenderID())
	}

	// 2. Load the product catalogs of every matched lender in one query.
	products, err := uc.productRepo.FindByLenderIDs(ctx, lenderIDs)
	if err != nil {
		return dto.EligibilityCheckResponse{}, fmt.Errorf("find products: %w", err)
	}
	if len(products) == 0 {
		return dto.EligibilityCheckResponse{
			EligibleProducts: []dto.OfferResponse{},
			Message:          MsgNoProducts,
		}, nil
	}

	// 3. Join by lender: every product a matched lender offers becomes an
	// offer, priced by that lender's kept parameter set.
	offers := make([]dto.OfferResponse, 0, len(products))
	eligible := make([]model.EligibleProduct, 0, len(products))
	var winner *model.LenderParameterSet
	for _, product := range products {
		params, ok := byLender[product.LenderID()]
		if !ok {
			continue
		}
		if winner == nil {
			p := params
			winner = &p
		}

		amount := service.MaxEligibleAmount(params, profile)
		tenure := service.RecommendedTenure(product, profile)

		offers = append(offers, dto.OfferResponse{
			ProductID:               product.ID(),
			ProductName:             product.Name(),
			LoanType:                product.LoanType(),
			InterestRate:            product.InterestRate(),
			MaxEligibleAmount:       amount,
			RecommendedTenureMonths: tenure,
		})
		eligible = append(eligible, model.EligibleProduct{
			ProductID:               product.ID(),
			MaxEligibleAmount:       amount,
			RecommendedTenureMonths: tenure,
		})
	}
	if len(offers) == 0 {
		return dto.EligibilityCheckResponse{
			EligibleProducts: []dto.OfferResponse{},
			Message:          MsgNoProducts,
		}, nil
	}

	// 4. Persist the eligibility record anchoring later applications.
	record, err := model.NewEligibilityRecord(req.BorrowerID, winner.ID(), eligible, now, uc.validity)
	if err != nil {
		return dto.EligibilityCheckResponse{}, fmt.Errorf("create eligibility record: %w", err)
	}
	if err := uc.recordRepo.Save(ctx, record); err != nil {
		return dto.EligibilityCheckResponse{}, fmt.Errorf("save eligibility record: %w", err)
	}

	// 5. Publish the check event. Delivery failure does not void the record.
	evt := event.NewEligibilityChecked(record.ID(), winner.LenderID(), req.BorrowerID, len(offers))
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		slog.WarnContext(ctx, "failed to publish eligibility event",
			"record_id", record.ID(), "error", err)
	}

	return dto.EligibilityCheckResponse{
		EligibleProducts:    offers,
		EligibilityRecordID: record.ID(),
		Message:             MsgOffersFound,
	}, nil
}
