package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/service"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

// ManageLenderParamsUseCase covers the lender-side administration of
// eligibility parameter sets. Every operation is scoped to the calling
// lender; another lender's sets are invisible.
type ManageLenderParamsUseCase struct {
	paramsRepo  port.LenderParameterSetRepository
	productRepo port.LoanProductRepository
	engine      *service.EligibilityEngine
}

// NewManageLenderParamsUseCase wires dependencies.
func NewManageLenderParamsUseCase(
	paramsRepo port.LenderParameterSetRepository,
	productRepo port.LoanProductRepository,
	engine *service.EligibilityEngine,
) *ManageLenderParamsUseCase {
	return &ManageLenderParamsUseCase{
		paramsRepo:  paramsRepo,
		productRepo: productRepo,
		engine:      engine,
	}
}

// Create registers a new parameter set for one of the caller's products.
func (uc *ManageLenderParamsUseCase) Create(
	ctx context.Context,
	req dto.LenderParamsRequest,
) (dto.LenderParamsResponse, error) {
	now := time.Now().UTC()

	// The set must point at a product the caller owns.
	if _, err := uc.productRepo.FindByID(ctx, req.LenderID, req.LoanProductID); err != nil {
		return dto.LenderParamsResponse{}, fmt.Errorf("find product: %w", err)
	}

	attrs, err := toParamsAttrs(req)
	if err != nil {
		return dto.LenderParamsResponse{}, err
	}
	params, err := model.NewLenderParameterSet(req.LenderID, req.LoanProductID, attrs, now)
	if err != nil {
		return dto.LenderParamsResponse{}, err
	}
	if err := uc.paramsRepo.Save(ctx, params); err != nil {
		return dto.LenderParamsResponse{}, fmt.Errorf("save params: %w", err)
	}
	return toParamsResponse(params), nil
}

// List returns every parameter set the caller owns.
func (uc *ManageLenderParamsUseCase) List(
	ctx context.Context,
	lenderID string,
) ([]dto.LenderParamsResponse, error) {
	sets, err := uc.paramsRepo.FindByLenderID(ctx, lenderID)
	if err != nil {
		return nil, fmt.Errorf("list params: %w", err)
	}
	out := make([]dto.LenderParamsResponse, len(sets))
	for i, params := range sets {
		out[i] = toParamsResponse(params)
	}
	return out, nil
}

// Get returns one parameter set the caller owns.
func (uc *ManageLenderParamsUseCase) Get(
	ctx context.Context,
	lenderID, paramsID string,
) (dto.LenderParamsResponse, error) {
	params, err := uc.paramsRepo.FindByID(ctx, lenderID, paramsID)
	if err != nil {
		return dto.LenderParamsResponse{}, fmt.Errorf("find params: %w", err)
	}
	return toParamsResponse(params), nil
}

// Update replaces the thresholds of a parameter set the caller owns.
func (uc *ManageLenderParamsUseCase) Update(
	ctx context.Context,
	req dto.LenderParamsRequest,
) (dto.LenderParamsResponse, error) {
	now := time.Now().UTC()

	params, err := uc.paramsRepo.FindByID(ctx, req.LenderID, req.ParamsID)
	if err != nil {
		return dto.LenderParamsResponse{}, fmt.Errorf("find params: %w", err)
	}

	attrs, err := toParamsAttrs(req)
	if err != nil {
		return dto.LenderParamsResponse{}, err
	}
	params, err = params.WithAttrs(attrs, now)
	if err != nil {
		return dto.LenderParamsResponse{}, err
	}
	if err := uc.paramsRepo.Update(ctx, params); err != nil {
		return dto.LenderParamsResponse{}, fmt.Errorf("update params: %w", err)
	}
	return toParamsResponse(params), nil
}

// Delete removes a parameter set the caller owns.
func (uc *ManageLenderParamsUseCase) Delete(ctx context.Context, lenderID, paramsID string) error {
	if err := uc.paramsRepo.Delete(ctx, lenderID, paramsID); err != nil {
		return fmt.Errorf("delete params: %w", err)
	}
	return nil
}

// CheckEligibility evaluates one borrower profile against one parameter set
// and returns the per-criterion breakdown. Nothing is persisted.
func (uc *ManageLenderParamsUseCase) CheckEligibility(
	ctx context.Context,
	req dto.ParamsEligibilityRequest,
) (dto.EligibilityBreakdownResponse, error) {
	params, err := uc.paramsRepo.FindByID(ctx, req.LenderID, req.ParamsID)
	if err != nil {
		return dto.EligibilityBreakdownResponse{}, fmt.Errorf("find params: %w", err)
	}

	profile := valueobject.BorrowerProfile{
		BusinessAgeMonths: req.BusinessAgeMonths,
		HasGST:            req.HasGST,
		CurrentBalance:    req.CurrentBalance,
		AvgMonthlyInflow:  req.MonthlyInflow,
		CreditScore:       req.CreditScore,
	}
	if err := validateProfile(profile); err != nil {
		return dto.EligibilityBreakdownResponse{}, err
	}

	breakdown := uc.engine.Evaluate(profile, params)
	resp := dto.EligibilityBreakdownResponse{
		BusinessAge: breakdown.BusinessAge,
		GST:         breakdown.GST,
		Balance:     breakdown.Balance,
		Inflow:      breakdown.Inflow,
		CreditScore: breakdown.CreditScore,
		AllPassed:   breakdown.Overall,
	}
	if breakdown.RecommendedLimit != nil {
		resp.RecommendedLimit = &dto.LimitRangeResponse{
			Min: breakdown.RecommendedLimit.Min,
			Max: breakdown.RecommendedLimit.Max,
		}
	}
	return resp, nil
}

func toParamsAttrs(req dto.LenderParamsRequest) (model.LenderParameterSetAttrs, error) {
	mix, err := valueobject.NewBusinessMixCategory(req.BusinessMixCategory)
	if err != nil {
		return model.LenderParameterSetAttrs{}, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	return model.LenderParameterSetAttrs{
		MinBusinessAgeMonths: req.MinBusinessAgeMonths,
		GSTRequired:          req.GSTRequired,
		MinMaintainedBalance: req.MinMaintainedBalance,
		MaxOutflowRatio:      req.MaxOutflowRatio,
		MinMonthlyInflow:     req.MinMonthlyInflow,
		MinRecommendedLimit:  req.MinRecommendedLimit,
		MaxRecommendedLimit:  req.MaxRecommendedLimit,
		BusinessMix:          mix,
		MinCreditScore:       req.MinCreditScore,
		MaxCreditScore:       req.MaxCreditScore,
	}, nil
}
