package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
)

// ManageLoanProductsUseCase covers the lender-side administration of the
// product catalog, scoped to the calling lender.
type ManageLoanProductsUseCase struct {
	productRepo port.LoanProductRepository
}

// NewManageLoanProductsUseCase wires dependencies.
func NewManageLoanProductsUseCase(productRepo port.LoanProductRepository) *ManageLoanProductsUseCase {
	return &ManageLoanProductsUseCase{productRepo: productRepo}
}

// Create registers a new catalog entry for the caller.
func (uc *ManageLoanProductsUseCase) Create(
	ctx context.Context,
	req dto.LoanProductRequest,
) (dto.LoanProductResponse, error) {
	product, err := model.NewLoanProduct(req.LenderID, toProductAttrs(req), time.Now().UTC())
	if err != nil {
		return dto.LoanProductResponse{}, err
	}
	if err := uc.productRepo.Save(ctx, product); err != nil {
		return dto.LoanProductResponse{}, fmt.Errorf("save product: %w", err)
	}
	return toProductResponse(product), nil
}

// List returns every product the caller owns.
func (uc *ManageLoanProductsUseCase) List(
	ctx context.Context,
	lenderID string,
) ([]dto.LoanProductResponse, error) {
	products, err := uc.productRepo.FindByLenderID(ctx, lenderID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]dto.LoanProductResponse, len(products))
	for i, product := range products {
		out[i] = toProductResponse(product)
	}
	return out, nil
}

// Get returns one product the caller owns.
func (uc *ManageLoanProductsUseCase) Get(
	ctx context.Context,
	lenderID, productID string,
) (dto.LoanProductResponse, error) {
	product, err := uc.productRepo.FindByID(ctx, lenderID, productID)
	if err != nil {
		return dto.LoanProductResponse{}, fmt.Errorf("find product: %w", err)
	}
	return toProductResponse(product), nil
}

// Update replaces the terms of a product the caller owns.
func (uc *ManageLoanProductsUseCase) Update(
	ctx context.Context,
	req dto.LoanProductRequest,
) (dto.LoanProductResponse, error) {
	product, err := uc.productRepo.FindByID(ctx, req.LenderID, req.ProductID)
	if err != nil {
		return dto.LoanProductResponse{}, fmt.Errorf("find product: %w", err)
	}
	product, err = product.WithAttrs(toProductAttrs(req), time.Now().UTC())
	if err != nil {
		return dto.LoanProductResponse{}, err
	}
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return dto.LoanProductResponse{}, fmt.Errorf("update product: %w", err)
	}
	return toProductResponse(product), nil
}

// Delete removes a product the caller owns.
func (uc *ManageLoanProductsUseCase) Delete(ctx context.Context, lenderID, productID string) error {
	if err := uc.productRepo.Delete(ctx, lenderID, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func toProductAttrs(req dto.LoanProductRequest) model.LoanProductAttrs {
	return model.LoanProductAttrs{
		Name:                 req.Name,
		Description:          req.Description,
		LoanType:             req.LoanType,
		TargetSegment:        req.TargetSegment,
		MinTenureMonths:      req.MinTenureMonths,
		MaxTenureMonths:      req.MaxTenureMonths,
		MinAmount:            req.MinAmount,
		MaxAmount:            req.MaxAmount,
		InterestRate:         req.InterestRate,
		ProcessingFeePercent: req.ProcessingFeePercent,
		PrepaymentPenalty:    req.PrepaymentPenalty,
		LatePaymentFee:       req.LatePaymentFee,
		GracePeriodDays:      req.GracePeriodDays,
		RequiredDocuments:    req.RequiredDocuments,
	}
}
