package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/application/usecase"
	"github.com/ArchanSureja/QuickCredit/internal/domain/event"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/service"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

// --- fixtures ---

func testParams(t *testing.T, lenderID, productID string, maxLimit int64) model.LenderParameterSet {
	t.Helper()
	params, err := model.NewLenderParameterSet(lenderID, productID, model.LenderParameterSetAttrs{
		MinBusinessAgeMonths: 12,
		GSTRequired:          true,
		MinMaintainedBalance: decimal.NewFromInt(50000),
		MaxOutflowRatio:      decimal.NewFromFloat(0.8),
		MinMonthlyInflow:     decimal.NewFromInt(100000),
		MinRecommendedLimit:  decimal.NewFromInt(50000),
		MaxRecommendedLimit:  decimal.NewFromInt(maxLimit),
		BusinessMix:          valueobject.BusinessMixRetail,
		MinCreditScore:       650,
		MaxCreditScore:       850,
	}, time.Now().UTC())
	require.NoError(t, err)
	return params
}

func testProduct(t *testing.T, lenderID string, maxTenure int) model.LoanProduct {
	t.Helper()
	product, err := model.NewLoanProduct(lenderID, model.LoanProductAttrs{
		Name:            "Working Capital Loan",
		LoanType:        "working_capital",
		MinTenureMonths: 6,
		MaxTenureMonths: maxTenure,
		MinAmount:       decimal.NewFromInt(50000),
		MaxAmount:       decimal.NewFromInt(2000000),
		InterestRate:    decimal.NewFromFloat(14.5),
	}, time.Now().UTC())
	require.NoError(t, err)
	return product
}

// paramsForProduct builds a params set pointing at an already created product.
func paramsForProduct(t *testing.T, lenderID string, product model.LoanProduct, maxLimit int64) model.LenderParameterSet {
	t.Helper()
	return testParams(t, lenderID, product.ID(), maxLimit)
}

func checkRequest() dto.EligibilityCheckRequest {
	return dto.EligibilityCheckRequest{
		BorrowerID:        "borrower-001",
		BusinessAgeMonths: 24,
		HasGST:            true,
		CurrentBalance:    decimal.NewFromInt(150000),
		AvgMonthlyInflow:  decimal.NewFromInt(250000),
		CreditScore:       720,
	}
}

func TestCheckAvailableLoans_Execute(t *testing.T) {
	t.Run("returns offers and persists an eligibility record", func(t *testing.T) {
		product := testProduct(t, "lender-1", 48)
		params := paramsForProduct(t, "lender-1", product, 500000)

		paramsRepo := &mockLenderParamsRepository{
			findMatchingFunc: func(_ context.Context, _ valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
				return []model.LenderParameterSet{params}, nil
			},
		}
		productRepo := &mockLoanProductRepository{
			findByLenderIDsFunc: func(_ context.Context, lenderIDs []string) ([]model.LoanProduct, error) {
				assert.Equal(t, []string{"lender-1"}, lenderIDs)
				return []model.LoanProduct{product}, nil
			},
		}
		recordRepo := &mockEligibilityRecordRepository{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewCheckAvailableLoansUseCase(
			paramsRepo, productRepo, recordRepo, service.NewEligibilityEngine(), publisher, 0)

		resp, err := uc.Execute(context.Background(), checkRequest())
		require.NoError(t, err)

		require.Len(t, resp.EligibleProducts, 1)
		offer := resp.EligibleProducts[0]
		assert.Equal(t, product.ID(), offer.ProductID)
		assert.True(t, offer.MaxEligibleAmount.Equal(decimal.NewFromInt(500000)))
		assert.Equal(t, 36, offer.RecommendedTenureMonths)
		assert.Equal(t, usecase.MsgOffersFound, resp.Message)
		assert.NotEmpty(t, resp.EligibilityRecordID)

		require.Len(t, recordRepo.saved, 1)
		record := recordRepo.saved[0]
		assert.Equal(t, "borrower-001", record.BorrowerID())
		assert.Equal(t, params.ID(), record.LenderParamsID())

		require.Len(t, publisher.publishedEvents, 1)
		checked, ok := publisher.publishedEvents[0].(event.EligibilityChecked)
		require.True(t, ok)
		assert.Equal(t, record.ID(), checked.AggregateID())
	})

	t.Run("caps the offer at the requested amount", func(t *testing.T) {
		product := testProduct(t, "lender-1", 48)
		params := paramsForProduct(t, "lender-1", product, 500000)

		paramsRepo := &mockLenderParamsRepository{
			findMatchingFunc: func(_ context.Context, _ valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
				return []model.LenderParameterSet{params}, nil
			},
		}
		productRepo := &mockLoanProductRepository{
			findByLenderIDsFunc: func(_ context.Context, _ []string) ([]model.LoanProduct, error) {
				return []model.LoanProduct{product}, nil
			},
		}
		recordRepo := &mockEligibilityRecordRepository{}
		publisher := &mockEventPublisher{}
		uc := usecase.NewCheckAvailableLoansUseCase(
			paramsRepo, productRepo, recordRepo, service.NewEligibilityEngine(), publisher, 0)

		req := checkRequest()
		req.RequestedAmount = decimal.NewFromInt(200000)
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, resp.EligibleProducts, 1)
		assert.True(t, resp.EligibleProducts[0].MaxEligibleAmount.Equal(decimal.NewFromInt(200000)))
	})

	t.Run("requests above the ceiling clamp to the ceiling", func(t *testing.T) {
		product := testProduct(t, "lender-1", 48)
		params := paramsForProduct(t, "lender-1", product, 500000)

		paramsRepo := &mockLenderParamsRepository{
			findMatchingFunc: func(_ context.Context, _ valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
				return []model.LenderParameterSet{params}, nil
			},
		}
		productRepo := &mockLoanProductRepository{
			findByLenderIDsFunc: func(_ context.Context, _ []string) ([]model.LoanProduct, error) {
				return []model.LoanProduct{product}, nil
			},
		}
		recordRepo := &mockEligibilityRecordRepository{}
		uc := usecase.NewCheckAvailableLoansUseCase(
			paramsRepo, productRepo, recordRepo, service.NewEligibilityEngine(), &mockEventPublisher{}, 0)

		req := checkRequest()
		req.RequestedAmount = decimal.NewFromInt(900000)
		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		require.Len(t, resp.EligibleProducts, 1)
		assert.True(t, resp.EligibleProducts[0].MaxEligibleAmount.Equal(decimal.NewFromInt(500000)))
	})

	t.Run("every product of a matched lender produces an offer", func(t *testing.T) {
		wcProduct := testProduct(t, "lender-1", 48)
		tlProduct := testProduct(t, "lender-1", 24)
		params := paramsForProduct(t, "lender-1", wcProduct, 500000)

		paramsRepo := &mockLenderParamsRepository{
			findMatchingFunc: func(_ context.Context, _ valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
				return []model.LenderParameterSet{params}, nil
			},
		}
		productRepo := &mockLoanProductRepository{
			findByLenderIDsFunc: func(_ context.Context, _ []string) ([]model.LoanProduct, error) {
				return []model.LoanProduct{wcProduct, tlProduct}, nil
			},
		}
		recordRepo := &mockEligibilityRecordRepository{}
		uc := usecase.NewCheckAvailableLoansUseCase(
			paramsRepo, productRepo, recordRepo, service.NewEligibilityEngine(), &mockEventPublisher{}, 0)

		resp, err := uc.Execute(context.Background(), checkRequest())
		require.NoError(t, err)

		require.Len(t, resp.EligibleProducts, 2)
		assert.Equal(t, wcProduct.ID(), resp.EligibleProducts[0].ProductID)
		assert.Equal(t, tlProduct.ID(), resp.EligibleProducts[1].ProductID)
		assert.Equal(t, 36, resp.EligibleProducts[0].RecommendedTenureMonths)
		assert.Equal(t, 24, resp.EligibleProducts[1].RecommendedTenureMonths)

		require.Len(t, recordRepo.saved, 1)
		assert.Len(t, recordRepo.saved[0].Offers(), 2)
	})

	t.Run("no matching parameter sets returns an empty result, not an error", func(t *testing.T) {
		uc := usecase.NewCheckAvailableLoansUseCase(
			&mockLenderParamsRepository{}, &mockLoanProductRepository{},
			&mockEligibilityRecordRepository{}, service.NewEligibilityEngine(), &mockEventPublisher{}, 0)

		resp, err := uc.Execute(context.Background(), checkRequest())
		require.NoError(t, err)
		assert.Empty(t, resp.EligibleProducts)
		assert.Equal(t, usecase.MsgNoMatchingParams, resp.Message)
		assert.Empty(t, resp.EligibilityRecordID)
	})

	t.Run("matched lenders without products return an empty result", func(t *testing.T) {
		params := testParams(t, "lender-1", "product-1", 500000)
		paramsRepo := &mockLenderParamsRepository{
			findMatchingFunc: func(_ context.Context, _ valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
				return []model.LenderParameterSet{params}, nil
			},
		}
		recordRepo := &mockEligibilityRecordRepository{}
		uc := usecase.NewCheckAvailableLoansUseCase(
			paramsRepo, &mockLoanProductRepository{}, recordRepo,
			service.NewEligibilityEngine(), &mockEventPublisher{}, 0)

		resp, err := uc.Execute(context.Background(), checkRequest())
		require.NoError(t, err)
		assert.Empty(t, resp.EligibleProducts)
		assert.Equal(t, usecase.MsgNoProducts, resp.Message)
		assert.Empty(t, recordRepo.saved)
	})

	t.Run("a matched set whose product is gone is silently dropped", func(t *testing.T) {
		// The set references a product that no longer exists; another
		// lender's intact pair still produces an offer.
		goneParams := testParams(t, "lender-1", "deleted-product", 300000)
		product := testProduct(t, "lender-2", 48)
		intactParams := paramsForProduct(t, "lender-2", product, 400000)

		paramsRepo := &mockLenderParamsRepository{
			findMatchingFunc: func(_ context.Context, _ valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
				return []model.LenderParameterSet{goneParams, intactParams}, nil
			},
		}
		productRepo := &mockLoanProductRepository{
			findByLenderIDsFunc: func(_ context.Context, _ []string) ([]model.LoanProduct, error) {
				return []model.LoanProduct{product}, nil
			},
		}
		recordRepo := &mockEligibilityRecordRepository{}
		uc := usecase.NewCheckAvailableLoansUseCase(
			paramsRepo, productRepo, recordRepo, service.NewEligibilityEngine(), &mockEventPublisher{}, 0)

		resp, err := uc.Execute(context.Background(), checkRequest())
		require.NoError(t, err)
		require.Len(t, resp.EligibleProducts, 1)
		assert.Equal(t, product.ID(), resp.EligibleProducts[0].ProductID)
	})

	t.Run("every call produces a fresh eligibility record", func(t *testing.T) {
		product := testProduct(t, "lender-1", 48)
		params := paramsForProduct(t, "lender-1", product, 500000)

		paramsRepo := &mockLenderParamsRepository{
			findMatchingFunc: func(_ context.Context, _ valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
				return []model.LenderParameterSet{params}, nil
			},
		}
		productRepo := &mockLoanProductRepository{
			findByLenderIDsFunc: func(_ context.Context, _ []string) ([]model.LoanProduct, error) {
				return []model.LoanProduct{product}, nil
			},
		}
		recordRepo := &mockEligibilityRecordRepository{}
		uc := usecase.NewCheckAvailableLoansUseCase(
			paramsRepo, productRepo, recordRepo, service.NewEligibilityEngine(), &mockEventPublisher{}, 0)

		first, err := uc.Execute(context.Background(), checkRequest())
		require.NoError(t, err)
		second, err := uc.Execute(context.Background(), checkRequest())
		require.NoError(t, err)

		require.Len(t, recordRepo.saved, 2)
		assert.NotEqual(t, first.EligibilityRecordID, second.EligibilityRecordID)
	})

	t.Run("rejects an invalid profile", func(t *testing.T) {
		uc := usecase.NewCheckAvailableLoansUseCase(
			&mockLenderParamsRepository{}, &mockLoanProductRepository{},
			&mockEligibilityRecordRepository{}, service.NewEligibilityEngine(), &mockEventPublisher{}, 0)

		req := checkRequest()
		req.CreditScore = 1200
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, model.ErrValidation)
	})
}
