package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

func validParamsAttrs() model.LenderParameterSetAttrs {
	return model.LenderParameterSetAttrs{
		MinBusinessAgeMonths: 12,
		GSTRequired:          true,
		MinMaintainedBalance: decimal.NewFromInt(50000),
		MaxOutflowRatio:      decimal.NewFromFloat(0.8),
		MinMonthlyInflow:     decimal.NewFromInt(100000),
		MinRecommendedLimit:  decimal.NewFromInt(50000),
		MaxRecommendedLimit:  decimal.NewFromInt(500000),
		BusinessMix:          valueobject.BusinessMixRetail,
		MinCreditScore:       650,
		MaxCreditScore:       850,
	}
}

func TestNewLenderParameterSet(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid attrs produce a set with an ID", func(t *testing.T) {
		params, err := model.NewLenderParameterSet("lender-1", "product-1", validParamsAttrs(), now)
		require.NoError(t, err)

		assert.NotEmpty(t, params.ID())
		assert.Equal(t, "lender-1", params.LenderID())
		assert.Equal(t, "product-1", params.LoanProductID())
		assert.Equal(t, now, params.CreatedAt())
		assert.Equal(t, now, params.UpdatedAt())
	})

	t.Run("rejects invalid attrs", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*model.LenderParameterSetAttrs)
		}{
			{"negative business age", func(a *model.LenderParameterSetAttrs) { a.MinBusinessAgeMonths = -1 }},
			{"negative balance", func(a *model.LenderParameterSetAttrs) { a.MinMaintainedBalance = decimal.NewFromInt(-1) }},
			{"negative inflow", func(a *model.LenderParameterSetAttrs) { a.MinMonthlyInflow = decimal.NewFromInt(-1) }},
			{"outflow ratio above one", func(a *model.LenderParameterSetAttrs) { a.MaxOutflowRatio = decimal.NewFromFloat(1.2) }},
			{"limit band inverted", func(a *model.LenderParameterSetAttrs) { a.MaxRecommendedLimit = decimal.NewFromInt(40000) }},
			{"missing business mix", func(a *model.LenderParameterSetAttrs) { a.BusinessMix = valueobject.BusinessMixCategory{} }},
			{"score below bureau floor", func(a *model.LenderParameterSetAttrs) { a.MinCreditScore = 200 }},
			{"score above bureau ceiling", func(a *model.LenderParameterSetAttrs) { a.MaxCreditScore = 950 }},
			{"score band inverted", func(a *model.LenderParameterSetAttrs) { a.MinCreditScore = 800; a.MaxCreditScore = 700 }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				attrs := validParamsAttrs()
				tc.mutate(&attrs)
				_, err := model.NewLenderParameterSet("lender-1", "product-1", attrs, now)
				require.ErrorIs(t, err, model.ErrValidation)
			})
		}
	})

	t.Run("requires lender and product IDs", func(t *testing.T) {
		_, err := model.NewLenderParameterSet("", "product-1", validParamsAttrs(), now)
		require.ErrorIs(t, err, model.ErrValidation)
		_, err = model.NewLenderParameterSet("lender-1", "", validParamsAttrs(), now)
		require.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestLenderParameterSet_WithAttrs(t *testing.T) {
	now := time.Now().UTC()
	params, err := model.NewLenderParameterSet("lender-1", "product-1", validParamsAttrs(), now)
	require.NoError(t, err)

	t.Run("replaces thresholds and bumps updatedAt", func(t *testing.T) {
		attrs := validParamsAttrs()
		attrs.MinCreditScore = 700
		later := now.Add(time.Hour)

		next, err := params.WithAttrs(attrs, later)
		require.NoError(t, err)

		assert.Equal(t, 700, next.MinCreditScore())
		assert.Equal(t, later, next.UpdatedAt())
		assert.Equal(t, now, next.CreatedAt())
		assert.Equal(t, 650, params.MinCreditScore())
	})

	t.Run("invalid attrs leave the set unchanged", func(t *testing.T) {
		attrs := validParamsAttrs()
		attrs.MaxCreditScore = 950

		_, err := params.WithAttrs(attrs, now.Add(time.Hour))
		require.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, 850, params.MaxCreditScore())
	})
}
