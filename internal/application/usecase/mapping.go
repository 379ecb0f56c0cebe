package usecase

import (
	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
)

func toApplicationResponse(app model.LoanApplication) dto.LoanApplicationResponse {
	rules := app.MatchedRules()
	return dto.LoanApplicationResponse{
		ID:            app.ID(),
		BorrowerID:    app.BorrowerID(),
		LoanProductID: app.LoanProductID(),
		LenderID:      app.LenderID(),
		Limit:         app.Limit(),
		TenureMonths:  app.TenureMonths(),
		Status:        app.Status().String(),
		MatchedRules: dto.MatchedRulesResponse{
			CreditScoreMatch: rules.CreditScoreMatch,
			BusinessAgeMatch: rules.BusinessAgeMatch,
		},
		Disbursement:        app.Disbursement(),
		EligibilityRecordID: app.EligibilityRecordID(),
		ProcessedBy:         app.ProcessedBy(),
		ProcessedAt:         app.ProcessedAt(),
		DisbursedBy:         app.DisbursedBy(),
		DisbursedAt:         app.DisbursedAt(),
		RejectionReason:     app.RejectionReason(),
		CreatedAt:           app.CreatedAt(),
	}
}

func toCallLogResponse(log model.CallLog) dto.CallLogResponse {
	return dto.CallLogResponse{
		ID:            log.ID,
		ApplicationID: log.ApplicationID,
		AuthorID:      log.AuthorID,
		Notes:         log.Notes,
		CreatedAt:     log.CreatedAt,
	}
}

func toParamsResponse(params model.LenderParameterSet) dto.LenderParamsResponse {
	return dto.LenderParamsResponse{
		ID:                   params.ID(),
		LenderID:             params.LenderID(),
		LoanProductID:        params.LoanProductID(),
		MinBusinessAgeMonths: params.MinBusinessAgeMonths(),
		GSTRequired:          params.GSTRequired(),
		MinMaintainedBalance: params.MinMaintainedBalance(),
		MaxOutflowRatio:      params.MaxOutflowRatio(),
		MinMonthlyInflow:     params.MinMonthlyInflow(),
		MinRecommendedLimit:  params.MinRecommendedLimit(),
		MaxRecommendedLimit:  params.MaxRecommendedLimit(),
		BusinessMixCategory:  params.BusinessMix().String(),
		MinCreditScore:       params.MinCreditScore(),
		MaxCreditScore:       params.MaxCreditScore(),
		CreatedAt:            params.CreatedAt(),
		UpdatedAt:            params.UpdatedAt(),
	}
}

func toProductResponse(product model.LoanProduct) dto.LoanProductResponse {
	return dto.LoanProductResponse{
		ID:                   product.ID(),
		LenderID:             product.LenderID(),
		Name:                 product.Name(),
		Description:          product.Description(),
		LoanType:             product.LoanType(),
		TargetSegment:        product.TargetSegment(),
		MinTenureMonths:      product.MinTenureMonths(),
		MaxTenureMonths:      product.MaxTenureMonths(),
		MinAmount:            product.MinAmount(),
		MaxAmount:            product.MaxAmount(),
		InterestRate:         product.InterestRate(),
		ProcessingFeePercent: product.ProcessingFeePercent(),
		PrepaymentPenalty:    product.PrepaymentPenalty(),
		LatePaymentFee:       product.LatePaymentFee(),
		GracePeriodDays:      product.GracePeriodDays(),
		RequiredDocuments:    product.RequiredDocuments(),
		CreatedAt:            product.CreatedAt(),
		UpdatedAt:            product.UpdatedAt(),
	}
}
