package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/application/usecase"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
	"github.com/ArchanSureja/QuickCredit/pkg/auth"
)

// LendingHandler implements LendingServiceServer on top of the use cases.
// The authenticated principal comes from the auth interceptor, never from
// the request body.
type LendingHandler struct {
	UnimplementedLendingServiceServer

	checkLoans *usecase.CheckAvailableLoansUseCase
	applyLoan  *usecase.ApplyForLoanUseCase
	queries    *usecase.ApplicationQueriesUseCase
}

// NewLendingHandler creates a new handler with all use-case dependencies.
func NewLendingHandler(
	checkLoans *usecase.CheckAvailableLoansUseCase,
	applyLoan *usecase.ApplyForLoanUseCase,
	queries *usecase.ApplicationQueriesUseCase,
) *LendingHandler {
	return &LendingHandler{
		checkLoans: checkLoans,
		applyLoan:  applyLoan,
		queries:    queries,
	}
}

// CheckEligibility runs the offer search for the authenticated borrower.
func (h *LendingHandler) CheckEligibility(ctx context.Context, req *CheckEligibilityRequest) (*CheckEligibilityResponse, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := parseAmount(req.CurrentBalance, "current_balance")
	if err != nil {
		return nil, err
	}
	inflow, err := parseAmount(req.AvgMonthlyInflow, "avg_monthly_inflow")
	if err != nil {
		return nil, err
	}
	requested := decimal.Zero
	if req.RequestedAmount != "" {
		if requested, err = parseAmount(req.RequestedAmount, "requested_amount"); err != nil {
			return nil, err
		}
	}

	resp, err := h.checkLoans.Execute(ctx, dto.EligibilityCheckRequest{
		BorrowerID:            claims.UserID.String(),
		BusinessAgeMonths:     req.BusinessAgeMonths,
		HasGST:                req.HasGst,
		CurrentBalance:        balance,
		AvgMonthlyInflow:      inflow,
		CreditScore:           req.CreditScore,
		RequestedAmount:       requested,
		PreferredTenureMonths: req.PreferredTenureMonths,
	})
	if err != nil {
		return nil, mapStatus(err)
	}

	offers := make([]*EligibleOffer, len(resp.EligibleProducts))
	for i, offer := range resp.EligibleProducts {
		offers[i] = &EligibleOffer{
			ProductId:               offer.ProductID,
			ProductName:             offer.ProductName,
			LoanType:                offer.LoanType,
			InterestRate:            offer.InterestRate.String(),
			MaxEligibleAmount:       offer.MaxEligibleAmount.String(),
			RecommendedTenureMonths: offer.RecommendedTenureMonths,
		}
	}
	return &CheckEligibilityResponse{
		EligibleProducts: offers,
		EligibilityId:    resp.EligibilityRecordID,
		Message:          resp.Message,
	}, nil
}

// ApplyForLoan files an application for the authenticated borrower.
func (h *LendingHandler) ApplyForLoan(ctx context.Context, req *ApplyForLoanRequest) (*ApplyForLoanResponse, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return nil, err
	}

	resp, err := h.applyLoan.Execute(ctx, dto.ApplyForLoanRequest{
		BorrowerID:          claims.UserID.String(),
		ProductID:           req.ProductId,
		Amount:              amount,
		TenureMonths:        req.TenureMonths,
		EligibilityRecordID: req.EligibilityId,
	})
	if err != nil {
		return nil, mapStatus(err)
	}
	return &ApplyForLoanResponse{Application: toWireApplication(resp)}, nil
}

// GetApplication fetches one application from the authenticated lender's book.
func (h *LendingHandler) GetApplication(ctx context.Context, req *GetApplicationRequest) (*GetApplicationResponse, error) {
	claims, err := callerClaims(ctx)
	if err != nil {
		return nil, err
	}
	if !claims.HasRole(auth.RoleAdmin) {
		return nil, status.Error(codes.PermissionDenied, "insufficient permissions")
	}

	resp, err := h.queries.Get(ctx, claims.UserID.String(), req.ApplicationId)
	if err != nil {
		return nil, mapStatus(err)
	}
	return &GetApplicationResponse{Application: toWireApplication(resp)}, nil
}

func callerClaims(ctx context.Context) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims, nil
}

func parseAmount(s, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, status.Errorf(codes.InvalidArgument, "invalid %s: %v", field, err)
	}
	return d, nil
}

func mapStatus(err error) error {
	switch {
	case errors.Is(err, port.ErrNotFound):
		return status.Error(codes.NotFound, "resource not found")
	case errors.Is(err, model.ErrValidation), errors.Is(err, usecase.ErrEligibilityExpired):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrDuplicate):
		return status.Error(codes.AlreadyExists, "resource already exists")
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func toWireApplication(resp dto.LoanApplicationResponse) *LoanApplication {
	return &LoanApplication{
		Id:            resp.ID,
		UserId:        resp.BorrowerID,
		LoanProductId: resp.LoanProductID,
		LenderId:      resp.LenderID,
		Limit:         resp.Limit.String(),
		TenureMonths:  resp.TenureMonths,
		Status:        resp.Status,
		Disbursement:  resp.Disbursement,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
