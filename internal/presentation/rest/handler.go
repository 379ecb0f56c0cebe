package rest

import (
	"net/http"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/application/usecase"
	"github.com/ArchanSureja/QuickCredit/pkg/auth"
)

// LoanHandler serves the borrower-facing loan endpoints.
type LoanHandler struct {
	checkLoans *usecase.CheckAvailableLoansUseCase
	applyLoan  *usecase.ApplyForLoanUseCase
	queries    *usecase.ApplicationQueriesUseCase
}

// NewLoanHandler creates the borrower-facing HTTP handler.
func NewLoanHandler(
	checkLoans *usecase.CheckAvailableLoansUseCase,
	applyLoan *usecase.ApplyForLoanUseCase,
	queries *usecase.ApplicationQueriesUseCase,
) *LoanHandler {
	return &LoanHandler{
		checkLoans: checkLoans,
		applyLoan:  applyLoan,
		queries:    queries,
	}
}

// RegisterRoutes attaches borrower routes to the given mux.
func (h *LoanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/loans/check", h.checkEligibility)
	mux.HandleFunc("POST /api/v1/loans/apply", h.apply)
	mux.HandleFunc("GET /api/v1/loans/applications", h.listApplications)
}

func (h *LoanHandler) checkEligibility(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleCustomer)
	if !ok {
		return
	}

	var req dto.EligibilityCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.BorrowerID = claims.UserID.String()

	resp, err := h.checkLoans.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) apply(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleCustomer)
	if !ok {
		return
	}

	var req dto.ApplyForLoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.BorrowerID = claims.UserID.String()

	resp, err := h.applyLoan.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *LoanHandler) listApplications(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleCustomer)
	if !ok {
		return
	}

	resp, err := h.queries.ListForBorrower(r.Context(), claims.UserID.String())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// requireRole resolves the authenticated principal and enforces a role.
// A missing principal is a 401, a role mismatch a 403.
func requireRole(w http.ResponseWriter, r *http.Request, role string) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return nil, false
	}
	if !claims.HasRole(role) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
		return nil, false
	}
	return claims, true
}
