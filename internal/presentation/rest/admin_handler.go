package rest

import (
	"net/http"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/application/usecase"
	"github.com/ArchanSureja/QuickCredit/pkg/auth"
)

// AdminHandler serves the lender back-office endpoints. The authenticated
// admin's user ID is the lender ID; every operation is confined to that
// lender's own data.
type AdminHandler struct {
	params     *usecase.ManageLenderParamsUseCase
	products   *usecase.ManageLoanProductsUseCase
	createApp  *usecase.CreateApplicationUseCase
	processApp *usecase.ProcessApplicationUseCase
	disburse   *usecase.DisburseLoanUseCase
	callLogs   *usecase.CallLogUseCase
	queries    *usecase.ApplicationQueriesUseCase
}

// NewAdminHandler creates the lender back-office HTTP handler.
func NewAdminHandler(
	params *usecase.ManageLenderParamsUseCase,
	products *usecase.ManageLoanProductsUseCase,
	createApp *usecase.CreateApplicationUseCase,
	processApp *usecase.ProcessApplicationUseCase,
	disburse *usecase.DisburseLoanUseCase,
	callLogs *usecase.CallLogUseCase,
	queries *usecase.ApplicationQueriesUseCase,
) *AdminHandler {
	return &AdminHandler{
		params:     params,
		products:   products,
		createApp:  createApp,
		processApp: processApp,
		disburse:   disburse,
		callLogs:   callLogs,
		queries:    queries,
	}
}

// RegisterRoutes attaches back-office routes to the given mux.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/admin/lender-params", h.createParams)
	mux.HandleFunc("GET /api/v1/admin/lender-params", h.listParams)
	mux.HandleFunc("GET /api/v1/admin/lender-params/{id}", h.getParams)
	mux.HandleFunc("PUT /api/v1/admin/lender-params/{id}", h.updateParams)
	mux.HandleFunc("DELETE /api/v1/admin/lender-params/{id}", h.deleteParams)
	mux.HandleFunc("POST /api/v1/admin/lender-params/{id}/check-eligibility", h.checkParamsEligibility)

	mux.HandleFunc("POST /api/v1/admin/loan-products", h.createProduct)
	mux.HandleFunc("GET /api/v1/admin/loan-products", h.listProducts)
	mux.HandleFunc("GET /api/v1/admin/loan-products/{id}", h.getProduct)
	mux.HandleFunc("PUT /api/v1/admin/loan-products/{id}", h.updateProduct)
	mux.HandleFunc("DELETE /api/v1/admin/loan-products/{id}", h.deleteProduct)

	mux.HandleFunc("POST /api/v1/admin/applications", h.createApplication)
	mux.HandleFunc("GET /api/v1/admin/applications", h.listApplications)
	mux.HandleFunc("GET /api/v1/admin/applications/{id}", h.getApplication)
	mux.HandleFunc("PUT /api/v1/admin/applications/{id}/process", h.processApplication)
	mux.HandleFunc("POST /api/v1/admin/applications/{id}/disburse", h.disburseApplication)
	mux.HandleFunc("POST /api/v1/admin/applications/{id}/call-logs", h.addCallLog)
	mux.HandleFunc("GET /api/v1/admin/applications/{id}/call-logs", h.listCallLogs)
}

// --- lender parameter sets ---

func (h *AdminHandler) createParams(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	var req dto.LenderParamsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LenderID = claims.UserID.String()

	resp, err := h.params.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) listParams(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	resp, err := h.params.List(r.Context(), claims.UserID.String())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) getParams(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	resp, err := h.params.Get(r.Context(), claims.UserID.String(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) updateParams(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	var req dto.LenderParamsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LenderID = claims.UserID.String()
	req.ParamsID = r.PathValue("id")

	resp, err := h.params.Update(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) deleteParams(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	if err := h.params.Delete(r.Context(), claims.UserID.String(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) checkParamsEligibility(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	var req dto.ParamsEligibilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LenderID = claims.UserID.String()
	req.ParamsID = r.PathValue("id")

	resp, err := h.params.CheckEligibility(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- loan products ---

func (h *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	var req dto.LoanProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LenderID = claims.UserID.String()

	resp, err := h.products.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	resp, err := h.products.List(r.Context(), claims.UserID.String())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	resp, err := h.products.Get(r.Context(), claims.UserID.String(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	var req dto.LoanProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LenderID = claims.UserID.String()
	req.ProductID = r.PathValue("id")

	resp, err := h.products.Update(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	if err := h.products.Delete(r.Context(), claims.UserID.String(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- applications ---

func (h *AdminHandler) createApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LenderID = claims.UserID.String()

	resp, err := h.createApp.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) listApplications(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	resp, err := h.queries.ListForLender(r.Context(), claims.UserID.String(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) getApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	resp, err := h.queries.Get(r.Context(), claims.UserID.String(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) processApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	var req dto.ProcessApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LenderID = claims.UserID.String()
	req.ApplicationID = r.PathValue("id")

	resp, err := h.processApp.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) disburseApplication(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	resp, err := h.disburse.Execute(r.Context(), dto.DisburseLoanRequest{
		LenderID:      claims.UserID.String(),
		ApplicationID: r.PathValue("id"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) addCallLog(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	var req dto.AddCallLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.LenderID = claims.UserID.String()
	req.ApplicationID = r.PathValue("id")

	resp, err := h.callLogs.Append(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *AdminHandler) listCallLogs(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, auth.RoleAdmin)
	if !ok {
		return
	}
	resp, err := h.callLogs.List(r.Context(), claims.UserID.String(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
