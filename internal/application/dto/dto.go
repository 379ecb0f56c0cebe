package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// EligibilityCheckRequest carries a borrower's financial profile for the
// offer search. RequestedAmount and PreferredTenureMonths are optional.
type EligibilityCheckRequest struct {
	BorrowerID            string          `json:"-"`
	BusinessAgeMonths     int             `json:"business_age_months"`
	HasGST                bool            `json:"has_gst"`
	CurrentBalance        decimal.Decimal `json:"current_balance"`
	AvgMonthlyInflow      decimal.Decimal `json:"avg_monthly_inflow"`
	CreditScore           int             `json:"credit_score"`
	RequestedAmount       decimal.Decimal `json:"requested_amount,omitempty"`
	PreferredTenureMonths int             `json:"preferred_tenure_months,omitempty"`
}

// ApplyForLoanRequest carries a borrower's loan request against a previously
// issued eligibility record.
type ApplyForLoanRequest struct {
	BorrowerID          string          `json:"-"`
	ProductID           string          `json:"product_id"`
	Amount              decimal.Decimal `json:"amount"`
	TenureMonths        int             `json:"tenure_months,omitempty"`
	EligibilityRecordID string          `json:"eligibility_id"`
}

// ProcessApplicationRequest carries an admin approve/reject decision.
type ProcessApplicationRequest struct {
	LenderID        string `json:"-"`
	ApplicationID   string `json:"-"`
	Action          string `json:"action"` // "approve" or "reject"
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// DisburseLoanRequest identifies an approved application to disburse.
type DisburseLoanRequest struct {
	LenderID      string `json:"-"`
	ApplicationID string `json:"-"`
}

// AddCallLogRequest appends an audit note to an application.
type AddCallLogRequest struct {
	LenderID      string `json:"-"`
	ApplicationID string `json:"-"`
	Notes         string `json:"notes"`
}

// CreateApplicationRequest is the admin-side direct creation path.
type CreateApplicationRequest struct {
	LenderID     string          `json:"-"`
	BorrowerID   string          `json:"user_id"`
	ProductID    string          `json:"loan_product_id"`
	Limit        decimal.Decimal `json:"limit"`
	TenureMonths int             `json:"tenure_months"`
}

// LenderParamsRequest carries lender eligibility thresholds for create/update.
type LenderParamsRequest struct {
	LenderID             string          `json:"-"`
	ParamsID             string          `json:"-"`
	LoanProductID        string          `json:"loan_product_id"`
	MinBusinessAgeMonths int             `json:"min_business_age_months"`
	GSTRequired          bool            `json:"gst_required"`
	MinMaintainedBalance decimal.Decimal `json:"min_maintained_balance"`
	MaxOutflowRatio      decimal.Decimal `json:"max_outflow_ratio"`
	MinMonthlyInflow     decimal.Decimal `json:"min_monthly_inflow"`
	MinRecommendedLimit  decimal.Decimal `json:"min_recommended_limit"`
	MaxRecommendedLimit  decimal.Decimal `json:"max_recommended_limit"`
	BusinessMixCategory  string          `json:"business_mix_category"`
	MinCreditScore       int             `json:"min_credit_score"`
	MaxCreditScore       int             `json:"max_credit_score"`
}

// ParamsEligibilityRequest checks one borrower profile against one parameter set.
type ParamsEligibilityRequest struct {
	LenderID          string          `json:"-"`
	ParamsID          string          `json:"-"`
	BusinessAgeMonths int             `json:"business_age_months"`
	HasGST            bool            `json:"has_gst"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	MonthlyInflow     decimal.Decimal `json:"monthly_inflow"`
	CreditScore       int             `json:"credit_score"`
}

// LoanProductRequest carries product terms for create/update.
type LoanProductRequest struct {
	LenderID             string          `json:"-"`
	ProductID            string          `json:"-"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	LoanType             string          `json:"loan_type"`
	TargetSegment        string          `json:"target_segment,omitempty"`
	MinTenureMonths      int             `json:"min_tenure_months"`
	MaxTenureMonths      int             `json:"max_tenure_months"`
	MinAmount            decimal.Decimal `json:"min_amount"`
	MaxAmount            decimal.Decimal `json:"max_amount"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	ProcessingFeePercent decimal.Decimal `json:"processing_fee_percent,omitempty"`
	PrepaymentPenalty    decimal.Decimal `json:"prepayment_penalty,omitempty"`
	LatePaymentFee       decimal.Decimal `json:"late_payment_fee,omitempty"`
	GracePeriodDays      int             `json:"grace_period_days,omitempty"`
	RequiredDocuments    []string        `json:"required_documents,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// OfferResponse is one product the borrower qualified for.
type OfferResponse struct {
	ProductID               string          `json:"product_id"`
	ProductName             string          `json:"product_name"`
	LoanType                string          `json:"loan_type"`
	InterestRate            decimal.Decimal `json:"interest_rate"`
	MaxEligibleAmount       decimal.Decimal `json:"max_eligible_amount"`
	RecommendedTenureMonths int             `json:"recommended_tenure_months"`
}

// EligibilityCheckResponse is the offer search result. An empty product list
// with a message is a valid, non-error outcome.
type EligibilityCheckResponse struct {
	EligibleProducts    []OfferResponse `json:"eligible_products"`
	EligibilityRecordID string          `json:"eligibility_id,omitempty"`
	Message             string          `json:"message"`
}

// LimitRangeResponse is the recommended credit band on a full pass.
type LimitRangeResponse struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// EligibilityBreakdownResponse is the per-criterion result of a single-set check.
type EligibilityBreakdownResponse struct {
	BusinessAge      bool                `json:"business_age"`
	GST              bool                `json:"gst"`
	Balance          bool                `json:"balance"`
	Inflow           bool                `json:"inflow"`
	CreditScore      bool                `json:"credit_score"`
	AllPassed        bool                `json:"all_passed"`
	RecommendedLimit *LimitRangeResponse `json:"recommended_limit"`
}

// MatchedRulesResponse mirrors the stored criteria snapshot.
type MatchedRulesResponse struct {
	CreditScoreMatch bool `json:"credit_score_match"`
	BusinessAgeMatch bool `json:"business_age_match"`
}

// LoanApplicationResponse is the external representation of an application.
type LoanApplicationResponse struct {
	ID                  string               `json:"id"`
	BorrowerID          string               `json:"user_id"`
	LoanProductID       string               `json:"loan_product_id"`
	LenderID            string               `json:"lender_id"`
	Limit               decimal.Decimal      `json:"limit"`
	TenureMonths        int                  `json:"tenure_months"`
	Status              string               `json:"application_status"`
	MatchedRules        MatchedRulesResponse `json:"matched_rules"`
	Disbursement        bool                 `json:"disbursement"`
	EligibilityRecordID string               `json:"eligibility_id,omitempty"`
	ProcessedBy         string               `json:"processed_by,omitempty"`
	ProcessedAt         *time.Time           `json:"processed_at,omitempty"`
	DisbursedBy         string               `json:"disbursed_by,omitempty"`
	DisbursedAt         *time.Time           `json:"disbursed_at,omitempty"`
	RejectionReason     string               `json:"rejection_reason,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

// CallLogResponse is one audit trail entry.
type CallLogResponse struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	AuthorID      string    `json:"author_id"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// LenderParamsResponse is the external representation of a parameter set.
type LenderParamsResponse struct {
	ID                   string          `json:"id"`
	LenderID             string          `json:"lender_id"`
	LoanProductID        string          `json:"loan_product_id"`
	MinBusinessAgeMonths int             `json:"min_business_age_months"`
	GSTRequired          bool            `json:"gst_required"`
	MinMaintainedBalance decimal.Decimal `json:"min_maintained_balance"`
	MaxOutflowRatio      decimal.Decimal `json:"max_outflow_ratio"`
	MinMonthlyInflow     decimal.Decimal `json:"min_monthly_inflow"`
	MinRecommendedLimit  decimal.Decimal `json:"min_recommended_limit"`
	MaxRecommendedLimit  decimal.Decimal `json:"max_recommended_limit"`
	BusinessMixCategory  string          `json:"business_mix_category"`
	MinCreditScore       int             `json:"min_credit_score"`
	MaxCreditScore       int             `json:"max_credit_score"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// LoanProductResponse is the external representation of a catalog entry.
type LoanProductResponse struct {
	ID                   string          `json:"id"`
	LenderID             string          `json:"lender_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	LoanType             string          `json:"loan_type"`
	TargetSegment        string          `json:"target_segment,omitempty"`
	MinTenureMonths      int             `json:"min_tenure_months"`
	MaxTenureMonths      int             `json:"max_tenure_months"`
	MinAmount            decimal.Decimal `json:"min_amount"`
	MaxAmount            decimal.Decimal `json:"max_amount"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	ProcessingFeePercent decimal.Decimal `json:"processing_fee_percent,omitempty"`
	PrepaymentPenalty    decimal.Decimal `json:"prepayment_penalty,omitempty"`
	LatePaymentFee       decimal.Decimal `json:"late_payment_fee,omitempty"`
	GracePeriodDays      int             `json:"grace_period_days,omitempty"`
	RequiredDocuments    []string        `json:"required_documents,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
