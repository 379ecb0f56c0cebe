package grpc

// Message types mirroring quickcredit/lending/v1/lending.proto. Monetary
// values travel as decimal strings; the JSON codec carries them on the wire.

// CheckEligibilityRequest is the borrower's financial profile.
type CheckEligibilityRequest struct {
	BusinessAgeMonths     int    `json:"business_age_months"`
	HasGst                bool   `json:"has_gst"`
	CurrentBalance        string `json:"current_balance"`
	AvgMonthlyInflow      string `json:"avg_monthly_inflow"`
	CreditScore           int    `json:"credit_score"`
	RequestedAmount       string `json:"requested_amount,omitempty"`
	PreferredTenureMonths int    `json:"preferred_tenure_months,omitempty"`
}

// EligibleOffer is one product the borrower qualified for.
type EligibleOffer struct {
	ProductId               string `json:"product_id"`
	ProductName             string `json:"product_name"`
	LoanType                string `json:"loan_type"`
	InterestRate            string `json:"interest_rate"`
	MaxEligibleAmount       string `json:"max_eligible_amount"`
	RecommendedTenureMonths int    `json:"recommended_tenure_months"`
}

// CheckEligibilityResponse is the offer search result.
type CheckEligibilityResponse struct {
	EligibleProducts []*EligibleOffer `json:"eligible_products"`
	EligibilityId    string           `json:"eligibility_id,omitempty"`
	Message          string           `json:"message"`
}

// ApplyForLoanRequest files an application against an eligibility record.
type ApplyForLoanRequest struct {
	ProductId     string `json:"product_id"`
	Amount        string `json:"amount"`
	TenureMonths  int    `json:"tenure_months,omitempty"`
	EligibilityId string `json:"eligibility_id"`
}

// LoanApplication is the wire representation of an application.
type LoanApplication struct {
	Id            string `json:"id"`
	UserId        string `json:"user_id"`
	LoanProductId string `json:"loan_product_id"`
	LenderId      string `json:"lender_id"`
	Limit         string `json:"limit"`
	TenureMonths  int    `json:"tenure_months"`
	Status        string `json:"application_status"`
	Disbursement  bool   `json:"disbursement"`
	CreatedAt     string `json:"created_at"`
}

// ApplyForLoanResponse returns the newly created application.
type ApplyForLoanResponse struct {
	Application *LoanApplication `json:"application"`
}

// GetApplicationRequest fetches one application from the caller's book.
type GetApplicationRequest struct {
	ApplicationId string `json:"application_id"`
}

// GetApplicationResponse returns the requested application.
type GetApplicationResponse struct {
	Application *LoanApplication `json:"application"`
}
