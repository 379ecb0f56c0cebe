package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
	"github.com/ArchanSureja/QuickCredit/pkg/postgres"
)

const lenderParamsColumns = `
	id, lender_id, loan_product_id,
	min_business_age_months, gst_required,
	min_maintained_balance, max_outflow_ratio, min_monthly_inflow,
	min_recommended_limit, max_recommended_limit,
	business_mix_category, min_credit_score, max_credit_score,
	created_at, updated_at`

// LenderParamsRepo implements port.LenderParameterSetRepository.
type LenderParamsRepo struct {
	db postgres.Querier
}

// NewLenderParamsRepo creates a new repository backed by PostgreSQL.
func NewLenderParamsRepo(db postgres.Querier) *LenderParamsRepo {
	return &LenderParamsRepo{db: db}
}

// Save inserts a new parameter set. A second set for the same
// (lender, product) pair fails the unique constraint.
func (r *LenderParamsRepo) Save(ctx context.Context, params model.LenderParameterSet) error {
	query := `
		INSERT INTO lender_parameter_sets (` + lenderParamsColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`
	_, err := r.db.Exec(ctx, query,
		params.ID(), params.LenderID(), params.LoanProductID(),
		params.MinBusinessAgeMonths(), params.GSTRequired(),
		params.MinMaintainedBalance(), params.MaxOutflowRatio(), params.MinMonthlyInflow(),
		params.MinRecommendedLimit(), params.MaxRecommendedLimit(),
		params.BusinessMix().String(), params.MinCreditScore(), params.MaxCreditScore(),
		params.CreatedAt(), params.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save lender params: %w", mapError(err))
	}
	return nil
}

// Update rewrites the thresholds of an existing set.
func (r *LenderParamsRepo) Update(ctx context.Context, params model.LenderParameterSet) error {
	query := `
		UPDATE lender_parameter_sets SET
			loan_product_id        = $3,
			min_business_age_months = $4,
			gst_required           = $5,
			min_maintained_balance = $6,
			max_outflow_ratio      = $7,
			min_monthly_inflow     = $8,
			min_recommended_limit  = $9,
			max_recommended_limit  = $10,
			business_mix_category  = $11,
			min_credit_score       = $12,
			max_credit_score       = $13,
			updated_at             = $14
		WHERE id = $1 AND lender_id = $2
	`
	tag, err := r.db.Exec(ctx, query,
		params.ID(), params.LenderID(), params.LoanProductID(),
		params.MinBusinessAgeMonths(), params.GSTRequired(),
		params.MinMaintainedBalance(), params.MaxOutflowRatio(), params.MinMonthlyInflow(),
		params.MinRecommendedLimit(), params.MaxRecommendedLimit(),
		params.BusinessMix().String(), params.MinCreditScore(), params.MaxCreditScore(),
		params.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("update lender params: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// FindByID retrieves one set owned by the given lender.
func (r *LenderParamsRepo) FindByID(ctx context.Context, lenderID, id string) (model.LenderParameterSet, error) {
	query := `SELECT ` + lenderParamsColumns + ` FROM lender_parameter_sets WHERE id = $1 AND lender_id = $2`
	return scanParams(r.db.QueryRow(ctx, query, id, lenderID))
}

// FindByLenderID retrieves every set owned by the given lender, newest first.
func (r *LenderParamsRepo) FindByLenderID(ctx context.Context, lenderID string) ([]model.LenderParameterSet, error) {
	query := `SELECT ` + lenderParamsColumns + ` FROM lender_parameter_sets WHERE lender_id = $1 ORDER BY created_at DESC, id`
	return r.scanMany(ctx, query, lenderID)
}

// Delete removes one set owned by the given lender.
func (r *LenderParamsRepo) Delete(ctx context.Context, lenderID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lender_parameter_sets WHERE id = $1 AND lender_id = $2`, id, lenderID)
	if err != nil {
		return fmt.Errorf("delete lender params: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// FindMatching runs the coarse eligibility filter in SQL: every threshold
// the profile clears, GST matched exactly, credit score inside the band.
// Ordered oldest first so ties resolve deterministically.
func (r *LenderParamsRepo) FindMatching(ctx context.Context, profile valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
	query := `
		SELECT ` + lenderParamsColumns + `
		FROM lender_parameter_sets
		WHERE min_business_age_months <= $1
		  AND gst_required = $2
		  AND min_maintained_balance <= $3
		  AND min_monthly_inflow <= $4
		  AND min_credit_score <= $5
		  AND max_credit_score >= $5
		ORDER BY created_at, id
	`
	return r.scanMany(ctx, query,
		profile.BusinessAgeMonths, profile.HasGST,
		profile.CurrentBalance, profile.AvgMonthlyInflow, profile.CreditScore,
	)
}

func (r *LenderParamsRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.LenderParameterSet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lender params: %w", err)
	}
	defer rows.Close()

	var result []model.LenderParameterSet
	for rows.Next() {
		params, err := scanParams(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, params)
	}
	return result, rows.Err()
}

func scanParams(s scannable) (model.LenderParameterSet, error) {
	var (
		id, lenderID, loanProductID            string
		minBusinessAge                         int
		gstRequired                            bool
		minBalance, maxOutflowRatio, minInflow decimal.Decimal
		minLimit, maxLimit                     decimal.Decimal
		mixStr                                 string
		minCreditScore, maxCreditScore         int
		createdAt, updatedAt                   time.Time
	)

	err := s.Scan(
		&id, &lenderID, &loanProductID,
		&minBusinessAge, &gstRequired,
		&minBalance, &maxOutflowRatio, &minInflow,
		&minLimit, &maxLimit,
		&mixStr, &minCreditScore, &maxCreditScore,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.LenderParameterSet{}, fmt.Errorf("scan lender params: %w", mapError(err))
	}

	mix, err := valueobject.NewBusinessMixCategory(mixStr)
	if err != nil {
		return model.LenderParameterSet{}, fmt.Errorf("parse business mix: %w", err)
	}

	return model.ReconstructLenderParameterSet(
		id, lenderID, loanProductID,
		model.LenderParameterSetAttrs{
			MinBusinessAgeMonths: minBusinessAge,
			GSTRequired:          gstRequired,
			MinMaintainedBalance: minBalance,
			MaxOutflowRatio:      maxOutflowRatio,
			MinMonthlyInflow:     minInflow,
			MinRecommendedLimit:  minLimit,
			MaxRecommendedLimit:  maxLimit,
			BusinessMix:          mix,
			MinCreditScore:       minCreditScore,
			MaxCreditScore:       maxCreditScore,
		},
		createdAt, updatedAt,
	), nil
}
