package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/pkg/postgres"
)

const loanProductColumns = `
	id, lender_id, name, description, loan_type, target_segment,
	min_tenure_months, max_tenure_months, min_amount, max_amount,
	interest_rate, processing_fee_percent, prepayment_penalty,
	late_payment_fee, grace_period_days, required_documents,
	created_at, updated_at`

// LoanProductRepo implements port.LoanProductRepository.
type LoanProductRepo struct {
	db postgres.Querier
}

// NewLoanProductRepo creates a new repository backed by PostgreSQL.
func NewLoanProductRepo(db postgres.Querier) *LoanProductRepo {
	return &LoanProductRepo{db: db}
}

// Save inserts a new catalog entry.
func (r *LoanProductRepo) Save(ctx context.Context, product model.LoanProduct) error {
	query := `
		INSERT INTO loan_products (` + loanProductColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`
	_, err := r.db.Exec(ctx, query,
		product.ID(), product.LenderID(), product.Name(), product.Description(),
		product.LoanType(), product.TargetSegment(),
		product.MinTenureMonths(), product.MaxTenureMonths(),
		product.MinAmount(), product.MaxAmount(),
		product.InterestRate(), product.ProcessingFeePercent(), product.PrepaymentPenalty(),
		product.LatePaymentFee(), product.GracePeriodDays(), product.RequiredDocuments(),
		product.CreatedAt(), product.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan product: %w", mapError(err))
	}
	return nil
}

// Update rewrites the terms of an existing entry.
func (r *LoanProductRepo) Update(ctx context.Context, product model.LoanProduct) error {
	query := `
		UPDATE loan_products SET
			name                   = $3,
			description            = $4,
			loan_type              = $5,
			target_segment         = $6,
			min_tenure_months      = $7,
			max_tenure_months      = $8,
			min_amount             = $9,
			max_amount             = $10,
			interest_rate          = $11,
			processing_fee_percent = $12,
			prepayment_penalty     = $13,
			late_payment_fee       = $14,
			grace_period_days      = $15,
			required_documents     = $16,
			updated_at             = $17
		WHERE id = $1 AND lender_id = $2
	`
	tag, err := r.db.Exec(ctx, query,
		product.ID(), product.LenderID(), product.Name(), product.Description(),
		product.LoanType(), product.TargetSegment(),
		product.MinTenureMonths(), product.MaxTenureMonths(),
		product.MinAmount(), product.MaxAmount(),
		product.InterestRate(), product.ProcessingFeePercent(), product.PrepaymentPenalty(),
		product.LatePaymentFee(), product.GracePeriodDays(), product.RequiredDocuments(),
		product.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("update loan product: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// FindByID retrieves one entry owned by the given lender.
func (r *LoanProductRepo) FindByID(ctx context.Context, lenderID, id string) (model.LoanProduct, error) {
	query := `SELECT ` + loanProductColumns + ` FROM loan_products WHERE id = $1 AND lender_id = $2`
	return scanProduct(r.db.QueryRow(ctx, query, id, lenderID))
}

// GetByID retrieves one entry regardless of owner. Used to resolve the
// owning lender during application intake.
func (r *LoanProductRepo) GetByID(ctx context.Context, id string) (model.LoanProduct, error) {
	query := `SELECT ` + loanProductColumns + ` FROM loan_products WHERE id = $1`
	return scanProduct(r.db.QueryRow(ctx, query, id))
}

// FindByLenderID retrieves every entry owned by the given lender, newest first.
func (r *LoanProductRepo) FindByLenderID(ctx context.Context, lenderID string) ([]model.LoanProduct, error) {
	query := `SELECT ` + loanProductColumns + ` FROM loan_products WHERE lender_id = $1 ORDER BY created_at DESC, id`
	return r.scanMany(ctx, query, lenderID)
}

// FindByLenderIDs retrieves the combined catalogs of several lenders in one
// round trip.
func (r *LoanProductRepo) FindByLenderIDs(ctx context.Context, lenderIDs []string) ([]model.LoanProduct, error) {
	if len(lenderIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + loanProductColumns + ` FROM loan_products WHERE lender_id = ANY($1) ORDER BY created_at, id`
	return r.scanMany(ctx, query, lenderIDs)
}

// Delete removes one entry owned by the given lender.
func (r *LoanProductRepo) Delete(ctx context.Context, lenderID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM loan_products WHERE id = $1 AND lender_id = $2`, id, lenderID)
	if err != nil {
		return fmt.Errorf("delete loan product: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

func (r *LoanProductRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.LoanProduct, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loan products: %w", err)
	}
	defer rows.Close()

	var result []model.LoanProduct
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, product)
	}
	return result, rows.Err()
}

func scanProduct(s scannable) (model.LoanProduct, error) {
	var (
		id, lenderID         string
		attrs                model.LoanProductAttrs
		createdAt, updatedAt time.Time
	)

	err := s.Scan(
		&id, &lenderID, &attrs.Name, &attrs.Description,
		&attrs.LoanType, &attrs.TargetSegment,
		&attrs.MinTenureMonths, &attrs.MaxTenureMonths,
		&attrs.MinAmount, &attrs.MaxAmount,
		&attrs.InterestRate, &attrs.ProcessingFeePercent, &attrs.PrepaymentPenalty,
		&attrs.LatePaymentFee, &attrs.GracePeriodDays, &attrs.RequiredDocuments,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.LoanProduct{}, fmt.Errorf("scan loan product: %w", mapError(err))
	}

	return model.ReconstructLoanProduct(id, lenderID, attrs, createdAt, updatedAt), nil
}
