package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
	"github.com/ArchanSureja/QuickCredit/pkg/postgres"
)

const loanApplicationColumns = `
	id, borrower_id, loan_product_id, lender_id, loan_limit, tenure_months,
	status, credit_score_match, business_age_match, disbursement,
	eligibility_record_id, processed_by, processed_at,
	disbursed_by, disbursed_at, rejection_reason, created_at`

// LoanApplicationRepo implements port.LoanApplicationRepository. Unlike the
// other repositories it holds the pool itself: Transition needs its own
// transaction.
type LoanApplicationRepo struct {
	pool *pgxpool.Pool
}

// NewLoanApplicationRepo creates a new repository backed by PostgreSQL.
func NewLoanApplicationRepo(pool *pgxpool.Pool) *LoanApplicationRepo {
	return &LoanApplicationRepo{pool: pool}
}

// Save inserts a new application.
func (r *LoanApplicationRepo) Save(ctx context.Context, app model.LoanApplication) error {
	query := `
		INSERT INTO loan_applications (` + loanApplicationColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`
	rules := app.MatchedRules()
	_, err := r.pool.Exec(ctx, query,
		app.ID(), app.BorrowerID(), app.LoanProductID(), app.LenderID(),
		app.Limit(), app.TenureMonths(),
		app.Status().String(), rules.CreditScoreMatch, rules.BusinessAgeMatch, app.Disbursement(),
		textOrNil(app.EligibilityRecordID()), textOrNil(app.ProcessedBy()), app.ProcessedAt(),
		textOrNil(app.DisbursedBy()), app.DisbursedAt(), textOrNil(app.RejectionReason()), app.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan application: %w", mapError(err))
	}
	return nil
}

// FindByID retrieves one application owned by the given lender.
func (r *LoanApplicationRepo) FindByID(ctx context.Context, lenderID, id string) (model.LoanApplication, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM loan_applications WHERE id = $1 AND lender_id = $2`
	return scanApplication(r.pool.QueryRow(ctx, query, id, lenderID))
}

// FindByLenderID retrieves the lender's book, newest first, optionally
// narrowed to one status.
func (r *LoanApplicationRepo) FindByLenderID(ctx context.Context, lenderID string, status *valueobject.ApplicationStatus) ([]model.LoanApplication, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM loan_applications WHERE lender_id = $1`
	args := []any{lenderID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, status.String())
	}
	query += ` ORDER BY created_at DESC, id`
	return r.scanMany(ctx, query, args...)
}

// FindByBorrowerID retrieves every application the borrower filed, newest first.
func (r *LoanApplicationRepo) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.LoanApplication, error) {
	query := `SELECT ` + loanApplicationColumns + ` FROM loan_applications WHERE borrower_id = $1 ORDER BY created_at DESC, id`
	return r.scanMany(ctx, query, borrowerID)
}

// Transition moves an application between statuses with a single conditional
// update. The status guard is evaluated in the database, so of two racing
// actors exactly one observes a row change. On a guard miss the current
// status decides between a not-found and an invalid-transition error; the
// update and the follow-up status read share one transaction.
func (r *LoanApplicationRepo) Transition(ctx context.Context, lenderID, id string, t port.StatusTransition) (model.LoanApplication, error) {
	var query string
	args := []any{id, lenderID, t.From.String(), t.To.String(), t.ActorID, t.At}
	if t.To.Equal(valueobject.ApplicationStatusDisbursed) {
		query = `
			UPDATE loan_applications SET
				status       = $4,
				disbursement = TRUE,
				disbursed_by = $5,
				disbursed_at = $6
			WHERE id = $1 AND lender_id = $2 AND status = $3
			RETURNING ` + loanApplicationColumns
	} else {
		query = `
			UPDATE loan_applications SET
				status           = $4,
				processed_by     = $5,
				processed_at     = $6,
				rejection_reason = $7
			WHERE id = $1 AND lender_id = $2 AND status = $3
			RETURNING ` + loanApplicationColumns
		args = append(args, textOrNil(t.RejectionReason))
	}

	var app model.LoanApplication
	err := postgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		app, err = scanApplication(tx.QueryRow(ctx, query, args...))
		if err == nil {
			return nil
		}
		if !errors.Is(err, port.ErrNotFound) {
			return err
		}

		// The row exists but the guard failed: report the actual status.
		var current string
		if scanErr := tx.QueryRow(ctx,
			`SELECT status FROM loan_applications WHERE id = $1 AND lender_id = $2`,
			id, lenderID,
		).Scan(&current); scanErr != nil {
			return mapError(scanErr)
		}
		return fmt.Errorf(
			"%w: cannot move from %s to %s",
			valueobject.ErrInvalidStatusTransition, current, t.To.String(),
		)
	})
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("transition loan application: %w", err)
	}
	return app, nil
}

// AppendCallLog inserts an audit entry only when the application belongs to
// the given lender; ownership and insert are one statement.
func (r *LoanApplicationRepo) AppendCallLog(ctx context.Context, lenderID string, log model.CallLog) error {
	query := `
		INSERT INTO application_call_logs (id, application_id, author_id, notes, created_at)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (
			SELECT 1 FROM loan_applications WHERE id = $2 AND lender_id = $6
		)
	`
	tag, err := r.pool.Exec(ctx, query,
		log.ID, log.ApplicationID, log.AuthorID, log.Notes, log.CreatedAt, lenderID,
	)
	if err != nil {
		return fmt.Errorf("append call log: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// ListCallLogs returns the trail for an application owned by the given
// lender, oldest entry first.
func (r *LoanApplicationRepo) ListCallLogs(ctx context.Context, lenderID, applicationID string) ([]model.CallLog, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM loan_applications WHERE id = $1 AND lender_id = $2)`,
		applicationID, lenderID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check application ownership: %w", mapError(err))
	}
	if !exists {
		return nil, port.ErrNotFound
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, application_id, author_id, notes, created_at
		FROM application_call_logs
		WHERE application_id = $1
		ORDER BY created_at, id
	`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query call logs: %w", err)
	}
	defer rows.Close()

	var result []model.CallLog
	for rows.Next() {
		var log model.CallLog
		if err := rows.Scan(&log.ID, &log.ApplicationID, &log.AuthorID, &log.Notes, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan call log: %w", err)
		}
		result = append(result, log)
	}
	return result, rows.Err()
}

func (r *LoanApplicationRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.LoanApplication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loan applications: %w", err)
	}
	defer rows.Close()

	var result []model.LoanApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func scanApplication(s scannable) (model.LoanApplication, error) {
	var (
		id, borrowerID, productID, lenderID string
		limit                               decimal.Decimal
		tenureMonths                        int
		statusStr                           string
		creditScoreMatch, businessAgeMatch  bool
		disbursement                        bool
		eligibilityRecordID, processedBy    *string
		processedAt                         *time.Time
		disbursedBy                         *string
		disbursedAt                         *time.Time
		rejectionReason                     *string
		createdAt                           time.Time
	)

	err := s.Scan(
		&id, &borrowerID, &productID, &lenderID, &limit, &tenureMonths,
		&statusStr, &creditScoreMatch, &businessAgeMatch, &disbursement,
		&eligibilityRecordID, &processedBy, &processedAt,
		&disbursedBy, &disbursedAt, &rejectionReason, &createdAt,
	)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("scan loan application: %w", mapError(err))
	}

	status, err := valueobject.NewApplicationStatus(statusStr)
	if err != nil {
		return model.LoanApplication{}, fmt.Errorf("parse status: %w", err)
	}

	return model.ReconstructLoanApplication(
		id, borrowerID, productID, lenderID,
		limit, tenureMonths, status,
		model.MatchedRules{CreditScoreMatch: creditScoreMatch, BusinessAgeMatch: businessAgeMatch},
		disbursement,
		derefString(eligibilityRecordID),
		derefString(processedBy), processedAt,
		derefString(disbursedBy), disbursedAt,
		derefString(rejectionReason),
		createdAt,
	), nil
}
