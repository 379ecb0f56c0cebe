package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/pkg/postgres"
)

// EligibilityRecordRepo implements port.EligibilityRecordRepository. Offers
// are stored as a JSONB document; they are immutable once written and only
// ever read back whole.
type EligibilityRecordRepo struct {
	db postgres.Querier
}

// NewEligibilityRecordRepo creates a new repository backed by PostgreSQL.
func NewEligibilityRecordRepo(db postgres.Querier) *EligibilityRecordRepo {
	return &EligibilityRecordRepo{db: db}
}

type offerDoc struct {
	ProductID               string          `json:"product_id"`
	MaxEligibleAmount       decimal.Decimal `json:"max_eligible_amount"`
	RecommendedTenureMonths int             `json:"recommended_tenure_months"`
}

// Save inserts a new eligibility record. Records are append-only.
func (r *EligibilityRecordRepo) Save(ctx context.Context, record model.EligibilityRecord) error {
	offers := record.Offers()
	docs := make([]offerDoc, len(offers))
	for i, o := range offers {
		docs[i] = offerDoc(o)
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshal offers: %w", err)
	}

	query := `
		INSERT INTO eligibility_records (
			id, borrower_id, lender_params_id, offers, checked_at, expires_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err = r.db.Exec(ctx, query,
		record.ID(), record.BorrowerID(), record.LenderParamsID(),
		payload, record.CheckedAt(), record.ExpiresAt(),
	)
	if err != nil {
		return fmt.Errorf("save eligibility record: %w", mapError(err))
	}
	return nil
}

// FindByIDAndBorrower retrieves a record only when it belongs to the given
// borrower. Missing and foreign records are both reported as not found.
func (r *EligibilityRecordRepo) FindByIDAndBorrower(ctx context.Context, id, borrowerID string) (model.EligibilityRecord, error) {
	query := `
		SELECT id, borrower_id, lender_params_id, offers, checked_at, expires_at
		FROM eligibility_records
		WHERE id = $1 AND borrower_id = $2
	`
	var (
		recID, bID, paramsID string
		payload              []byte
		checkedAt, expiresAt time.Time
	)
	err := r.db.QueryRow(ctx, query, id, borrowerID).Scan(
		&recID, &bID, &paramsID, &payload, &checkedAt, &expiresAt,
	)
	if err != nil {
		return model.EligibilityRecord{}, fmt.Errorf("find eligibility record: %w", mapError(err))
	}

	var docs []offerDoc
	if err := json.Unmarshal(payload, &docs); err != nil {
		return model.EligibilityRecord{}, fmt.Errorf("unmarshal offers: %w", err)
	}
	offers := make([]model.EligibleProduct, len(docs))
	for i, d := range docs {
		offers[i] = model.EligibleProduct(d)
	}

	return model.ReconstructEligibilityRecord(recID, bID, paramsID, offers, checkedAt, expiresAt), nil
}
