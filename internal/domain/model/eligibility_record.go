package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// EligibilityRecord aggregate root
// ---------------------------------------------------------------------------

// DefaultEligibilityValidity is how long a check result stays redeemable.
const DefaultEligibilityValidity = 30 * 24 * time.Hour

// EligibleProduct is one offer inside an eligibility record.
type EligibleProduct struct {
	ProductID               string
	MaxEligibleAmount       decimal.Decimal
	RecommendedTenureMonths int
}

// EligibilityRecord is a dated snapshot of the products a borrower qualified
// for and at what capped amount. It is never mutated after creation; expiry
// is advisory unless enforcement is switched on at intake.
type EligibilityRecord struct {
	id             string
	borrowerID     string
	lenderParamsID string
	offers         []EligibleProduct
	checkedAt      time.Time
	expiresAt      time.Time
}

// NewEligibilityRecord creates a record for a successful eligibility check.
func NewEligibilityRecord(borrowerID, lenderParamsID string, offers []EligibleProduct, now time.Time, validity time.Duration) (EligibilityRecord, error) {
	if borrowerID == "" {
		return EligibilityRecord{}, fmt.Errorf("%w: borrower ID is required", ErrValidation)
	}
	if lenderParamsID == "" {
		return EligibilityRecord{}, fmt.Errorf("%w: lender parameter set ID is required", ErrValidation)
	}
	if len(offers) == 0 {
		return EligibilityRecord{}, fmt.Errorf("%w: at least one eligible product is required", ErrValidation)
	}
	if validity <= 0 {
		validity = DefaultEligibilityValidity
	}

	return EligibilityRecord{
		id:             uuid.New().String(),
		borrowerID:     borrowerID,
		lenderParamsID: lenderParamsID,
		offers:         copyOffers(offers),
		checkedAt:      now,
		expiresAt:      now.Add(validity),
	}, nil
}

// ReconstructEligibilityRecord rebuilds a record from persistence.
func ReconstructEligibilityRecord(id, borrowerID, lenderParamsID string, offers []EligibleProduct, checkedAt, expiresAt time.Time) EligibilityRecord {
	return EligibilityRecord{
		id:             id,
		borrowerID:     borrowerID,
		lenderParamsID: lenderParamsID,
		offers:         copyOffers(offers),
		checkedAt:      checkedAt,
		expiresAt:      expiresAt,
	}
}

// Offer returns the entry for the given product, if present.
func (r EligibilityRecord) Offer(productID string) (EligibleProduct, bool) {
	for _, o := range r.offers {
		if o.ProductID == productID {
			return o, true
		}
	}
	return EligibleProduct{}, false
}

// Expired reports whether the record has passed its validity window.
func (r EligibilityRecord) Expired(now time.Time) bool {
	return now.After(r.expiresAt)
}

func copyOffers(src []EligibleProduct) []EligibleProduct {
	if len(src) == 0 {
		return nil
	}
	dst := make([]EligibleProduct, len(src))
	copy(dst, src)
	return dst
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r EligibilityRecord) ID() string                { return r.id }
func (r EligibilityRecord) BorrowerID() string        { return r.borrowerID }
func (r EligibilityRecord) LenderParamsID() string    { return r.lenderParamsID }
func (r EligibilityRecord) Offers() []EligibleProduct { return copyOffers(r.offers) }
func (r EligibilityRecord) CheckedAt() time.Time      { return r.checkedAt }
func (r EligibilityRecord) ExpiresAt() time.Time      { return r.expiresAt }
