package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// BusinessMixCategory – immutable value object
// ---------------------------------------------------------------------------

// BusinessMixCategory classifies the borrower business a parameter set targets.
type BusinessMixCategory struct {
	value string
}

const (
	mixRetail        = "retail"
	mixWholesale     = "wholesale"
	mixManufacturing = "manufacturing"
	mixService       = "service"
	mixMixed         = "mixed"
)

var (
	BusinessMixRetail        = BusinessMixCategory{value: mixRetail}
	BusinessMixWholesale     = BusinessMixCategory{value: mixWholesale}
	BusinessMixManufacturing = BusinessMixCategory{value: mixManufacturing}
	BusinessMixService       = BusinessMixCategory{value: mixService}
	BusinessMixMixed         = BusinessMixCategory{value: mixMixed}
)

var validBusinessMixCategories = map[string]BusinessMixCategory{
	mixRetail:        BusinessMixRetail,
	mixWholesale:     BusinessMixWholesale,
	mixManufacturing: BusinessMixManufacturing,
	mixService:       BusinessMixService,
	mixMixed:         BusinessMixMixed,
}

// NewBusinessMixCategory creates a BusinessMixCategory from a raw string.
func NewBusinessMixCategory(s string) (BusinessMixCategory, error) {
	v, ok := validBusinessMixCategories[s]
	if !ok {
		return BusinessMixCategory{}, fmt.Errorf("invalid business mix category: %q", s)
	}
	return v, nil
}

// String returns the string representation of the category.
func (c BusinessMixCategory) String() string { return c.value }

// IsZero returns true when not initialised.
func (c BusinessMixCategory) IsZero() bool { return c.value == "" }

// Equal returns true when both categories match.
func (c BusinessMixCategory) Equal(other BusinessMixCategory) bool {
	return c.value == other.value
}
