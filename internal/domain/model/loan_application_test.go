package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchanSureja/QuickCredit/internal/domain/event"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

func newApplication(t *testing.T) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication(
		"borrower-001", "product-1", "lender-1",
		decimal.NewFromInt(250000), 24,
		model.MatchedRules{CreditScoreMatch: true, BusinessAgeMatch: true},
		"record-1", time.Now().UTC(),
	)
	require.NoError(t, err)
	return app
}

func TestNewLoanApplication(t *testing.T) {
	t.Run("starts pending and raises a submitted event", func(t *testing.T) {
		app := newApplication(t)

		assert.NotEmpty(t, app.ID())
		assert.True(t, app.Status().Equal(valueobject.ApplicationStatusPending))
		assert.False(t, app.Disbursement())
		assert.Equal(t, "record-1", app.EligibilityRecordID())

		require.Len(t, app.DomainEvents(), 1)
		submitted, ok := app.DomainEvents()[0].(event.LoanApplicationSubmitted)
		require.True(t, ok)
		assert.Equal(t, app.ID(), submitted.AggregateID())
		assert.Equal(t, "lender-1", submitted.TenantID())
	})

	t.Run("empty eligibility record ID is allowed for admin creation", func(t *testing.T) {
		app, err := model.NewLoanApplication(
			"borrower-001", "product-1", "lender-1",
			decimal.NewFromInt(100000), 12,
			model.MatchedRules{}, "", time.Now().UTC(),
		)
		require.NoError(t, err)
		assert.Empty(t, app.EligibilityRecordID())
	})

	t.Run("rejects a non-positive limit", func(t *testing.T) {
		_, err := model.NewLoanApplication(
			"borrower-001", "product-1", "lender-1",
			decimal.Zero, 12, model.MatchedRules{}, "", time.Now().UTC(),
		)
		require.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("rejects a non-positive tenure", func(t *testing.T) {
		_, err := model.NewLoanApplication(
			"borrower-001", "product-1", "lender-1",
			decimal.NewFromInt(100000), 0, model.MatchedRules{}, "", time.Now().UTC(),
		)
		require.ErrorIs(t, err, model.ErrValidation)
	})
}

func TestLoanApplication_Transitions(t *testing.T) {
	now := time.Now().UTC()

	t.Run("approve stamps the admin and leaves the original untouched", func(t *testing.T) {
		app := newApplication(t).ClearEvents()

		approved, err := app.Approve("admin-1", now)
		require.NoError(t, err)

		assert.True(t, approved.Status().Equal(valueobject.ApplicationStatusApproved))
		assert.Equal(t, "admin-1", approved.ProcessedBy())
		require.NotNil(t, approved.ProcessedAt())
		assert.True(t, app.Status().Equal(valueobject.ApplicationStatusPending))
		require.Len(t, approved.DomainEvents(), 1)
	})

	t.Run("reject records the reason", func(t *testing.T) {
		app := newApplication(t).ClearEvents()

		rejected, err := app.Reject("admin-1", "insufficient inflow", now)
		require.NoError(t, err)

		assert.True(t, rejected.Status().Equal(valueobject.ApplicationStatusRejected))
		assert.Equal(t, "insufficient inflow", rejected.RejectionReason())
		assert.True(t, rejected.Status().IsTerminal())
	})

	t.Run("disburse requires approval first", func(t *testing.T) {
		app := newApplication(t).ClearEvents()

		_, err := app.MarkDisbursed("admin-1", now)
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

		approved, err := app.Approve("admin-1", now)
		require.NoError(t, err)

		disbursed, err := approved.MarkDisbursed("admin-2", now)
		require.NoError(t, err)
		assert.True(t, disbursed.Status().Equal(valueobject.ApplicationStatusDisbursed))
		assert.True(t, disbursed.Disbursement())
		assert.Equal(t, "admin-2", disbursed.DisbursedBy())
		assert.True(t, disbursed.Status().IsTerminal())
	})

	t.Run("terminal states admit no further transitions", func(t *testing.T) {
		app := newApplication(t).ClearEvents()
		rejected, err := app.Reject("admin-1", "reason", now)
		require.NoError(t, err)

		_, err = rejected.Approve("admin-1", now)
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
		_, err = rejected.MarkDisbursed("admin-1", now)
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

		approved, err := app.Approve("admin-1", now)
		require.NoError(t, err)
		disbursed, err := approved.MarkDisbursed("admin-1", now)
		require.NoError(t, err)
		_, err = disbursed.MarkDisbursed("admin-1", now)
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("double approval fails", func(t *testing.T) {
		app := newApplication(t).ClearEvents()
		approved, err := app.Approve("admin-1", now)
		require.NoError(t, err)

		_, err = approved.Approve("admin-2", now)
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestNewCallLog(t *testing.T) {
	t.Run("creates an entry with an ID", func(t *testing.T) {
		log, err := model.NewCallLog("app-1", "admin-1", "left a voicemail", time.Now().UTC())
		require.NoError(t, err)
		assert.NotEmpty(t, log.ID)
		assert.Equal(t, "app-1", log.ApplicationID)
	})

	t.Run("requires notes", func(t *testing.T) {
		_, err := model.NewCallLog("app-1", "admin-1", "", time.Now().UTC())
		require.ErrorIs(t, err, model.ErrValidation)
	})
}
