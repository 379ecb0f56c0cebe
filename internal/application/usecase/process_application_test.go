package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/application/usecase"
	"github.com/ArchanSureja/QuickCredit/internal/domain/event"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

func pendingApplication(t *testing.T) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication(
		"borrower-001", "product-1", "lender-1",
		decimal.NewFromInt(250000), 24,
		model.MatchedRules{CreditScoreMatch: true, BusinessAgeMatch: true},
		"record-1", time.Now().UTC(),
	)
	require.NoError(t, err)
	return app.ClearEvents()
}

func TestProcessApplication_Execute(t *testing.T) {
	t.Run("approves a pending application", func(t *testing.T) {
		app := pendingApplication(t)
		appRepo := &mockLoanApplicationRepository{
			findByIDFunc: func(_ context.Context, lenderID, id string) (model.LoanApplication, error) {
				if lenderID == "lender-1" && id == app.ID() {
					return app, nil
				}
				return model.LoanApplication{}, port.ErrNotFound
			},
			transitionFunc: func(_ context.Context, lenderID, id string, tr port.StatusTransition) (model.LoanApplication, error) {
				assert.Equal(t, "lender-1", lenderID)
				assert.Equal(t, app.ID(), id)
				assert.Equal(t, valueobject.ApplicationStatusPending, tr.From)
				assert.Equal(t, valueobject.ApplicationStatusApproved, tr.To)
				next, err := app.Approve(tr.ActorID, tr.At)
				require.NoError(t, err)
				return next.ClearEvents(), nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewProcessApplicationUseCase(appRepo, publisher)

		resp, err := uc.Execute(context.Background(), dto.ProcessApplicationRequest{
			LenderID:      "lender-1",
			ApplicationID: app.ID(),
			Action:        usecase.ActionApprove,
		})
		require.NoError(t, err)

		assert.Equal(t, valueobject.ApplicationStatusApproved.String(), resp.Status)
		assert.Equal(t, "lender-1", resp.ProcessedBy)
		require.NotNil(t, resp.ProcessedAt)

		require.Len(t, publisher.publishedEvents, 1)
		_, ok := publisher.publishedEvents[0].(event.LoanApplicationApproved)
		assert.True(t, ok)
	})

	t.Run("rejects with a reason", func(t *testing.T) {
		app := pendingApplication(t)
		appRepo := &mockLoanApplicationRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanApplication, error) {
				return app, nil
			},
			transitionFunc: func(_ context.Context, _, _ string, tr port.StatusTransition) (model.LoanApplication, error) {
				assert.Equal(t, valueobject.ApplicationStatusRejected, tr.To)
				assert.Equal(t, "thin credit file", tr.RejectionReason)
				next, err := app.Reject(tr.ActorID, tr.RejectionReason, tr.At)
				require.NoError(t, err)
				return next.ClearEvents(), nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewProcessApplicationUseCase(appRepo, publisher)

		resp, err := uc.Execute(context.Background(), dto.ProcessApplicationRequest{
			LenderID:        "lender-1",
			ApplicationID:   app.ID(),
			Action:          usecase.ActionReject,
			RejectionReason: "thin credit file",
		})
		require.NoError(t, err)

		assert.Equal(t, valueobject.ApplicationStatusRejected.String(), resp.Status)
		assert.Equal(t, "thin credit file", resp.RejectionReason)

		require.Len(t, publisher.publishedEvents, 1)
		_, ok := publisher.publishedEvents[0].(event.LoanApplicationRejected)
		assert.True(t, ok)
	})

	t.Run("unknown action is a validation error", func(t *testing.T) {
		appRepo := &mockLoanApplicationRepository{}
		uc := usecase.NewProcessApplicationUseCase(appRepo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ProcessApplicationRequest{
			LenderID:      "lender-1",
			ApplicationID: "app-1",
			Action:        "escalate",
		})
		require.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("a processed application fails before the store is touched", func(t *testing.T) {
		app := pendingApplication(t)
		approved, err := app.Approve("lender-1", time.Now().UTC())
		require.NoError(t, err)

		publisher := &mockEventPublisher{}
		appRepo := &mockLoanApplicationRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanApplication, error) {
				return approved.ClearEvents(), nil
			},
			transitionFunc: func(_ context.Context, _, _ string, _ port.StatusTransition) (model.LoanApplication, error) {
				t.Fatal("transition must not run for a non-pending application")
				return model.LoanApplication{}, nil
			},
		}
		uc := usecase.NewProcessApplicationUseCase(appRepo, publisher)

		_, err = uc.Execute(context.Background(), dto.ProcessApplicationRequest{
			LenderID:      "lender-1",
			ApplicationID: app.ID(),
			Action:        usecase.ActionApprove,
		})
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("a racing decision loses on the status guard", func(t *testing.T) {
		app := pendingApplication(t)
		publisher := &mockEventPublisher{}
		appRepo := &mockLoanApplicationRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanApplication, error) {
				return app, nil
			},
			transitionFunc: func(_ context.Context, _, _ string, _ port.StatusTransition) (model.LoanApplication, error) {
				return model.LoanApplication{}, valueobject.ErrInvalidStatusTransition
			},
		}
		uc := usecase.NewProcessApplicationUseCase(appRepo, publisher)

		_, err := uc.Execute(context.Background(), dto.ProcessApplicationRequest{
			LenderID:      "lender-1",
			ApplicationID: app.ID(),
			Action:        usecase.ActionApprove,
		})
		require.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("missing application passes through not found", func(t *testing.T) {
		uc := usecase.NewProcessApplicationUseCase(&mockLoanApplicationRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ProcessApplicationRequest{
			LenderID:      "lender-1",
			ApplicationID: "missing",
			Action:        usecase.ActionReject,
		})
		require.ErrorIs(t, err, port.ErrNotFound)
	})
}
