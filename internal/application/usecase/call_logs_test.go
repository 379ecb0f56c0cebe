package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/application/usecase"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
)

func TestCallLog_Append(t *testing.T) {
	t.Run("appends a note to an owned application", func(t *testing.T) {
		var appended []model.CallLog
		appRepo := &mockLoanApplicationRepository{
			appendCallLogFunc: func(_ context.Context, lenderID string, log model.CallLog) error {
				assert.Equal(t, "lender-1", lenderID)
				appended = append(appended, log)
				return nil
			},
		}
		uc := usecase.NewCallLogUseCase(appRepo)

		resp, err := uc.Append(context.Background(), dto.AddCallLogRequest{
			LenderID:      "lender-1",
			ApplicationID: "app-1",
			Notes:         "spoke to owner, documents promised by Friday",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "app-1", resp.ApplicationID)
		assert.Equal(t, "lender-1", resp.AuthorID)
		assert.Equal(t, "spoke to owner, documents promised by Friday", resp.Notes)
		require.Len(t, appended, 1)
	})

	t.Run("empty notes are rejected before the repository is touched", func(t *testing.T) {
		appRepo := &mockLoanApplicationRepository{
			appendCallLogFunc: func(_ context.Context, _ string, _ model.CallLog) error {
				t.Fatal("repository should not be called")
				return nil
			},
		}
		uc := usecase.NewCallLogUseCase(appRepo)

		_, err := uc.Append(context.Background(), dto.AddCallLogRequest{
			LenderID:      "lender-1",
			ApplicationID: "app-1",
		})
		require.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("foreign application surfaces not found", func(t *testing.T) {
		appRepo := &mockLoanApplicationRepository{
			appendCallLogFunc: func(_ context.Context, _ string, _ model.CallLog) error {
				return port.ErrNotFound
			},
		}
		uc := usecase.NewCallLogUseCase(appRepo)

		_, err := uc.Append(context.Background(), dto.AddCallLogRequest{
			LenderID:      "lender-2",
			ApplicationID: "app-1",
			Notes:         "note",
		})
		require.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestCallLog_List(t *testing.T) {
	t.Run("returns entries oldest first", func(t *testing.T) {
		now := time.Now().UTC()
		appRepo := &mockLoanApplicationRepository{
			listCallLogsFunc: func(_ context.Context, lenderID, applicationID string) ([]model.CallLog, error) {
				assert.Equal(t, "lender-1", lenderID)
				assert.Equal(t, "app-1", applicationID)
				return []model.CallLog{
					{ID: "log-1", ApplicationID: "app-1", AuthorID: "lender-1", Notes: "first call", CreatedAt: now.Add(-time.Hour)},
					{ID: "log-2", ApplicationID: "app-1", AuthorID: "lender-1", Notes: "second call", CreatedAt: now},
				}, nil
			},
		}
		uc := usecase.NewCallLogUseCase(appRepo)

		logs, err := uc.List(context.Background(), "lender-1", "app-1")
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "first call", logs[0].Notes)
		assert.Equal(t, "second call", logs[1].Notes)
	})

	t.Run("no entries yields an empty slice", func(t *testing.T) {
		appRepo := &mockLoanApplicationRepository{
			listCallLogsFunc: func(_ context.Context, _, _ string) ([]model.CallLog, error) {
				return nil, nil
			},
		}
		uc := usecase.NewCallLogUseCase(appRepo)

		logs, err := uc.List(context.Background(), "lender-1", "app-1")
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}
