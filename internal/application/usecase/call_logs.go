package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/application/dto"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
)

// CallLogUseCase maintains the append-only contact trail on an application.
// Entries are never edited or removed once written.
type CallLogUseCase struct {
	appRepo port.LoanApplicationRepository
}

// NewCallLogUseCase wires dependencies.
func NewCallLogUseCase(appRepo port.LoanApplicationRepository) *CallLogUseCase {
	return &CallLogUseCase{appRepo: appRepo}
}

// Append adds one entry to an application owned by the caller.
func (uc *CallLogUseCase) Append(
	ctx context.Context,
	req dto.AddCallLogRequest,
) (dto.CallLogResponse, error) {
	log, err := model.NewCallLog(req.ApplicationID, req.LenderID, req.Notes, time.Now().UTC())
	if err != nil {
		return dto.CallLogResponse{}, err
	}
	if err := uc.appRepo.AppendCallLog(ctx, req.LenderID, log); err != nil {
		return dto.CallLogResponse{}, fmt.Errorf("append call log: %w", err)
	}
	return toCallLogResponse(log), nil
}

// List returns every entry for an application owned by the caller, oldest first.
func (uc *CallLogUseCase) List(
	ctx context.Context,
	lenderID, applicationID string,
) ([]dto.CallLogResponse, error) {
	logs, err := uc.appRepo.ListCallLogs(ctx, lenderID, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	out := make([]dto.CallLogResponse, len(logs))
	for i, log := range logs {
		out[i] = toCallLogResponse(log)
	}
	return out, nil
}
