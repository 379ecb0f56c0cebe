package usecase_test

import (
	"context"

	"github.com/ArchanSureja/QuickCredit/internal/domain/event"
	"github.com/ArchanSureja/QuickCredit/internal/domain/model"
	"github.com/ArchanSureja/QuickCredit/internal/domain/port"
	"github.com/ArchanSureja/QuickCredit/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockLenderParamsRepository struct {
	saveFunc         func(ctx context.Context, params model.LenderParameterSet) error
	updateFunc       func(ctx context.Context, params model.LenderParameterSet) error
	findByIDFunc     func(ctx context.Context, lenderID, id string) (model.LenderParameterSet, error)
	findByLenderFunc func(ctx context.Context, lenderID string) ([]model.LenderParameterSet, error)
	deleteFunc       func(ctx context.Context, lenderID, id string) error
	findMatchingFunc func(ctx context.Context, profile valueobject.BorrowerProfile) ([]model.LenderParameterSet, error)
	saved            []model.LenderParameterSet
}

func (m *mockLenderParamsRepository) Save(ctx context.Context, params model.LenderParameterSet) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, params)
	}
	m.saved = append(m.saved, params)
	return nil
}

func (m *mockLenderParamsRepository) Update(ctx context.Context, params model.LenderParameterSet) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, params)
	}
	return nil
}

func (m *mockLenderParamsRepository) FindByID(ctx context.Context, lenderID, id string) (model.LenderParameterSet, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, lenderID, id)
	}
	return model.LenderParameterSet{}, port.ErrNotFound
}

func (m *mockLenderParamsRepository) FindByLenderID(ctx context.Context, lenderID string) ([]model.LenderParameterSet, error) {
	if m.findByLenderFunc != nil {
		return m.findByLenderFunc(ctx, lenderID)
	}
	return nil, nil
}

func (m *mockLenderParamsRepository) Delete(ctx context.Context, lenderID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lenderID, id)
	}
	return nil
}

func (m *mockLenderParamsRepository) FindMatching(ctx context.Context, profile valueobject.BorrowerProfile) ([]model.LenderParameterSet, error) {
	if m.findMatchingFunc != nil {
		return m.findMatchingFunc(ctx, profile)
	}
	return nil, nil
}

type mockLoanProductRepository struct {
	saveFunc            func(ctx context.Context, product model.LoanProduct) error
	updateFunc          func(ctx context.Context, product model.LoanProduct) error
	findByIDFunc        func(ctx context.Context, lenderID, id string) (model.LoanProduct, error)
	getByIDFunc         func(ctx context.Context, id string) (model.LoanProduct, error)
	findByLenderFunc    func(ctx context.Context, lenderID string) ([]model.LoanProduct, error)
	findByLenderIDsFunc func(ctx context.Context, lenderIDs []string) ([]model.LoanProduct, error)
	deleteFunc          func(ctx context.Context, lenderID, id string) error
	saved               []model.LoanProduct
}

func (m *mockLoanProductRepository) Save(ctx context.Context, product model.LoanProduct) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, product)
	}
	m.saved = append(m.saved, product)
	return nil
}

func (m *mockLoanProductRepository) Update(ctx context.Context, product model.LoanProduct) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, product)
	}
	return nil
}

func (m *mockLoanProductRepository) FindByID(ctx context.Context, lenderID, id string) (model.LoanProduct, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, lenderID, id)
	}
	return model.LoanProduct{}, port.ErrNotFound
}

func (m *mockLoanProductRepository) GetByID(ctx context.Context, id string) (model.LoanProduct, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return model.LoanProduct{}, port.ErrNotFound
}

func (m *mockLoanProductRepository) FindByLenderID(ctx context.Context, lenderID string) ([]model.LoanProduct, error) {
	if m.findByLenderFunc != nil {
		return m.findByLenderFunc(ctx, lenderID)
	}
	return nil, nil
}

func (m *mockLoanProductRepository) FindByLenderIDs(ctx context.Context, lenderIDs []string) ([]model.LoanProduct, error) {
	if m.findByLenderIDsFunc != nil {
		return m.findByLenderIDsFunc(ctx, lenderIDs)
	}
	return nil, nil
}

func (m *mockLoanProductRepository) Delete(ctx context.Context, lenderID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lenderID, id)
	}
	return nil
}

type mockEligibilityRecordRepository struct {
	saveFunc func(ctx context.Context, record model.EligibilityRecord) error
	findFunc func(ctx context.Context, id, borrowerID string) (model.EligibilityRecord, error)
	saved    []model.EligibilityRecord
}

func (m *mockEligibilityRecordRepository) Save(ctx context.Context, record model.EligibilityRecord) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, record)
	}
	m.saved = append(m.saved, record)
	return nil
}

func (m *mockEligibilityRecordRepository) FindByIDAndBorrower(ctx context.Context, id, borrowerID string) (model.EligibilityRecord, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, id, borrowerID)
	}
	return model.EligibilityRecord{}, port.ErrNotFound
}

type mockLoanApplicationRepository struct {
	saveFunc           func(ctx context.Context, app model.LoanApplication) error
	findByIDFunc       func(ctx context.Context, lenderID, id string) (model.LoanApplication, error)
	findByLenderFunc   func(ctx context.Context, lenderID string, status *valueobject.ApplicationStatus) ([]model.LoanApplication, error)
	findByBorrowerFunc func(ctx context.Context, borrowerID string) ([]model.LoanApplication, error)
	transitionFunc     func(ctx context.Context, lenderID, id string, t port.StatusTransition) (model.LoanApplication, error)
	appendCallLogFunc  func(ctx context.Context, lenderID string, log model.CallLog) error
	listCallLogsFunc   func(ctx context.Context, lenderID, applicationID string) ([]model.CallLog, error)
	saved              []model.LoanApplication
	appendedLogs       []model.CallLog
}

func (m *mockLoanApplicationRepository) Save(ctx context.Context, app model.LoanApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.saved = append(m.saved, app)
	return nil
}

func (m *mockLoanApplicationRepository) FindByID(ctx context.Context, lenderID, id string) (model.LoanApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, lenderID, id)
	}
	return model.LoanApplication{}, port.ErrNotFound
}

func (m *mockLoanApplicationRepository) FindByLenderID(ctx context.Context, lenderID string, status *valueobject.ApplicationStatus) ([]model.LoanApplication, error) {
	if m.findByLenderFunc != nil {
		return m.findByLenderFunc(ctx, lenderID, status)
	}
	return nil, nil
}

func (m *mockLoanApplicationRepository) FindByBorrowerID(ctx context.Context, borrowerID string) ([]model.LoanApplication, error) {
	if m.findByBorrowerFunc != nil {
		return m.findByBorrowerFunc(ctx, borrowerID)
	}
	return nil, nil
}

func (m *mockLoanApplicationRepository) Transition(ctx context.Context, lenderID, id string, t port.StatusTransition) (model.LoanApplication, error) {
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, lenderID, id, t)
	}
	return model.LoanApplication{}, port.ErrNotFound
}

func (m *mockLoanApplicationRepository) AppendCallLog(ctx context.Context, lenderID string, log model.CallLog) error {
	if m.appendCallLogFunc != nil {
		return m.appendCallLogFunc(ctx, lenderID, log)
	}
	m.appendedLogs = append(m.appendedLogs, log)
	return nil
}

func (m *mockLoanApplicationRepository) ListCallLogs(ctx context.Context, lenderID, applicationID string) ([]model.CallLog, error) {
	if m.listCallLogsFunc != nil {
		return m.listCallLogsFunc(ctx, lenderID, applicationID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}
