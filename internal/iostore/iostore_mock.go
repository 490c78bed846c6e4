package iostore

import (
	"time"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
	"github.com/stretchr/testify/mock"
)

// MockRunManager is a mock implementation of RunManager for testing.
type MockRunManager struct {
	mock.Mock
}

var _ contract.RunManager = &MockRunManager{} // Compile-time check

// GetRunStore implements the RunManager interface.
func (m *MockRunManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	runID, _ := args.Get(0).(int64)
	return runID, args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totals schema.RunTotals) error {
	args := m.Called(runID, endTime, totals)
	return args.Error(0)
}

// RecordFileImports implements the RunStore interface.
func (m *MockRunStore) RecordFileImports(runID int64, filePath string, imports []string) error {
	args := m.Called(runID, filePath, imports)
	return args.Error(0)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllFileImports implements the RunStore interface.
func (m *MockRunStore) GetAllFileImports() ([]schema.FileImportRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.FileImportRecord)
	return records, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.RunStatus)
	return status, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
