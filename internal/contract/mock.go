package contract

import (
	"context"
	"time"

	"github.com/huangsam/sizewatch/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// RevParse implements the GitClient interface.
func (m *MockGitClient) RevParse(ctx context.Context, repoPath string, ref string) (string, error) {
	ret := m.Called(ctx, repoPath, ref)
	return ret.String(0), ret.Error(1)
}

// MergeBase implements the GitClient interface.
func (m *MockGitClient) MergeBase(ctx context.Context, repoPath string, a, b string) (string, error) {
	ret := m.Called(ctx, repoPath, a, b)
	return ret.String(0), ret.Error(1)
}

// Fetch implements the GitClient interface.
func (m *MockGitClient) Fetch(ctx context.Context, repoPath string, remote string, ref string) error {
	return m.Called(ctx, repoPath, remote, ref).Error(0)
}

// AddWorktree implements the GitClient interface.
func (m *MockGitClient) AddWorktree(ctx context.Context, repoPath string, dir string, ref string) error {
	return m.Called(ctx, repoPath, dir, ref).Error(0)
}

// RemoveWorktree implements the GitClient interface.
func (m *MockGitClient) RemoveWorktree(ctx context.Context, repoPath string, dir string) error {
	return m.Called(ctx, repoPath, dir).Error(0)
}

// MockCommandRunner is a mock implementation of CommandRunner for testing.
type MockCommandRunner struct {
	mock.Mock
}

var _ CommandRunner = &MockCommandRunner{} // Compile-time check

// RunCommand implements the CommandRunner interface.
func (m *MockCommandRunner) RunCommand(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, dir, name}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// MockSizeCollector is a mock implementation of SizeCollector for testing.
type MockSizeCollector struct {
	mock.Mock
}

var _ SizeCollector = &MockSizeCollector{} // Compile-time check

// Collect implements the SizeCollector interface.
func (m *MockSizeCollector) Collect(ctx context.Context, root string) (schema.SizeMap, error) {
	ret := m.Called(ctx, root)
	sizes, _ := ret.Get(0).(schema.SizeMap)
	return sizes, ret.Error(1)
}

// MockReporter is a mock implementation of Reporter for testing.
type MockReporter struct {
	mock.Mock
}

var _ Reporter = &MockReporter{} // Compile-time check

// Publish implements the Reporter interface.
func (m *MockReporter) Publish(ctx context.Context, report string, summary schema.DiffSummary) error {
	return m.Called(ctx, report, summary).Error(0)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, baseRef, headRef string, compression schema.CompressionMode, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, baseRef, headRef, compression, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordFileSizes implements the HistoryStore interface.
func (m *MockHistoryStore) RecordFileSizes(runID int64, records []schema.FileSizeRecord) error {
	return m.Called(runID, records).Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totals schema.RunTotals) error {
	return m.Called(runID, endTime, totals).Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.RunRecord)
	return runs, args.Error(1)
}

// GetAllFileSizes implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllFileSizes() ([]schema.FileSizeRow, error) {
	args := m.Called()
	rows, _ := args.Get(0).([]schema.FileSizeRow)
	return rows, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	return m.Called().Error(0)
}
