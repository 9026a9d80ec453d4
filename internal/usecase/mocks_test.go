package usecase_test

import (
	"context"
	"os"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// MockFileSystem is a mock implementation of FileSystem
type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) ListFiles(ctx context.Context, extension string) ([]string, error) {
	args := m.Called(ctx, extension)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFileSystem) Exists(path string) bool {
	args := m.Called(path)
	if fn, ok := args.Get(0).(func(string) bool); ok {
		return fn(path)
	}
	return args.Bool(0)
}

func (m *MockFileSystem) ReadBinary(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockDebuggerClient is a mock implementation of DebuggerClient
type MockDebuggerClient struct {
	mock.Mock
}

func (m *MockDebuggerClient) Deploy(ctx context.Context, sender string, hexCode string) (string, error) {
	args := m.Called(ctx, sender, hexCode)
	return args.String(0), args.Error(1)
}

func (m *MockDebuggerClient) Run(ctx context.Context, options domain.RunOptions) (domain.VMOutput, error) {
	args := m.Called(ctx, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.VMOutput), args.Error(1)
}

func (m *MockDebuggerClient) StartServer(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDebuggerClient) StopServer(ctx context.Context, sig os.Signal) error {
	return m.Called(ctx, sig).Error(0)
}

func (m *MockDebuggerClient) Running() bool {
	return m.Called().Bool(0)
}

// MockBuilder is a mock implementation of Builder
type MockBuilder struct {
	mock.Mock
}

func (m *MockBuilder) Build(ctx context.Context, sourcePath string) error {
	return m.Called(ctx, sourcePath).Error(0)
}

// MockMetadataScanner is a mock implementation of MetadataScanner
type MockMetadataScanner struct {
	mock.Mock
}

func (m *MockMetadataScanner) ScanMetadata(ctx context.Context) ([]*domain.ProjectMetadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProjectMetadata), args.Error(1)
}

// MockWorkspaceWriter is a mock implementation of WorkspaceWriter
type MockWorkspaceWriter struct {
	mock.Mock
}

func (m *MockWorkspaceWriter) EnsureDirectory(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceWriter) EnsureFile(ctx context.Context, path string, content []byte) (bool, error) {
	args := m.Called(ctx, path, content)
	return args.Bool(0), args.Error(1)
}

// RecordingProgress keeps every progress event and message
type RecordingProgress struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (r *RecordingProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *RecordingProgress) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, message)
}

func (r *RecordingProgress) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *RecordingProgress) stages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	stages := make([]string, len(r.events))
	for i, e := range r.events {
		stages[i] = e.Stage
	}
	return stages
}

// MockContractSelector is a mock implementation of ContractSelector
type MockContractSelector struct {
	mock.Mock
}

func (m *MockContractSelector) SelectContract(ctx context.Context, contracts []*domain.Contract, prompt string) (*domain.Contract, error) {
	args := m.Called(ctx, contracts, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

var _ usecase.ContractSelector = (*MockContractSelector)(nil)
