package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

func TestListProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted projects and unique languages", func(t *testing.T) {
		scanner := new(MockMetadataScanner)
		scanner.On("ScanMetadata", ctx).Return([]*domain.ProjectMetadata{
			{ProjectName: "lottery", ProjectPathInWorkspace: "/lottery", Language: "rust"},
			{ProjectName: "adder", ProjectPathInWorkspace: "/adder", Language: "clang"},
			{ProjectName: "counter", ProjectPathInWorkspace: "/counter", Language: "clang"},
			{ProjectName: "bare", ProjectPathInWorkspace: "/bare"},
		}, nil)

		result, err := usecase.NewListProjects(scanner).Run(ctx)
		require.NoError(t, err)

		names := make([]string, len(result.Projects))
		for i, p := range result.Projects {
			names[i] = p.ProjectName
		}
		assert.Equal(t, []string{"adder", "bare", "counter", "lottery"}, names)
		assert.Equal(t, []string{"clang", "rust"}, result.Languages)
	})

	t.Run("scan failure", func(t *testing.T) {
		scanner := new(MockMetadataScanner)
		scanner.On("ScanMetadata", ctx).Return(nil, errors.New("root vanished"))

		_, err := usecase.NewListProjects(scanner).Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan projects")
	})
}

func TestInitWorkspace(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh workspace", func(t *testing.T) {
		writer := new(MockWorkspaceWriter)
		writer.On("EnsureDirectory", ctx, "/ws/.scide").Return(true, nil)
		writer.On("EnsureFile", ctx, "/ws/elrond.workspace.json", []byte("{}")).Return(true, nil)
		progress := &RecordingProgress{}

		result, err := usecase.NewInitWorkspace(writer, testConfig(), progress).Run(ctx)
		require.NoError(t, err)

		assert.Equal(t, "/ws", result.Root)
		assert.Equal(t, []string{"/ws/.scide", "/ws/elrond.workspace.json"}, result.Created)
		assert.Equal(t, []string{"Workspace has been set up."}, progress.infos)
	})

	t.Run("already set up", func(t *testing.T) {
		writer := new(MockWorkspaceWriter)
		writer.On("EnsureDirectory", ctx, mock.Anything).Return(false, nil)
		writer.On("EnsureFile", ctx, mock.Anything, mock.Anything).Return(false, nil)
		progress := &RecordingProgress{}

		result, err := usecase.NewInitWorkspace(writer, testConfig(), progress).Run(ctx)
		require.NoError(t, err)

		assert.Empty(t, result.Created)
		assert.Equal(t, []string{"Workspace already set up."}, progress.infos)
	})

	t.Run("write failure", func(t *testing.T) {
		writer := new(MockWorkspaceWriter)
		writer.On("EnsureDirectory", ctx, mock.Anything).Return(false, errors.New("read-only file system"))

		_, err := usecase.NewInitWorkspace(writer, testConfig(), usecase.NopProgress{}).Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read-only file system")
		writer.AssertNotCalled(t, "EnsureFile", mock.Anything, mock.Anything, mock.Anything)
	})
}
