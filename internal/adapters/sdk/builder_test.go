package sdk

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scide/internal/domain/config"
)

func newTestBuilder(root, command string) *BuilderAdapter {
	cfg := &config.RuntimeConfig{
		ProjectRoot: root,
		Builder: config.BuilderConfig{
			Command: command,
			Args:    []string{"contract", "build", "{dir}"},
		},
	}
	return NewBuilderAdapter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExpandArgs(t *testing.T) {
	got := expandArgs(
		[]string{"contract", "build", "{dir}", "--source={source}", "--verbose"},
		"/ws/adder",
		"/ws/adder/src/adder.c",
	)
	assert.Equal(t, []string{"contract", "build", "/ws/adder", "--source=/ws/adder/src/adder.c", "--verbose"}, got)
}

func TestProjectDir(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "adder")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "elrond.json"), []byte(`{"language":"clang"}`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "loose"), 0755))

	b := newTestBuilder(root, "erdpy")

	assert.Equal(t, project, b.projectDir(filepath.Join(project, "src", "adder.c")))
	assert.Equal(t, project, b.projectDir(filepath.Join(project, "adder.c")))
	assert.Equal(t, filepath.Join(root, "loose"), b.projectDir(filepath.Join(root, "loose", "x.c")))
}

func TestBuild_MissingCommand(t *testing.T) {
	root := t.TempDir()
	b := newTestBuilder(root, "scide-no-such-sdk")

	err := b.Build(context.Background(), filepath.Join(root, "a.c"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start scide-no-such-sdk")
}
