package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scide/internal/usecase"
)

func TestSpinnerSink_StageTrail(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	sink := newSpinnerSink(&out)
	ctx := context.Background()

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "scanning", Message: "Scanning workspace...", Spinner: true})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "building", Message: "Building adder...", Spinner: true})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "complete", Message: "Built adder"})

	require.Len(t, sink.stages, 3)
	assert.Equal(t, "completed", sink.stages[0].Status)
	assert.Equal(t, "completed", sink.stages[1].Status)
	assert.Equal(t, "complete", sink.stages[2].Status)
	assert.False(t, sink.spinner.Active())
	assert.Contains(t, out.String(), "✓ Built adder")
}

func TestSpinnerSink_Failure(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	sink := newSpinnerSink(&out)
	ctx := context.Background()

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "building", Message: "Building adder...", Spinner: true})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "failed", Message: "erdpy build failed"})

	assert.Equal(t, "failed", sink.stages[0].Status)
	assert.Contains(t, out.String(), "✗ erdpy build failed")
	assert.Contains(t, sink.trail(), "✗ Building")
}

func TestSpinnerSink_InfoAndError(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	sink := newSpinnerSink(&out)

	sink.Info("Workspace has been set up.")
	sink.Error("something broke")

	assert.Equal(t, "Workspace has been set up.\nsomething broke\n", out.String())
}

func TestStageTitle(t *testing.T) {
	assert.Equal(t, "Scanning", stageTitle("scanning"))
	assert.Equal(t, "", stageTitle(""))
}
