package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/metrics"
)

// BuildContract compiles one contract through the SDK builder.
type BuildContract struct {
	store    ContractStore
	builder  Builder
	log      *slog.Logger
	progress ProgressSink
}

// NewBuildContract creates a new build use case
func NewBuildContract(store ContractStore, builder Builder, log *slog.Logger, progress ProgressSink) *BuildContract {
	return &BuildContract{
		store:    store,
		builder:  builder,
		log:      log.With("component", "BuildContract"),
		progress: progress,
	}
}

// BuildContractResult reports a finished build.
type BuildContractResult struct {
	Contract *domain.Contract
	Duration time.Duration
}

// Run builds the contract with the given ID. The artifact is not recorded
// here; the next reconciliation discovers it.
func (b *BuildContract) Run(ctx context.Context, id string) (*BuildContractResult, error) {
	contract, err := lookupContract(b.store, id)
	if err != nil {
		return nil, err
	}

	b.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "building",
		Message: fmt.Sprintf("Building %s...", contract.ID),
		Spinner: true,
	})

	start := time.Now()
	err = b.builder.Build(ctx, contract.SourcePath)
	metrics.Builds.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		b.progress.OnProgress(ctx, ProgressEvent{Stage: "failed", Message: err.Error()})
		return nil, fmt.Errorf("failed to build %s: %w", contract.ID, err)
	}

	duration := time.Since(start)
	b.log.Debug("contract built", "id", contract.ID, "duration", duration)
	b.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: fmt.Sprintf("Built %s in %s", contract.ID, duration.Round(time.Millisecond)),
	})

	return &BuildContractResult{Contract: contract, Duration: duration}, nil
}
