package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/metrics"
)

// SyncContracts reconciles the contract registry against the workspace.
type SyncContracts struct {
	fs       FileSystem
	store    ContractStore
	cfg      *config.RuntimeConfig
	log      *slog.Logger
	progress ProgressSink
}

// NewSyncContracts creates a new reconciliation use case
func NewSyncContracts(
	fs FileSystem,
	store ContractStore,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	progress ProgressSink,
) *SyncContracts {
	return &SyncContracts{
		fs:       fs,
		store:    store,
		cfg:      cfg,
		log:      log.With("component", "SyncContracts"),
		progress: progress,
	}
}

// SyncContractsResult describes one reconciliation.
type SyncContractsResult struct {
	Contracts []*domain.Contract
	Added     []string
	Removed   []string
	Skipped   []string // source files whose ID was already taken
}

// Run rebuilds the contract collection from a fresh scan. Contracts whose ID
// survives keep their address and latest run; the collection is replaced in a
// single step, so references into the previous collection go stale.
func (s *SyncContracts) Run(ctx context.Context) (*SyncContractsResult, error) {
	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "scanning",
		Message: "Scanning workspace for contracts...",
		Spinner: true,
	})

	sourceFiles, err := s.fs.ListFiles(ctx, s.cfg.SourceExtension)
	if err != nil {
		s.progress.OnProgress(ctx, ProgressEvent{Stage: "failed", Message: "Workspace scan failed"})
		return nil, fmt.Errorf("failed to list %s files: %w", s.cfg.SourceExtension, err)
	}
	// The listing has no ordering guarantee; sort so duplicate IDs resolve the
	// same way every time.
	sort.Strings(sourceFiles)

	result := &SyncContractsResult{}
	seen := make(map[string]bool, len(sourceFiles))
	fresh := make([]*domain.Contract, 0, len(sourceFiles))

	for _, path := range sourceFiles {
		contract := domain.NewContract(path)
		if seen[contract.ID] {
			s.log.Warn("skipping contract with duplicate id", "id", contract.ID, "path", path)
			result.Skipped = append(result.Skipped, path)
			continue
		}
		seen[contract.ID] = true

		s.detectArtifact(contract)
		fresh = append(fresh, contract)
	}

	// Live state is carried over inside the swap so a deploy or run that
	// finished during the scan is not lost.
	s.store.Reconcile(func(current []*domain.Contract) []*domain.Contract {
		before := make(map[string]*domain.Contract, len(current))
		for _, c := range current {
			before[c.ID] = c
		}

		for _, contract := range fresh {
			previous, ok := before[contract.ID]
			if !ok {
				result.Added = append(result.Added, contract.ID)
				continue
			}
			contract.Address = previous.Address
			if previous.LatestRun != nil {
				contract.LatestRun = previous.LatestRun
			}
		}

		for id := range before {
			if !seen[id] {
				result.Removed = append(result.Removed, id)
			}
		}
		return fresh
	})
	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	result.Contracts = s.store.List()

	built := 0
	for _, c := range result.Contracts {
		if c.IsBuilt() {
			built++
		}
	}
	metrics.Reconciliations.Inc()
	metrics.TrackedContracts.Set(float64(len(result.Contracts)))
	metrics.BuiltContracts.Set(float64(built))

	s.log.Debug("contracts synced",
		"count", len(result.Contracts),
		"added", len(result.Added),
		"removed", len(result.Removed))
	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: fmt.Sprintf("Found %d contracts", len(result.Contracts)),
	})

	return result, nil
}

// detectArtifact points BytecodePath at the compiled artifact next to the
// source, or clears it when the artifact is gone.
func (s *SyncContracts) detectArtifact(contract *domain.Contract) {
	candidate := contract.ArtifactPath(s.cfg.ArtifactExtension)
	if s.fs.Exists(candidate) {
		contract.BytecodePath = candidate
	} else {
		contract.BytecodePath = ""
	}
}
