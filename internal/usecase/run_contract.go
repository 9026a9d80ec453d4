package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/metrics"
)

// RunContract invokes a function of a deployed contract on the debugger.
type RunContract struct {
	store    ContractStore
	debugger DebuggerClient
	log      *slog.Logger
}

// NewRunContract creates a new run use case
func NewRunContract(store ContractStore, debugger DebuggerClient, log *slog.Logger) *RunContract {
	return &RunContract{
		store:    store,
		debugger: debugger,
		log:      log.With("component", "RunContract"),
	}
}

// RunContractParams contains parameters for a function run
type RunContractParams struct {
	ID      string
	Options domain.RunOptions
}

// Run records a new Run as the contract's latest. A failed call is not an
// error: the run keeps an empty output and carries the failure reason, so a
// bad call shows up as "no output" instead of ending the session. Only an
// unknown contract ID is returned as an error.
func (r *RunContract) Run(ctx context.Context, params RunContractParams) (*domain.Run, error) {
	contract, err := lookupContract(r.store, params.ID)
	if err != nil {
		return nil, err
	}

	options := params.Options.WithDefaults()
	options.ContractAddress = contract.Address
	run := domain.NewRun(options)

	output, err := r.debugger.Run(ctx, options)
	metrics.Runs.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		r.log.Warn("contract run failed", "id", contract.ID, "function", options.FunctionName, "error", err)
		run.Output = domain.VMOutput{}
		run.Err = err.Error()
	} else if output != nil {
		run.Output = output
	}

	err = r.store.Update(contract.ID, func(c *domain.Contract) {
		c.LatestRun = run
	})
	if err != nil {
		return nil, fmt.Errorf("contract %s disappeared during run: %w", contract.ID, err)
	}

	return run.Clone(), nil
}
