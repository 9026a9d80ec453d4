package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/metrics"
)

// DeployContract deploys a built contract to the debugger.
type DeployContract struct {
	store    ContractStore
	fs       FileSystem
	debugger DebuggerClient
	cfg      *config.RuntimeConfig
	log      *slog.Logger
}

// NewDeployContract creates a new deploy use case
func NewDeployContract(
	store ContractStore,
	fs FileSystem,
	debugger DebuggerClient,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		store:    store,
		fs:       fs,
		debugger: debugger,
		cfg:      cfg,
		log:      log.With("component", "DeployContract"),
	}
}

// DeployContractParams contains parameters for a deployment
type DeployContractParams struct {
	ID     string
	Sender string // defaults to the configured debugger sender
}

// Run reads the bytecode artifact, deploys it and records the returned
// address. On failure the error is returned and the address is unchanged.
func (d *DeployContract) Run(ctx context.Context, params DeployContractParams) (*domain.Contract, error) {
	contract, err := lookupContract(d.store, params.ID)
	if err != nil {
		return nil, err
	}
	if !contract.IsBuilt() {
		return nil, fmt.Errorf("cannot deploy %s: %w", contract.ID, domain.ErrContractNotBuilt)
	}

	sender := params.Sender
	if sender == "" {
		sender = d.cfg.Debugger.Sender
	}

	code, err := d.fs.ReadBinary(contract.BytecodePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bytecode of %s: %w", contract.ID, err)
	}

	start := time.Now()
	address, err := d.debugger.Deploy(ctx, sender, common.Bytes2Hex(code))
	metrics.Deployments.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", contract.ID, err)
	}

	// The registry may have been reconciled while the request was in flight,
	// so the address goes to whatever contract currently holds the ID.
	var updated *domain.Contract
	err = d.store.Update(contract.ID, func(c *domain.Contract) {
		c.Address = address
		updated = c.Clone()
	})
	if err != nil {
		return nil, fmt.Errorf("contract %s disappeared during deployment: %w", contract.ID, err)
	}

	d.log.Info("contract deployed", "id", contract.ID, "address", address, "duration", time.Since(start))
	return updated, nil
}
