package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/scide/internal/domain"
)

// ResolveContract turns an optional contract ID from the command line into a
// contract, asking the user to pick one when the ID is empty.
type ResolveContract struct {
	store    ContractStore
	selector ContractSelector
}

// NewResolveContract creates a new ResolveContract use case
func NewResolveContract(store ContractStore, selector ContractSelector) *ResolveContract {
	return &ResolveContract{
		store:    store,
		selector: selector,
	}
}

// Run resolves id. An unknown ID fails with suggestions; an empty ID falls
// back to interactive selection among the contracts matching filter (all of
// them when filter is nil).
func (r *ResolveContract) Run(ctx context.Context, id string, prompt string, filter func(*domain.Contract) bool) (*domain.Contract, error) {
	if id != "" {
		return lookupContract(r.store, id)
	}

	candidates := make([]*domain.Contract, 0)
	for _, c := range r.store.List() {
		if filter == nil || filter(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no matching contracts in workspace: %w", domain.ErrContractNotFound)
	}

	return r.selector.SelectContract(ctx, candidates, prompt)
}
