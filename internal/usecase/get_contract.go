package usecase

import (
	"context"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/scide/internal/domain"
)

// maxSuggestions bounds the "did you mean" list of an unknown contract ID.
const maxSuggestions = 3

// GetContract looks a contract up by ID.
type GetContract struct {
	store ContractStore
}

// NewGetContract creates a new contract lookup use case
func NewGetContract(store ContractStore) *GetContract {
	return &GetContract{store: store}
}

// Run returns a copy of the contract, or an UnknownContractErr (which matches
// domain.ErrContractNotFound) with close IDs as suggestions.
func (g *GetContract) Run(ctx context.Context, id string) (*domain.Contract, error) {
	return lookupContract(g.store, id)
}

func lookupContract(store ContractStore, id string) (*domain.Contract, error) {
	if contract, ok := store.Get(id); ok {
		return contract, nil
	}
	return nil, domain.UnknownContractErr{ID: id, Suggestions: suggestIDs(store, id)}
}

func suggestIDs(store ContractStore, id string) []string {
	ids := lo.Map(store.List(), func(c *domain.Contract, _ int) string { return c.ID })
	if id == "" || len(ids) == 0 {
		return nil
	}

	matches := fuzzy.Find(id, ids)
	suggestions := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return suggestions
}

// ListContracts returns the current registry snapshot.
type ListContracts struct {
	store ContractStore
}

// NewListContracts creates a new contract listing use case
func NewListContracts(store ContractStore) *ListContracts {
	return &ListContracts{store: store}
}

// ContractListResult contains the registry snapshot and its summary
type ContractListResult struct {
	Contracts []*domain.Contract
	Summary   ContractSummary
}

// ContractSummary provides summary statistics
type ContractSummary struct {
	Total    int
	Built    int
	Deployed int
}

// Run returns copies of every contract, ordered by ID.
func (l *ListContracts) Run(ctx context.Context) *ContractListResult {
	contracts := l.store.List()
	return &ContractListResult{
		Contracts: contracts,
		Summary: ContractSummary{
			Total:    len(contracts),
			Built:    lo.CountBy(contracts, func(c *domain.Contract) bool { return c.IsBuilt() }),
			Deployed: lo.CountBy(contracts, func(c *domain.Contract) bool { return c.IsDeployed() }),
		},
	}
}
