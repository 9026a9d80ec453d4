package registry

import (
	"sort"
	"sync"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// ContractStore is the in-memory contract collection of the workspace.
// The collection is only ever replaced as a whole, so readers observe either
// the old or the new set, never a mix.
type ContractStore struct {
	mu        sync.RWMutex
	contracts []*domain.Contract
}

// NewContractStore creates an empty contract store
func NewContractStore() *ContractStore {
	return &ContractStore{}
}

// Replace swaps in a new collection. The store takes ownership of the slice
// and its contracts.
func (s *ContractStore) Replace(contracts []*domain.Contract) {
	sorted := make([]*domain.Contract, len(contracts))
	copy(sorted, contracts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	s.mu.Lock()
	s.contracts = sorted
	s.mu.Unlock()
}

// Reconcile builds the next collection from the current one and swaps it in
// under a single write lock, so no Update can land between the read and the
// swap. fn receives the stored contracts themselves and must not call back
// into the store.
func (s *ContractStore) Reconcile(fn func(current []*domain.Contract) []*domain.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.contracts)
	sorted := make([]*domain.Contract, len(next))
	copy(sorted, next)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	s.contracts = sorted
}

// Get returns a copy of the contract with the given ID.
func (s *ContractStore) Get(id string) (*domain.Contract, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c := s.find(id); c != nil {
		return c.Clone(), true
	}
	return nil, false
}

// List returns copies of all contracts ordered by ID.
func (s *ContractStore) List() []*domain.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Contract, len(s.contracts))
	for i, c := range s.contracts {
		result[i] = c.Clone()
	}
	return result
}

// Update runs fn on the stored contract under the write lock. fn must not call
// back into the store.
func (s *ContractStore) Update(id string, fn func(c *domain.Contract)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.find(id)
	if c == nil {
		return domain.UnknownContractErr{ID: id}
	}
	fn(c)
	return nil
}

// find scans linearly; workspaces hold tens of contracts.
func (s *ContractStore) find(id string) *domain.Contract {
	for _, c := range s.contracts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Ensure ContractStore implements the port
var _ usecase.ContractStore = (*ContractStore)(nil)
