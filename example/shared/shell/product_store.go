package shell

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/core"
)

// ProductStore is the full catalog persistence contract. Each feature slice
// declares the narrow subset it needs; this interface is what the wiring
// hands out.
type ProductStore interface {
	Insert(ctx context.Context, product core.Product) error
	Update(ctx context.Context, product core.Product) error
	ByID(ctx context.Context, id uuid.UUID) (core.Product, error)
	All(ctx context.Context) ([]core.Product, error)
}

// InMemoryProductStore is a ProductStore backed by a map. It supports
// snapshot and restore so the in-memory transaction manager can roll a
// command's effects back.
type InMemoryProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]core.Product
}

// NewInMemoryProductStore creates an empty in-memory product store.
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		products: make(map[uuid.UUID]core.Product),
	}
}

// Insert adds a new product to the catalog.
func (s *InMemoryProductStore) Insert(_ context.Context, product core.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return core.ErrProductAlreadyExists
	}

	s.products[product.ID] = product

	return nil
}

// Update replaces an existing product.
func (s *InMemoryProductStore) Update(_ context.Context, product core.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; !exists {
		return core.ErrProductNotFound
	}

	s.products[product.ID] = product

	return nil
}

// ByID returns one product by its ID.
func (s *InMemoryProductStore) ByID(_ context.Context, id uuid.UUID) (core.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[id]
	if !exists {
		return core.Product{}, core.ErrProductNotFound
	}

	return product, nil
}

// All returns every product, ordered by name.
func (s *InMemoryProductStore) All(_ context.Context) ([]core.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]core.Product, 0, len(s.products))
	for _, product := range s.products {
		all = append(all, product)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})

	return all, nil
}

// Snapshot returns a copy of the current catalog state.
func (s *InMemoryProductStore) Snapshot() map[uuid.UUID]core.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[uuid.UUID]core.Product, len(s.products))
	for id, product := range s.products {
		snapshot[id] = product
	}

	return snapshot
}

// Restore replaces the catalog state with a previously taken snapshot.
func (s *InMemoryProductStore) Restore(snapshot map[uuid.UUID]core.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[uuid.UUID]core.Product, len(snapshot))
	for id, product := range snapshot {
		s.products[id] = product
	}
}

// Ensure InMemoryProductStore implements ProductStore.
var _ ProductStore = (*InMemoryProductStore)(nil)
