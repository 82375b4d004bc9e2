package store

import (
	"context"
	"sort"
	"sync"

	"github.com/cypherlabdev/price-optimizer-service/internal/models"
)

// MemoryStore is an in-memory product catalog
type MemoryStore struct {
	mu       sync.RWMutex
	products map[int64]models.Product
}

// NewMemoryStore creates an empty catalog
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: make(map[int64]models.Product)}
}

// Add validates and inserts or replaces a product
func (s *MemoryStore) Add(_ context.Context, product models.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.NmID] = product
	return nil
}

// Get retrieves a product by nm_id
func (s *MemoryStore) Get(_ context.Context, nmID int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[nmID]
	if !ok {
		return nil, models.ProductNotFound(nmID)
	}
	return &p, nil
}

// List returns all products ordered by nm_id
func (s *MemoryStore) List(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].NmID < products[j].NmID })
	return products, nil
}
