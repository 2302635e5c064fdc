package catalog

import (
	"context"
	"slices"
	"sync"
)

type MemStore struct {
	mu         sync.RWMutex
	products   []Product
	byID       map[string]int
	categories []Category
}

func NewMemStore(products []Product, categories []Category) *MemStore {
	s := &MemStore{
		products:   slices.Clone(products),
		byID:       make(map[string]int, len(products)),
		categories: slices.Clone(categories),
	}
	for i, p := range s.products {
		s.byID[p.ID] = i
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products), nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Product{}, false, nil
	}
	return s.products[i], true, nil
}

func (s *MemStore) Categories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories), nil
}
