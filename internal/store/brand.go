package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fakestore/storefront/internal/domain"
)

// BrandStore is the derived in-memory brand collection.
type BrandStore struct {
	mu     sync.Mutex
	brands []domain.Brand

	// ensure is wired by the Initializer; stores stay usable without one in
	// tests that pre-populate them.
	ensure func(context.Context) error
}

func NewBrandStore() *BrandStore {
	return &BrandStore{
		ensure: func(context.Context) error { return nil },
	}
}

func (s *BrandStore) replaceAll(brands []domain.Brand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brands = brands
}

// Add appends a brand with the next ordinal id.
func (s *BrandStore) Add(ctx context.Context, name string) (*domain.Brand, error) {
	if name == "" {
		return nil, domain.Invalidf("brand name is required")
	}
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	brand := domain.Brand{
		ID:   fmt.Sprintf("brand-%d", len(s.brands)+1),
		Name: name,
	}
	s.brands = append(s.brands, brand)

	return &brand, nil
}

// List returns all brands in insertion order.
func (s *BrandStore) List(ctx context.Context) ([]domain.Brand, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Brand, len(s.brands))
	copy(out, s.brands)
	return out, nil
}

// Get fetches a single brand by id.
func (s *BrandStore) Get(ctx context.Context, id string) (*domain.Brand, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.brands {
		if b.ID == id {
			brand := b
			return &brand, nil
		}
	}
	return nil, fmt.Errorf("brand %s: %w", id, domain.ErrNotFound)
}

// Update renames an existing brand.
func (s *BrandStore) Update(ctx context.Context, input domain.UpdateBrandInput) (*domain.Brand, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.brands {
		if s.brands[i].ID == input.ID {
			s.brands[i].Name = input.Name
			brand := s.brands[i]
			return &brand, nil
		}
	}
	return nil, fmt.Errorf("brand %s: %w", input.ID, domain.ErrNotFound)
}

// Delete removes a brand and returns the removed record.
func (s *BrandStore) Delete(ctx context.Context, id string) (*domain.Brand, error) {
	if id == "" {
		return nil, domain.Invalidf("brand id is required")
	}
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.brands {
		if b.ID == id {
			deleted := b
			s.brands = append(s.brands[:i], s.brands[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, fmt.Errorf("brand %s: %w", id, domain.ErrNotFound)
}

// Search matches brand names case-insensitively by substring.
func (s *BrandStore) Search(ctx context.Context, query string) ([]domain.Brand, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	results := make([]domain.Brand, 0)
	for _, b := range s.brands {
		if strings.Contains(strings.ToLower(b.Name), needle) {
			results = append(results, b)
		}
	}
	return results, nil
}
