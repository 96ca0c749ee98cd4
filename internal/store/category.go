package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"fakestore/storefront/internal/domain"
)

// CategoryStore is the derived in-memory category collection.
type CategoryStore struct {
	mu         sync.Mutex
	categories []domain.Category

	ensure func(context.Context) error
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		ensure: func(context.Context) error { return nil },
	}
}

func (s *CategoryStore) replaceAll(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// List returns all categories in insertion order.
func (s *CategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// Tree returns the two-level navigation grouping of the live collection.
func (s *CategoryStore) Tree(ctx context.Context) ([]domain.Group, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

// Add appends a category. A non-nil parent must already exist.
func (s *CategoryStore) Add(ctx context.Context, input domain.AddCategoryInput) (*domain.Category, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.ParentID != nil && s.indexOf(*input.ParentID) == -1 {
		return nil, fmt.Errorf("parent category %s: %w", *input.ParentID, domain.ErrNotFound)
	}

	category := domain.Category{
		ID:       fmt.Sprintf("cat-%d", time.Now().UnixMilli()),
		Name:     input.Name,
		URL:      input.URL,
		ParentID: input.ParentID,
		IconURL:  input.IconURL,
		IconSize: input.IconSize,
	}
	s.categories = append(s.categories, category)

	return &category, nil
}

// Update applies a partial update: nil fields keep their current value,
// IconSize is always written.
func (s *CategoryStore) Update(ctx context.Context, input domain.UpdateCategoryInput) (*domain.Category, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(input.ID)
	if i == -1 {
		return nil, fmt.Errorf("category %s: %w", input.ID, domain.ErrNotFound)
	}

	if input.Name != nil {
		s.categories[i].Name = *input.Name
	}
	if input.URL != nil {
		s.categories[i].URL = *input.URL
	}
	if input.IconURL != nil {
		s.categories[i].IconURL = input.IconURL
	}
	s.categories[i].IconSize = input.IconSize

	category := s.categories[i]
	return &category, nil
}

// Delete removes a category unless any other category still references it
// as parent.
func (s *CategoryStore) Delete(ctx context.Context, id string) (*domain.Category, error) {
	if id == "" {
		return nil, domain.Invalidf("category id is required")
	}
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return nil, fmt.Errorf("category %s: %w", id, domain.ErrHasChildren)
		}
	}

	i := s.indexOf(id)
	if i == -1 {
		return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	deleted := s.categories[i]
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	return &deleted, nil
}

// BySlug finds the first category whose url contains the slug.
func (s *CategoryStore) BySlug(ctx context.Context, slug string) (*domain.Category, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if strings.Contains(c.URL, slug) {
			category := c
			return &category, nil
		}
	}
	return nil, fmt.Errorf("category slug %q: %w", slug, domain.ErrNotFound)
}

// Path walks ParentID links up to the root and returns the chain root-first.
func (s *CategoryStore) Path(ctx context.Context, id string) ([]domain.Category, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := make([]domain.Category, 0)
	seen := make(map[string]bool)

	for i := s.indexOf(id); i != -1; {
		current := s.categories[i]
		if seen[current.ID] {
			break // corrupt parent cycle, stop walking
		}
		seen[current.ID] = true

		path = append([]domain.Category{current}, path...)
		if current.ParentID == nil {
			break
		}
		i = s.indexOf(*current.ParentID)
	}

	return path, nil
}

// indexOf must be called with the mutex held.
func (s *CategoryStore) indexOf(id string) int {
	for i, c := range s.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}
