package cart

import (
	"context"
	"sync"

	"fakestore/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Store is the reducer-style cart state machine. Every mutation is applied
// atomically in memory and then snapshotted through the persister; a failed
// save is logged and swallowed so persistence problems never roll back or
// block a cart mutation.
type Store struct {
	mu        sync.Mutex
	state     domain.CartState
	persister Persister
}

// NewStore restores the persisted snapshot. Only the items survive a reload;
// visibility is deliberately reset to false for every new session.
func NewStore(ctx context.Context, persister Persister) *Store {
	s := &Store{
		state:     domain.CartState{Items: []domain.CartLine{}},
		persister: persister,
	}

	loaded, err := persister.Load(ctx)
	if err != nil {
		log.Warnf("Cart snapshot load failed, starting empty: %v", err)
		return s
	}

	if loaded.Items != nil {
		s.state.Items = loaded.Items
	}
	s.state.IsVisible = false // session-scoped reset, regardless of the snapshot

	return s
}

// Add merges the line into an existing one with the same product id, or
// appends it. Adding always makes the cart visible.
func (s *Store) Add(ctx context.Context, line domain.CartLine) (domain.CartState, error) {
	if line.Quantity <= 0 {
		return s.State(), domain.Invalidf("cart quantity must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.state.Items {
		if s.state.Items[i].ProductID == line.ProductID {
			s.state.Items[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.state.Items = append(s.state.Items, line)
	}
	s.state.IsVisible = true

	s.persistLocked(ctx)
	return s.stateLocked(), nil
}

// ToggleVisibility flips only the UI-visibility flag.
func (s *Store) ToggleVisibility(ctx context.Context, visible bool) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsVisible = visible
	s.persistLocked(ctx)
	return s.stateLocked()
}

// Remove drops the line with the given product id, if present.
func (s *Store) Remove(ctx context.Context, productID int) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartLine, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	s.state.Items = items

	s.persistLocked(ctx)
	return s.stateLocked()
}

// ModifyQuantity adds the signed amount to the matching line's quantity and
// drops the line once its quantity reaches zero or below.
func (s *Store) ModifyQuantity(ctx context.Context, productID, amount int) domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartLine, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		if item.ProductID == productID {
			item.Quantity += amount
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	s.state.Items = items

	s.persistLocked(ctx)
	return s.stateLocked()
}

// State returns a copy of the current cart state.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() domain.CartState {
	items := make([]domain.CartLine, len(s.state.Items))
	copy(items, s.state.Items)
	return domain.CartState{Items: items, IsVisible: s.state.IsVisible}
}

func (s *Store) persistLocked(ctx context.Context) {
	if err := s.persister.Save(ctx, s.stateLocked()); err != nil {
		log.Warnf("Cart snapshot save failed: %v", err)
	}
}
