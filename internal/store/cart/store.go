// Package cart maintains the server-authoritative cart snapshot. Every
// mutation is a two-phase operation: issue the write, then re-fetch the full
// cart and replace the snapshot wholesale. The re-fetch, not the mutation
// response, is authoritative; the client never computes a subtotal or item
// count itself, so client arithmetic can never drift from server business
// rules (stock limits, coupons, taxes).
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"backoffice/internal/domain"
)

// Client is the slice of the cart resource client the store drives.
type Client interface {
	MyCart(ctx context.Context) (*domain.Cart, error)
	AddProduct(ctx context.Context, req domain.AddToCartRequest) error
	UpdateItem(ctx context.Context, req domain.UpdateCartItemRequest) error
	RemoveItem(ctx context.Context, cartItemID int) error
	Clear(ctx context.Context) error
}

// Store holds exactly one cart snapshot per active session. Safe for
// concurrent use. Two rapid-fire mutations may race on the backend; the last
// re-fetch to complete wins and determines the visible snapshot. That is
// accepted eventual-consistency behavior, not a bug to serialize away.
//
// Reset is the one exception: a fetch that was in flight when Reset ran
// belongs to the previous session and its completion is discarded, so a
// later login can never be served the earlier identity's cart.
type Store struct {
	client Client
	log    *slog.Logger

	mu          sync.RWMutex
	cart        *domain.Cart
	initialized bool
	epoch       uint64

	group singleflight.Group
}

func New(client Client, log *slog.Logger) *Store {
	return &Store{client: client, log: log}
}

// Initialize fetches the cart at most once per session activation, no matter
// how many callers race on it. Concurrent calls coalesce into a single
// underlying fetch; callers arriving after a Reset start a fresh one.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.RLock()
	initialized := s.initialized
	epoch := s.epoch
	s.mu.RUnlock()
	if initialized {
		return nil
	}

	_, err, _ := s.group.Do(strconv.FormatUint(epoch, 10), func() (any, error) {
		if s.Initialized() {
			return nil, nil
		}
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
		s.mu.Lock()
		if s.epoch == epoch {
			s.initialized = true
		}
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Refresh replaces the snapshot with whatever the server currently holds.
// The fetched value is dropped if a Reset ran while it was in flight.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	cart, err := s.client.MyCart(ctx)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.cart = cart
	}
	s.mu.Unlock()
	return nil
}

// AddItem puts a product in the cart and re-fetches.
func (s *Store) AddItem(ctx context.Context, req domain.AddToCartRequest) error {
	return s.mutate(ctx, "add item", func() error {
		return s.client.AddProduct(ctx, req)
	})
}

// UpdateItem changes a line's quantity and re-fetches.
func (s *Store) UpdateItem(ctx context.Context, req domain.UpdateCartItemRequest) error {
	return s.mutate(ctx, "update item", func() error {
		return s.client.UpdateItem(ctx, req)
	})
}

// RemoveItem deletes a line and re-fetches.
func (s *Store) RemoveItem(ctx context.Context, cartItemID int) error {
	return s.mutate(ctx, "remove item", func() error {
		return s.client.RemoveItem(ctx, cartItemID)
	})
}

// Clear empties the cart and re-fetches.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear cart", func() error {
		return s.client.Clear(ctx)
	})
}

// mutate runs the write, then the re-fetch. A failed write leaves the
// previous snapshot untouched and surfaces the error. A failed re-fetch
// after a successful write is logged and leaves the snapshot stale but not
// corrupted; the mutation already happened server-side and is not rolled
// back.
func (s *Store) mutate(ctx context.Context, op string, write func() error) error {
	if err := write(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Refresh(ctx); err != nil {
		s.log.ErrorContext(ctx, "cart re-fetch after mutation failed, snapshot is stale",
			"operation", op,
			"error", err,
		)
	}
	return nil
}

// Cart returns the current snapshot: nil before the first fetch and for
// users who never added anything. The returned value is replaced, never
// mutated in place, so callers may hold it across updates.
func (s *Store) Cart() *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

// Initialized reports whether the per-session fetch already happened.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Reset drops the snapshot and the initialized flag, and invalidates any
// fetch still in flight. Wired to the session guard's teardown so a later
// login starts clean instead of showing a previous identity's cart.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.initialized = false
	s.epoch++
}
