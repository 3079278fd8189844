// Package orders maintains a single-page window over the user's orders,
// server-paginated. Mutations follow the same write-then-refetch discipline
// as the cart store: the page re-fetch after a cancel or checkout is what
// makes the new state visible, never a locally patched list.
package orders

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"backoffice/internal/domain"
)

// DefaultPageSize matches the backend's listing default.
const DefaultPageSize = 10

// Client is the slice of the orders resource client the store drives.
type Client interface {
	MyOrders(ctx context.Context, page domain.PageParams) (domain.Page[domain.Order], error)
	Cancel(ctx context.Context, orderID int, reason string) (bool, error)
	Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error)
}

// Store holds the current page of orders. Safe for concurrent use. A fetch
// that was in flight when Reset ran belongs to the previous session; its
// completion is discarded so a later login never sees the earlier identity's
// orders.
type Store struct {
	client Client
	log    *slog.Logger

	mu          sync.RWMutex
	orders      []domain.Order
	currentPage int
	totalPages  int
	pageSize    int
	initialized bool
	epoch       uint64

	group singleflight.Group
}

func New(client Client, log *slog.Logger) *Store {
	return &Store{
		client:      client,
		log:         log,
		currentPage: 1,
		totalPages:  1,
		pageSize:    DefaultPageSize,
	}
}

// Initialize fetches the first page at most once per session activation;
// concurrent callers coalesce into a single fetch, and callers arriving
// after a Reset start a fresh one.
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
		if err := s.FetchCurrent(ctx); err != nil {
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

// Fetch loads an explicit page and replaces the window. A page beyond the
// last one comes back with an empty item list; the server does not clamp and
// neither do we. The result is dropped if a Reset ran while the fetch was in
// flight.
func (s *Store) Fetch(ctx context.Context, page domain.PageParams) error {
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	result, err := s.client.MyOrders(ctx, page)
	if err != nil {
		return fmt.Errorf("fetch orders: %w", err)
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.orders = result.Items
		s.totalPages = result.TotalPages
		s.currentPage = page.PageNumber
		s.pageSize = page.PageSize
	}
	s.mu.Unlock()
	return nil
}

// FetchCurrent reloads whatever page the window currently points at.
func (s *Store) FetchCurrent(ctx context.Context) error {
	s.mu.RLock()
	page := domain.PageParams{PageNumber: s.currentPage, PageSize: s.pageSize}
	s.mu.RUnlock()
	return s.Fetch(ctx, page)
}

// SetPage moves the window to page n. The page number is only committed
// once the fetch succeeds.
func (s *Store) SetPage(ctx context.Context, n int) error {
	s.mu.RLock()
	size := s.pageSize
	s.mu.RUnlock()
	return s.Fetch(ctx, domain.PageParams{PageNumber: n, PageSize: size})
}

// Cancel requests the cancel transition, then re-fetches the current page.
// A failed re-fetch after a successful cancel leaves the window stale, not
// rolled back; the error is logged only.
func (s *Store) Cancel(ctx context.Context, orderID int, reason string) error {
	if _, err := s.client.Cancel(ctx, orderID, reason); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	s.refetchAfter(ctx, "cancel")
	return nil
}

// Checkout creates an order from the active cart and re-fetches the page so
// the new order shows up. Returns the created order.
func (s *Store) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error) {
	order, err := s.client.Checkout(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	s.refetchAfter(ctx, "checkout")
	return order, nil
}

func (s *Store) refetchAfter(ctx context.Context, op string) {
	if err := s.FetchCurrent(ctx); err != nil {
		s.log.ErrorContext(ctx, "order re-fetch after mutation failed, page is stale",
			"operation", op,
			"error", err,
		)
	}
}

// Orders returns the current page's items.
func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders
}

// CurrentPage returns the 1-based page number of the window.
func (s *Store) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// TotalPages returns the server-reported page count from the last fetch.
func (s *Store) TotalPages() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPages
}

// PageSize returns the window's page size.
func (s *Store) PageSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageSize
}

// Initialized reports whether the per-session fetch already happened.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Reset clears all local state and the initialized flag, and invalidates
// any fetch still in flight. Wired to the session guard's teardown.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = nil
	s.currentPage = 1
	s.totalPages = 1
	s.pageSize = DefaultPageSize
	s.initialized = false
	s.epoch++
}
