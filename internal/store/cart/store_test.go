package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/platform/logger"
)

// fakeClient plays the server side of the resource client: mutations change
// its cart, fetches return a copy of whatever it currently holds.
type fakeClient struct {
	mu      sync.Mutex
	cart    *domain.Cart
	fetches int

	fetchErr  error
	mutateErr error

	// release, when set, blocks fetches until closed. Used to pile up
	// concurrent initializers.
	release chan struct{}
}

func (f *fakeClient) MyCart(context.Context) (*domain.Cart, error) {
	f.mu.Lock()
	release := f.release
	f.mu.Unlock()
	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if f.cart == nil {
		return nil, nil
	}
	snapshot := *f.cart
	snapshot.Items = append([]domain.CartItem(nil), f.cart.Items...)
	return &snapshot, nil
}

func (f *fakeClient) AddProduct(_ context.Context, req domain.AddToCartRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	if f.cart == nil {
		f.cart = &domain.Cart{ID: 1, Status: domain.CartActive}
	}
	f.cart.Items = append(f.cart.Items, domain.CartItem{
		ID:        len(f.cart.Items) + 1,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	f.recount()
	return nil
}

func (f *fakeClient) UpdateItem(_ context.Context, req domain.UpdateCartItemRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i := range f.cart.Items {
		if f.cart.Items[i].ID == req.CartItemID {
			f.cart.Items[i].Quantity = req.Quantity
		}
	}
	f.recount()
	return nil
}

func (f *fakeClient) RemoveItem(_ context.Context, cartItemID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	kept := f.cart.Items[:0]
	for _, item := range f.cart.Items {
		if item.ID != cartItemID {
			kept = append(kept, item)
		}
	}
	f.cart.Items = kept
	f.recount()
	return nil
}

func (f *fakeClient) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	if f.cart != nil {
		f.cart.Items = nil
		f.recount()
	}
	return nil
}

func (f *fakeClient) recount() {
	total := 0
	for _, item := range f.cart.Items {
		total += item.Quantity
	}
	f.cart.TotalItems = total
}

func (f *fakeClient) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeClient) setFetchErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchErr = err
}

func (f *fakeClient) setMutateErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mutateErr = err
}

func TestInitializeFetchesOncePerSession(t *testing.T) {
	client := &fakeClient{cart: &domain.Cart{ID: 1}}
	store := New(client, logger.Discard())
	ctx := context.Background()

	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Initialize(ctx))

	assert.Equal(t, 1, client.fetchCount())
	assert.True(t, store.Initialized())
	require.NotNil(t, store.Cart())
	assert.Equal(t, 1, store.Cart().ID)
}

func TestInitializeCoalescesConcurrentCallers(t *testing.T) {
	client := &fakeClient{cart: &domain.Cart{ID: 1}, release: make(chan struct{})}
	store := New(client, logger.Discard())
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Initialize(ctx)
		}()
	}

	// Give the goroutines time to pile up behind the blocked fetch.
	time.Sleep(20 * time.Millisecond)
	close(client.release)
	wg.Wait()

	assert.Equal(t, 1, client.fetchCount())
}

func TestInitializeRetriesAfterFailure(t *testing.T) {
	client := &fakeClient{cart: &domain.Cart{ID: 1}}
	client.setFetchErr(errors.New("backend down"))
	store := New(client, logger.Discard())
	ctx := context.Background()

	require.Error(t, store.Initialize(ctx))
	assert.False(t, store.Initialized())

	client.setFetchErr(nil)
	require.NoError(t, store.Initialize(ctx))
	assert.True(t, store.Initialized())
}

func TestEmptyCartStaysNil(t *testing.T) {
	client := &fakeClient{}
	store := New(client, logger.Discard())

	require.NoError(t, store.Initialize(context.Background()))
	assert.Nil(t, store.Cart())
	assert.True(t, store.Initialized())
}

func TestMutationRefetchesInsteadOfComputing(t *testing.T) {
	client := &fakeClient{}
	store := New(client, logger.Discard())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	require.NoError(t, store.AddItem(ctx, domain.AddToCartRequest{ProductID: 7, Quantity: 2}))

	cart := store.Cart()
	require.NotNil(t, cart)
	assert.Equal(t, 2, cart.TotalItems)
	require.Len(t, cart.Items, 1)

	require.NoError(t, store.RemoveItem(ctx, cart.Items[0].ID))
	cart = store.Cart()
	require.NotNil(t, cart)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Empty(t, cart.Items)

	// Initialize + add + remove, each mutation followed by one re-fetch.
	assert.Equal(t, 3, client.fetchCount())
}

func TestFailedWriteLeavesSnapshotUntouched(t *testing.T) {
	client := &fakeClient{}
	store := New(client, logger.Discard())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.AddItem(ctx, domain.AddToCartRequest{ProductID: 7, Quantity: 2}))
	before := store.Cart()

	client.setMutateErr(errors.New("quantity exceeds available stock"))
	err := store.AddItem(ctx, domain.AddToCartRequest{ProductID: 8, Quantity: 99})
	require.Error(t, err)

	assert.Same(t, before, store.Cart())
}

func TestFailedRefetchLeavesStaleSnapshotAndNoError(t *testing.T) {
	client := &fakeClient{}
	store := New(client, logger.Discard())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.AddItem(ctx, domain.AddToCartRequest{ProductID: 7, Quantity: 2}))
	before := store.Cart()

	client.setFetchErr(errors.New("backend down"))
	require.NoError(t, store.AddItem(ctx, domain.AddToCartRequest{ProductID: 8, Quantity: 1}))

	// The write landed server-side; the visible snapshot is simply stale.
	assert.Same(t, before, store.Cart())
}

func TestClearGoesThroughTheServer(t *testing.T) {
	client := &fakeClient{}
	store := New(client, logger.Discard())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.AddItem(ctx, domain.AddToCartRequest{ProductID: 7, Quantity: 2}))

	require.NoError(t, store.Clear(ctx))

	cart := store.Cart()
	require.NotNil(t, cart)
	assert.Equal(t, 0, cart.TotalItems)
	assert.Empty(t, cart.Items)
}

func TestResetDuringInFlightInitializeWins(t *testing.T) {
	client := &fakeClient{cart: &domain.Cart{ID: 1, TotalItems: 5}, release: make(chan struct{})}
	store := New(client, logger.Discard())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- store.Initialize(ctx) }()

	// Log out while the first fetch is still on the wire.
	time.Sleep(20 * time.Millisecond)
	store.Reset()
	close(client.release)
	require.NoError(t, <-done)

	// The stale completion must not resurrect the previous identity's cart.
	assert.False(t, store.Initialized())
	assert.Nil(t, store.Cart())

	// The next session's Initialize starts a fresh fetch.
	require.NoError(t, store.Initialize(ctx))
	assert.True(t, store.Initialized())
	require.NotNil(t, store.Cart())
	assert.Equal(t, 2, client.fetchCount())
}

func TestResetDuringInFlightRefreshWins(t *testing.T) {
	client := &fakeClient{cart: &domain.Cart{ID: 1, TotalItems: 5}}
	store := New(client, logger.Discard())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	client.mu.Lock()
	client.release = make(chan struct{})
	client.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- store.Refresh(ctx) }()

	time.Sleep(20 * time.Millisecond)
	store.Reset()
	close(client.release)
	require.NoError(t, <-done)

	assert.Nil(t, store.Cart())
}

func TestResetDropsSnapshotAndAllowsReinitialize(t *testing.T) {
	client := &fakeClient{cart: &domain.Cart{ID: 1, TotalItems: 2}}
	store := New(client, logger.Discard())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NotNil(t, store.Cart())

	store.Reset()
	assert.Nil(t, store.Cart())
	assert.False(t, store.Initialized())

	require.NoError(t, store.Initialize(ctx))
	assert.Equal(t, 2, client.fetchCount())
}
