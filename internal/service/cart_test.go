package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaikart/padharo/internal/cartapi"
	"github.com/sawaikart/padharo/internal/domain"
)

func newTestCart(mock *cartapi.MockClient) *CartSynchronizer {
	return NewCartSynchronizer(mock, "cart-1", testLogger(), nil)
}

func TestCartSynchronizerAddRefreshesFromServer(t *testing.T) {
	mock := cartapi.NewMockClient()
	mock.ClampQuantity = 3
	s := newTestCart(mock)

	// The server clamps the requested 10 down to 3; the refreshed snapshot
	// must reflect the server's number, not the requested delta.
	snap, err := s.AddItem(context.Background(), "p1", "v1", 10)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, int32(3), snap.Items[0].Quantity)
	assert.True(t, snap.ServerSubtotal)

	local := s.Snapshot()
	assert.Equal(t, snap.Items, local.Items)
}

func TestCartSynchronizerAddRejectsNonPositiveQuantity(t *testing.T) {
	mock := cartapi.NewMockClient()
	s := newTestCart(mock)

	for _, qty := range []int32{0, -1} {
		_, err := s.AddItem(context.Background(), "p1", "v1", qty)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Equal(t, 0, mock.Fetches, "rejected quantities must not reach the network")
}

func TestCartSynchronizerIncreaseDecrease(t *testing.T) {
	mock := cartapi.NewMockClient()
	s := newTestCart(mock)

	snap, err := s.AddItem(context.Background(), "p1", "v1", 2)
	require.NoError(t, err)
	lineID := snap.Items[0].LineID

	snap, err = s.Increase(context.Background(), lineID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), snap.Items[0].Quantity)

	snap, err = s.Decrease(context.Background(), lineID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), snap.Items[0].Quantity)
}

func TestCartSynchronizerDecreaseAtOneIsNoOp(t *testing.T) {
	mock := cartapi.NewMockClient()
	s := newTestCart(mock)

	snap, err := s.AddItem(context.Background(), "p1", "v1", 1)
	require.NoError(t, err)
	lineID := snap.Items[0].LineID
	fetchesBefore := mock.Fetches

	snap, err = s.Decrease(context.Background(), lineID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), snap.Items[0].Quantity)
	assert.Equal(t, fetchesBefore, mock.Fetches, "decrease at quantity 1 must not touch the network")
}

func TestCartSynchronizerUnknownLine(t *testing.T) {
	mock := cartapi.NewMockClient()
	s := newTestCart(mock)

	_, err := s.Increase(context.Background(), "line-404")
	assert.ErrorIs(t, err, domain.ErrLineNotFound)

	_, err = s.Decrease(context.Background(), "line-404")
	assert.ErrorIs(t, err, domain.ErrLineNotFound)

	_, err = s.Remove(context.Background(), "line-404")
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestCartSynchronizerRemoveAndClear(t *testing.T) {
	mock := cartapi.NewMockClient()
	s := newTestCart(mock)

	snap, err := s.AddItem(context.Background(), "p1", "v1", 1)
	require.NoError(t, err)
	_, err = s.AddItem(context.Background(), "p2", "v2", 1)
	require.NoError(t, err)

	snap, err = s.Remove(context.Background(), snap.Items[0].LineID)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.False(t, s.Contains("p1"))
	assert.True(t, s.Contains("p2"))

	snap, err = s.Clear(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0, snap.ItemCount())
}

func TestCartSynchronizerRefreshPicksUpPriceChange(t *testing.T) {
	mock := cartapi.NewMockClient()
	s := newTestCart(mock)

	snap, err := s.AddItem(context.Background(), "p1", "v1", 2)
	require.NoError(t, err)
	lineID := snap.Items[0].LineID

	mock.SetUnitPrice(lineID, 250)

	snap, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(250), snap.Items[0].UnitPrice)
	assert.Equal(t, int32(500), snap.Total())
}

// slowFirstFetch delays completion of the first Fetch until released,
// letting a later refresh overtake it.
type slowFirstFetch struct {
	cartapi.Client

	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (c *slowFirstFetch) Fetch(ctx context.Context, cartKey string) (*domain.CartSnapshot, error) {
	c.mu.Lock()
	c.calls++
	first := c.calls == 1
	c.mu.Unlock()

	snap, err := c.Client.Fetch(ctx, cartKey)
	if first {
		close(c.entered)
		<-c.release
	}
	return snap, err
}

func TestCartSynchronizerDropsStaleSnapshot(t *testing.T) {
	mock := cartapi.NewMockClient()
	slow := &slowFirstFetch{
		Client:  mock,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewCartSynchronizer(slow, "cart-1", testLogger(), nil)

	type result struct {
		snap *domain.CartSnapshot
		err  error
	}
	done := make(chan result, 1)
	go func() {
		snap, err := s.Refresh(context.Background())
		done <- result{snap, err}
	}()

	// The first refresh has read the empty cart and is now stalled.
	select {
	case <-slow.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first fetch never started")
	}

	// The cart changes and a newer refresh applies the new state.
	_, err := mock.Add(context.Background(), "cart-1", "p1", "v1", 2)
	require.NoError(t, err)
	snap, err := s.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)

	// The stalled refresh completes with an older sequence; its response is
	// dropped and the retained snapshot comes back instead.
	close(slow.release)
	first := <-done
	require.NoError(t, first.err)
	require.Len(t, first.snap.Items, 1)
	assert.Equal(t, int32(2), first.snap.Items[0].Quantity)

	local := s.Snapshot()
	require.Len(t, local.Items, 1)
}
