package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sawaikart/padharo/internal/cartapi"
	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/telemetry"
)

// CartSynchronizer keeps a provisional local copy of one remote cart in sync
// through a two-phase protocol: issue the mutation, then refresh the whole
// snapshot from the cart service. The requested delta is never trusted; the
// server may have clamped it against stock.
type CartSynchronizer struct {
	client  cartapi.Client
	cartKey string
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics

	// opMu serializes mutations so each mutate+refresh pair completes
	// before the next begins (per-cart operation queue).
	opMu sync.Mutex

	// stateMu guards the snapshot and the refresh sequence numbers.
	stateMu sync.Mutex
	snap    domain.CartSnapshot
	seq     uint64
	applied uint64
}

// NewCartSynchronizer creates a synchronizer for one cart key.
func NewCartSynchronizer(client cartapi.Client, cartKey string, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *CartSynchronizer {
	return &CartSynchronizer{
		client:  client,
		cartKey: cartKey,
		logger:  logger,
		metrics: metrics,
	}
}

// Snapshot returns a copy of the last applied cart snapshot.
func (s *CartSynchronizer) Snapshot() domain.CartSnapshot {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.copyLocked()
}

// Contains reports whether the last applied snapshot holds the product.
func (s *CartSynchronizer) Contains(productID string) bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.snap.ContainsProduct(productID)
}

// Refresh fetches the authoritative snapshot and applies it under a
// monotonic sequence. A response that lost the race to a newer refresh is
// dropped and the retained snapshot is returned instead, so the local copy
// only ever moves forward.
func (s *CartSynchronizer) Refresh(ctx context.Context) (*domain.CartSnapshot, error) {
	s.stateMu.Lock()
	s.seq++
	seq := s.seq
	s.stateMu.Unlock()

	remote, err := s.client.Fetch(ctx, s.cartKey)
	if err != nil {
		s.countRefresh("error")
		return nil, cartError(err, "cart.refresh")
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if seq <= s.applied {
		s.countRefresh("stale")
		if s.metrics != nil {
			s.metrics.StaleSnapshotsDropped.Inc()
		}
		retained := s.copyLocked()
		return &retained, nil
	}

	s.applied = seq
	s.snap = *remote
	s.countRefresh("applied")
	if s.metrics != nil {
		s.metrics.CartValue.Observe(float64(remote.Total()))
	}
	applied := s.copyLocked()
	return &applied, nil
}

// AddItem puts quantity units of a variant in the cart.
func (s *CartSynchronizer) AddItem(ctx context.Context, productID, variantID string, quantity int32) (*domain.CartSnapshot, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	if _, err := s.client.Add(ctx, s.cartKey, productID, variantID, quantity); err != nil {
		return nil, cartError(err, "cart.add")
	}
	s.countMutation("add")
	return s.Refresh(ctx)
}

// Increase bumps a line's quantity by one.
func (s *CartSynchronizer) Increase(ctx context.Context, lineID string) (*domain.CartSnapshot, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	line := s.findLine(lineID)
	if line == nil {
		return nil, domain.ErrLineNotFound
	}

	if _, err := s.client.SetQuantity(ctx, s.cartKey, lineID, line.Quantity+1); err != nil {
		return nil, cartError(err, "cart.increase")
	}
	s.countMutation("increase")
	return s.Refresh(ctx)
}

// Decrease lowers a line's quantity by one. At quantity 1 it is a no-op
// without a network call; removal is only ever the explicit Remove action.
func (s *CartSynchronizer) Decrease(ctx context.Context, lineID string) (*domain.CartSnapshot, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	line := s.findLine(lineID)
	if line == nil {
		return nil, domain.ErrLineNotFound
	}
	if line.Quantity <= 1 {
		retained := s.Snapshot()
		return &retained, nil
	}

	if _, err := s.client.SetQuantity(ctx, s.cartKey, lineID, line.Quantity-1); err != nil {
		return nil, cartError(err, "cart.decrease")
	}
	s.countMutation("decrease")
	return s.Refresh(ctx)
}

// Remove deletes a line from the cart.
func (s *CartSynchronizer) Remove(ctx context.Context, lineID string) (*domain.CartSnapshot, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if _, err := s.client.Remove(ctx, s.cartKey, lineID); err != nil {
		return nil, cartError(err, "cart.remove")
	}
	s.countMutation("remove")
	return s.Refresh(ctx)
}

// Clear empties the cart.
func (s *CartSynchronizer) Clear(ctx context.Context) (*domain.CartSnapshot, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if _, err := s.client.Clear(ctx, s.cartKey); err != nil {
		return nil, cartError(err, "cart.clear")
	}
	s.countMutation("clear")
	return s.Refresh(ctx)
}

func (s *CartSynchronizer) copyLocked() domain.CartSnapshot {
	out := s.snap
	out.Items = make([]domain.LineItem, len(s.snap.Items))
	copy(out.Items, s.snap.Items)
	return out
}

func (s *CartSynchronizer) findLine(lineID string) *domain.LineItem {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if li := s.snap.FindLine(lineID); li != nil {
		out := *li
		return &out
	}
	return nil
}

func (s *CartSynchronizer) countMutation(kind string) {
	if s.metrics != nil {
		s.metrics.CartMutations.WithLabelValues(kind).Inc()
	}
}

func (s *CartSynchronizer) countRefresh(outcome string) {
	if s.metrics != nil {
		s.metrics.CartRefreshes.WithLabelValues(outcome).Inc()
	}
}

// cartError passes domain errors through and wraps transport failures as
// retryable unavailability.
func cartError(err error, op string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.WrapError(err, domain.EUNAVAILABLE, op, "Cart is temporarily unavailable. Please try again.")
}
