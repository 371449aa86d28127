package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/kv"
	"github.com/sawaikart/padharo/internal/telemetry"
)

// ContinuationStore preserves a guest's in-flight form input across the
// login redirect. One pending continuation per actor key; saving overwrites,
// consuming deletes atomically so a record is restored at most once.
type ContinuationStore struct {
	store   kv.Store
	ttl     time.Duration
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics

	now func() time.Time
}

// NewContinuationStore creates the store. ttl bounds how long a saved
// snapshot stays restorable.
func NewContinuationStore(store kv.Store, ttl time.Duration, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *ContinuationStore {
	return &ContinuationStore{
		store:   store,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// Save writes the continuation under the actor's well-known key,
// overwriting any earlier one.
func (s *ContinuationStore) Save(ctx context.Context, actorKey string, snapshot json.RawMessage, targetRoute string) error {
	record := domain.ContinuationRecord{
		FormSnapshot: snapshot,
		TargetRoute:  targetRoute,
		SavedAt:      s.now().UTC(),
	}

	value, err := json.Marshal(record)
	if err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "continuation.save", "could not snapshot form state")
	}
	if err := s.store.Set(ctx, kv.ContinuationKey(actorKey), value); err != nil {
		return domain.WrapError(err, domain.EUNAVAILABLE, "continuation.save", "could not save form state")
	}

	if s.metrics != nil {
		s.metrics.ContinuationsSaved.Inc()
	}
	return nil
}

// ConsumeIfPresent atomically reads and deletes the actor's continuation.
// Returns (nil, nil) when there is none, when the stored record is
// unreadable, or when it aged past the TTL; a stale restore is worse than
// none.
func (s *ContinuationStore) ConsumeIfPresent(ctx context.Context, actorKey string) (*domain.ContinuationRecord, error) {
	raw, err := s.store.GetDel(ctx, kv.ContinuationKey(actorKey))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "continuation.consume", "could not restore form state")
	}

	var record domain.ContinuationRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		s.logger.Warn("discarding unreadable continuation record",
			"error", err)
		return nil, nil
	}

	if s.now().Sub(record.SavedAt) > s.ttl {
		if s.metrics != nil {
			s.metrics.ContinuationsExpired.Inc()
		}
		return nil, nil
	}

	if s.metrics != nil {
		s.metrics.ContinuationsConsumed.Inc()
	}
	return &record, nil
}
