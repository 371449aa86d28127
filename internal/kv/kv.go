// Package kv provides the durable key-value port backing the gateway-order
// map and guest continuation records. This is the one piece of state the
// checkout core genuinely owns; everything else is a provisional read cache
// over a backend-owned resource.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the key-value port. A single writer per key is assumed
// (the checkout coordinator at submission time).
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes the value for key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GetDel atomically reads and deletes the key, so a consume-once
	// record can never be replayed twice. Returns ErrNotFound if absent.
	GetDel(ctx context.Context, key string) ([]byte, error)
}

// Key prefixes owned by the checkout core.
const (
	// OrderMapPrefix bridges the gateway's order id back to the internal
	// order id after the redirect returns.
	OrderMapPrefix = "ORDER_MAP_"

	// ContinuationPrefix scopes guest continuation snapshots per actor key.
	ContinuationPrefix = "GUEST_CONTINUATION_"
)

// OrderMapKey builds the durable mapping key for a gateway order id.
func OrderMapKey(gatewayOrderID string) string {
	return OrderMapPrefix + gatewayOrderID
}

// ContinuationKey builds the well-known continuation key for an actor.
func ContinuationKey(actorKey string) string {
	return ContinuationPrefix + actorKey
}
