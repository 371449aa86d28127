// Package cartapi talks to the remote cart service, the single source of
// truth for cart contents. Every response is a whole snapshot, never a
// delta, and different read paths may return product/variant references as
// either a populated object or a bare id string; this package normalizes
// both shapes into one canonical form at ingest so downstream logic only
// ever sees ids.
package cartapi

import (
	"context"

	"github.com/sawaikart/padharo/internal/domain"
)

// Client is the remote cart collaborator interface. Mutations return the
// server's post-mutation snapshot, but the synchronizer re-reads through
// Fetch under its own sequence numbering; the server may have clamped the
// requested delta (stock limits), so the returned body is advisory.
type Client interface {
	// Fetch returns the authoritative cart snapshot.
	Fetch(ctx context.Context, cartKey string) (*domain.CartSnapshot, error)

	// Add puts a product variant into the cart.
	Add(ctx context.Context, cartKey, productID, variantID string, quantity int32) (*domain.CartSnapshot, error)

	// SetQuantity replaces a line's quantity.
	SetQuantity(ctx context.Context, cartKey, lineID string, quantity int32) (*domain.CartSnapshot, error)

	// Remove deletes a line.
	Remove(ctx context.Context, cartKey, lineID string) (*domain.CartSnapshot, error)

	// Clear empties the cart.
	Clear(ctx context.Context, cartKey string) (*domain.CartSnapshot, error)
}
