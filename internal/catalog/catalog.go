// Package catalog talks to the catalog service. The checkout core only reads
// products and their purchasable variants; stock and price administration is
// a catalog-admin concern handled elsewhere.
package catalog

import (
	"context"

	"github.com/sawaikart/padharo/internal/domain"
)

// Service is the catalog collaborator interface.
type Service interface {
	// GetProduct returns the product and its variant list by id.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}
