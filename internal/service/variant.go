// Package service implements the checkout core: variant resolution, cart
// synchronization, address selection with the serviceability gate, the
// checkout coordinator state machine, order/payment reconciliation, and the
// guest continuation store. All remote state is owned by backend services;
// this package holds provisional caches plus the one durable kv map.
package service

import (
	"context"
	"log/slog"

	"github.com/sawaikart/padharo/internal/catalog"
	"github.com/sawaikart/padharo/internal/domain"
)

// VariantResolver resolves a purchasable variant id for add-to-cart actions.
type VariantResolver struct {
	catalog catalog.Service
	logger  *slog.Logger
}

// NewVariantResolver creates a VariantResolver.
func NewVariantResolver(cat catalog.Service, logger *slog.Logger) *VariantResolver {
	return &VariantResolver{
		catalog: cat,
		logger:  logger,
	}
}

// Resolve returns the variant id to add for a product. An explicit variant
// id passes through untouched with zero network calls. Otherwise the product
// is fetched and the first listed variant wins the tie deterministically;
// list order is the catalog's display order.
func (r *VariantResolver) Resolve(ctx context.Context, productID, explicitVariantID string) (string, error) {
	if explicitVariantID != "" {
		return explicitVariantID, nil
	}

	product, err := r.catalog.GetProduct(ctx, productID)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return "", domain.ErrNoPurchasableVariant
		}
		r.logger.Warn("variant resolution failed",
			"product_id", productID,
			"error", err)
		return "", domain.WrapError(err, domain.EUNAVAILABLE, "variant.resolve", domain.ErrVariantFetchFailed.Message)
	}

	if len(product.Variants) == 0 {
		return "", domain.ErrNoPurchasableVariant
	}

	return product.Variants[0].ID, nil
}
