package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaikart/padharo/internal/catalog"
	"github.com/sawaikart/padharo/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVariantResolverExplicitIDPassesThrough(t *testing.T) {
	cat := catalog.NewMockService()
	r := NewVariantResolver(cat, testLogger())

	id, err := r.Resolve(context.Background(), "prod-1", "var-9")
	require.NoError(t, err)
	assert.Equal(t, "var-9", id)
	assert.Equal(t, 0, cat.Calls, "explicit variant must not hit the catalog")
}

func TestVariantResolverFirstVariantWins(t *testing.T) {
	cat := catalog.NewMockService()
	cat.Products["prod-1"] = &domain.Product{
		ID:   "prod-1",
		Name: "Block-print dupatta",
		Variants: []domain.Variant{
			{ID: "var-a", SellingPrice: 49900},
			{ID: "var-b", SellingPrice: 39900},
			{ID: "var-c", SellingPrice: 29900},
		},
	}
	r := NewVariantResolver(cat, testLogger())

	id, err := r.Resolve(context.Background(), "prod-1", "")
	require.NoError(t, err)
	assert.Equal(t, "var-a", id)

	// Same product, same answer.
	again, err := r.Resolve(context.Background(), "prod-1", "")
	require.NoError(t, err)
	assert.Equal(t, id, again)
}

func TestVariantResolverNoVariants(t *testing.T) {
	cat := catalog.NewMockService()
	cat.Products["prod-1"] = &domain.Product{ID: "prod-1"}
	r := NewVariantResolver(cat, testLogger())

	_, err := r.Resolve(context.Background(), "prod-1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoPurchasableVariant)
	assert.NotErrorIs(t, err, domain.ErrVariantFetchFailed)
}

func TestVariantResolverUnknownProduct(t *testing.T) {
	cat := catalog.NewMockService()
	r := NewVariantResolver(cat, testLogger())

	_, err := r.Resolve(context.Background(), "prod-missing", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoPurchasableVariant)
}

func TestVariantResolverFetchFailure(t *testing.T) {
	cat := catalog.NewMockService()
	cat.Err = errors.New("connection refused")
	r := NewVariantResolver(cat, testLogger())

	_, err := r.Resolve(context.Background(), "prod-1", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrVariantFetchFailed)
	assert.NotErrorIs(t, err, domain.ErrNoPurchasableVariant)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}
