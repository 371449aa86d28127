package storefront

import (
	"log/slog"
	"net/http"

	"github.com/sawaikart/padharo/internal/middleware"
	"github.com/sawaikart/padharo/internal/service"
)

// CartHandler serves the cart routes over the per-actor cart synchronizer.
type CartHandler struct {
	registry *service.Registry
	variants *service.VariantResolver
	logger   *slog.Logger
}

// NewCartHandler creates the cart handler.
func NewCartHandler(registry *service.Registry, variants *service.VariantResolver, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		registry: registry,
		variants: variants,
		logger:   logger,
	}
}

// View returns the refreshed authoritative snapshot.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	bundle := h.registry.For(middleware.GetActor(r.Context()))

	snap, err := bundle.Cart.Refresh(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(snap))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int32  `json:"quantity"`
}

// Add resolves the variant and puts it in the cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	variantID, err := h.variants.Resolve(r.Context(), req.ProductID, req.VariantID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	bundle := h.registry.For(middleware.GetActor(r.Context()))
	snap, err := bundle.Cart.AddItem(r.Context(), req.ProductID, variantID, req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(snap))
}

// Increase bumps a line's quantity by one.
func (h *CartHandler) Increase(w http.ResponseWriter, r *http.Request) {
	bundle := h.registry.For(middleware.GetActor(r.Context()))

	snap, err := bundle.Cart.Increase(r.Context(), r.PathValue("lineID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(snap))
}

// Decrease lowers a line's quantity by one; at quantity 1 nothing happens.
func (h *CartHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	bundle := h.registry.For(middleware.GetActor(r.Context()))

	snap, err := bundle.Cart.Decrease(r.Context(), r.PathValue("lineID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(snap))
}

// Remove deletes a line.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	bundle := h.registry.For(middleware.GetActor(r.Context()))

	snap, err := bundle.Cart.Remove(r.Context(), r.PathValue("lineID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(snap))
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	bundle := h.registry.For(middleware.GetActor(r.Context()))

	snap, err := bundle.Cart.Clear(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(snap))
}
