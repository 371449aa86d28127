package storefront

import (
	"log/slog"
	"net/http"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/middleware"
	"github.com/sawaikart/padharo/internal/service"
)

// CheckoutHandler drives the checkout flow routes through the coordinator.
type CheckoutHandler struct {
	registry      *service.Registry
	coordinator   *service.CheckoutCoordinator
	continuations *service.ContinuationStore
	logger        *slog.Logger
}

// NewCheckoutHandler creates the checkout handler.
func NewCheckoutHandler(registry *service.Registry, coordinator *service.CheckoutCoordinator, continuations *service.ContinuationStore, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		registry:      registry,
		coordinator:   coordinator,
		continuations: continuations,
		logger:        logger,
	}
}

// ConfirmAddress locks in the selected address and moves the session to the
// payment step. The first confirmation opens the session from a fresh cart
// snapshot.
func (h *CheckoutHandler) ConfirmAddress(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	bundle := h.registry.For(actor)

	sess := bundle.Session()
	if sess == nil || sess.Step == domain.StepAwaitingGateway {
		snap, err := bundle.Cart.Refresh(r.Context())
		if err != nil {
			respondError(w, r, err)
			return
		}
		if len(snap.Items) == 0 {
			respondError(w, r, domain.Errorf(domain.EINVALID, "checkout.confirm_address", "Your cart is empty"))
			return
		}
		sess = h.coordinator.Begin(*snap)
		bundle.SetSession(sess)
	}

	if err := h.coordinator.ConfirmAddress(r.Context(), sess, bundle.Addresses.Selected()); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"step":         sess.Step,
		"total_amount": sess.TotalAmount,
	})
}

// PlaceOrder submits the open session. The response carries either the
// gateway redirect or, for a guest, the login redirect with their input
// preserved server-side.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	bundle := h.registry.For(actor)

	sess := bundle.Session()
	if sess == nil {
		respondError(w, r, domain.Errorf(domain.EINVALID, "checkout.place_order", "No checkout in progress"))
		return
	}

	result, err := h.coordinator.PlaceOrder(r.Context(), sess, actor)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if result.LoginRedirect != "" {
		respondJSON(w, http.StatusOK, map[string]any{"login_redirect": result.LoginRedirect})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"redirect_url": result.RedirectURL})
}

// Continuation consumes the actor's saved form snapshot after login. The
// second call returns nothing; the record is deleted on read.
func (h *CheckoutHandler) Continuation(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	record, err := h.continuations.ConsumeIfPresent(r.Context(), actor.Key)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if record == nil {
		respondJSON(w, http.StatusOK, map[string]any{"pending": false})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"pending":       true,
		"target_route":  record.TargetRoute,
		"form_snapshot": record.FormSnapshot,
	})
}
