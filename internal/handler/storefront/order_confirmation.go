package storefront

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/service"
)

// OrderConfirmationHandler resolves the returning gateway redirect into the
// confirmation view.
type OrderConfirmationHandler struct {
	reconciler *service.Reconciler
	logger     *slog.Logger
}

// NewOrderConfirmationHandler creates the confirmation handler.
func NewOrderConfirmationHandler(reconciler *service.Reconciler, logger *slog.Logger) *OrderConfirmationHandler {
	return &OrderConfirmationHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

type confirmationResponse struct {
	Matched     bool           `json:"matched"`
	Order       *orderResponse `json:"order,omitempty"`
	PaymentNote string         `json:"payment_note,omitempty"`

	// Message and OrdersURL are set on the degraded path when the gateway
	// order id has no local mapping.
	Message   string `json:"message,omitempty"`
	OrdersURL string `json:"orders_url,omitempty"`
}

type orderResponse struct {
	InternalOrderID string             `json:"internal_order_id"`
	OrderStatus     string             `json:"order_status"`
	PaymentStatus   string             `json:"payment_status"`
	Items           []cartLineResponse `json:"items"`
	ItemsPrice      int32              `json:"items_price"`
	TaxPrice        int32              `json:"tax_price"`
	TotalPrice      int32              `json:"total_price"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ServeHTTP handles GET /orders/confirmation?gateway_order_id=...
// A reconciliation miss is not an error page: the payment may well have
// succeeded, so the user is pointed at their order history instead.
func (h *OrderConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gatewayOrderID := r.URL.Query().Get("gateway_order_id")

	view, err := h.reconciler.Resume(r.Context(), gatewayOrderID)
	if err != nil {
		if errors.Is(err, domain.ErrReconciliationMiss) {
			respondJSON(w, http.StatusOK, confirmationResponse{
				Matched:   false,
				Message:   "Your payment was received, but we could not match it to an order on this device. Please check your orders.",
				OrdersURL: "/account/orders",
			})
			return
		}
		respondError(w, r, err)
		return
	}

	items := make([]cartLineResponse, 0, len(view.Order.Items))
	for _, li := range view.Order.Items {
		items = append(items, cartLineResponse{
			LineID:       li.LineID,
			ProductID:    li.ProductID,
			VariantID:    li.VariantID,
			Quantity:     li.Quantity,
			UnitPrice:    li.UnitPrice,
			LineSubtotal: li.LineSubtotal(),
		})
	}

	respondJSON(w, http.StatusOK, confirmationResponse{
		Matched: true,
		Order: &orderResponse{
			InternalOrderID: view.Order.InternalOrderID,
			OrderStatus:     string(view.Order.OrderStatus),
			PaymentStatus:   string(view.Order.PaymentStatus),
			Items:           items,
			ItemsPrice:      view.Order.ItemsPrice,
			TaxPrice:        view.Order.TaxPrice,
			TotalPrice:      view.Order.TotalPrice,
			CreatedAt:       view.Order.CreatedAt,
		},
		PaymentNote: view.PaymentNote,
	})
}
