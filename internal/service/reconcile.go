package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/kv"
	"github.com/sawaikart/padharo/internal/orderapi"
	"github.com/sawaikart/padharo/internal/telemetry"
)

// Reconciler resolves a returning gateway redirect, which carries only the
// gateway's own order id, back to the internal order through the durable
// mapping written at submission time.
type Reconciler struct {
	store   kv.Store
	orders  orderapi.Client
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics
}

// NewReconciler creates a Reconciler.
func NewReconciler(store kv.Store, orders orderapi.Client, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *Reconciler {
	return &Reconciler{
		store:   store,
		orders:  orders,
		logger:  logger,
		metrics: metrics,
	}
}

// Resume maps the gateway order id to the internal order and builds the
// confirmation view. A missing mapping returns ErrReconciliationMiss without
// ever calling the order service with an undefined id; the handler degrades
// to a "view your orders" response.
func (r *Reconciler) Resume(ctx context.Context, gatewayOrderID string) (*domain.ConfirmationView, error) {
	if gatewayOrderID == "" {
		return nil, r.miss(gatewayOrderID)
	}

	raw, err := r.store.Get(ctx, kv.OrderMapKey(gatewayOrderID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, r.miss(gatewayOrderID)
		}
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "reconcile.resume", "Could not look up your order. Please try again.")
	}

	var internalOrderID string
	if err := json.Unmarshal(raw, &internalOrderID); err != nil || internalOrderID == "" {
		r.logger.Error("order mapping is unreadable",
			"gateway_order_id", gatewayOrderID)
		return nil, r.miss(gatewayOrderID)
	}

	record, err := r.orders.GetOrder(ctx, internalOrderID)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "reconcile.resume", "Could not load your order. Please try again.")
	}

	if r.metrics != nil {
		r.metrics.ReconciliationHits.Inc()
	}

	return &domain.ConfirmationView{
		Order:       *record,
		PaymentNote: paymentNote(record.PaymentStatus),
	}, nil
}

func (r *Reconciler) miss(gatewayOrderID string) error {
	r.logger.Warn("gateway return had no local order mapping",
		"gateway_order_id", gatewayOrderID)
	if r.metrics != nil {
		r.metrics.ReconciliationMisses.Inc()
	}
	return domain.ErrReconciliationMiss
}

// paymentNote maps the payment sub-status to the line shown on the
// confirmation. Fulfillment status alone decides what screen the user sees;
// the note only annotates it.
func paymentNote(status domain.PaymentStatus) string {
	switch status {
	case domain.PaymentSuccess:
		return "Payment received"
	case domain.PaymentPending:
		return "Payment is being confirmed"
	case domain.PaymentFailed:
		return "Payment failed. If you were charged, the amount will be refunded."
	default:
		return ""
	}
}
