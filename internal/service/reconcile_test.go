package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/kv"
	"github.com/sawaikart/padharo/internal/orderapi"
)

func newTestReconciler() (*Reconciler, *kv.MemoryStore, *orderapi.MockClient) {
	store := kv.NewMemoryStore()
	orders := orderapi.NewMockClient()
	return NewReconciler(store, orders, testLogger(), nil), store, orders
}

func TestReconcilerMissWithoutOrderFetch(t *testing.T) {
	r, _, orders := newTestReconciler()
	orders.GetErr = errors.New("order service must not be called on a miss")

	_, err := r.Resume(context.Background(), "gw-unknown")
	assert.ErrorIs(t, err, domain.ErrReconciliationMiss)

	_, err = r.Resume(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrReconciliationMiss)
}

func TestReconcilerUnreadableMappingDegradesToMiss(t *testing.T) {
	r, store, _ := newTestReconciler()
	require.NoError(t, store.Set(context.Background(), kv.OrderMapKey("gw-1"), []byte("{broken")))

	_, err := r.Resume(context.Background(), "gw-1")
	assert.ErrorIs(t, err, domain.ErrReconciliationMiss)
}

func TestReconcilerResumeBuildsConfirmation(t *testing.T) {
	r, store, orders := newTestReconciler()
	require.NoError(t, store.Set(context.Background(), kv.OrderMapKey("gw-1"), []byte(`"ord-1"`)))
	orders.Orders["ord-1"] = &domain.OrderRecord{
		InternalOrderID: "ord-1",
		GatewayOrderID:  "gw-1",
		OrderStatus:     domain.OrderPending,
		PaymentStatus:   domain.PaymentSuccess,
		TotalPrice:      99800,
	}

	view, err := r.Resume(context.Background(), "gw-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", view.Order.InternalOrderID)
	assert.Equal(t, domain.OrderPending, view.Order.OrderStatus)
	assert.Equal(t, "Payment received", view.PaymentNote)
}

func TestReconcilerPaymentStatusNeverGatesConfirmation(t *testing.T) {
	r, store, orders := newTestReconciler()
	require.NoError(t, store.Set(context.Background(), kv.OrderMapKey("gw-2"), []byte(`"ord-2"`)))

	tests := []struct {
		name     string
		status   domain.PaymentStatus
		wantNote string
	}{
		{"pending payment", domain.PaymentPending, "Payment is being confirmed"},
		{"failed payment", domain.PaymentFailed, "Payment failed. If you were charged, the amount will be refunded."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders.Orders["ord-2"] = &domain.OrderRecord{
				InternalOrderID: "ord-2",
				OrderStatus:     domain.OrderPending,
				PaymentStatus:   tt.status,
			}

			// Confirmation still renders; the status only changes the note.
			view, err := r.Resume(context.Background(), "gw-2")
			require.NoError(t, err)
			assert.Equal(t, tt.wantNote, view.PaymentNote)
		})
	}
}
