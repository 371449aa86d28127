package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaikart/padharo/internal/addressbook"
	"github.com/sawaikart/padharo/internal/cartapi"
	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/gateway"
	"github.com/sawaikart/padharo/internal/kv"
	"github.com/sawaikart/padharo/internal/middleware"
	"github.com/sawaikart/padharo/internal/orderapi"
	"github.com/sawaikart/padharo/internal/postal"
	"github.com/sawaikart/padharo/internal/service"
)

type checkoutHarness struct {
	handler *CheckoutHandler
	orders  *orderapi.MockClient
	actor   domain.Actor
}

func newCheckoutHarness(t *testing.T, actor domain.Actor) *checkoutHarness {
	t.Helper()
	logger := testLogger()
	registry := service.NewRegistry(cartapi.NewMockClient(), addressbook.NewMockClient(), postal.NewMockLookup(), "jaipur", logger, nil)
	orders := orderapi.NewMockClient()
	store := kv.NewMemoryStore()
	continuations := service.NewContinuationStore(store, 30*time.Minute, logger, nil)
	coordinator := service.NewCheckoutCoordinator(orders, &gateway.MockGateway{}, store, continuations, nil, "jaipur", "http://localhost:3000", logger, nil)

	// Seed a cart and a serviceable selected address for the actor.
	bundle := registry.For(actor)
	_, err := bundle.Cart.AddItem(context.Background(), "p1", "v1", 2)
	require.NoError(t, err)
	_, err = bundle.Addresses.SetGuestAddress(addressbook.AddressPayload{
		Name:    "Asha Sharma",
		Phone:   "9876543210",
		Street:  "12 MI Road",
		City:    "Jaipur",
		ZipCode: "302001",
	})
	require.NoError(t, err)

	return &checkoutHarness{
		handler: NewCheckoutHandler(registry, coordinator, continuations, logger),
		orders:  orders,
		actor:   actor,
	}
}

func (h *checkoutHarness) post(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(nil))
	req = req.WithContext(middleware.WithActor(req.Context(), h.actor))
	rec := httptest.NewRecorder()
	switch path {
	case "/checkout/confirm-address":
		h.handler.ConfirmAddress(rec, req)
	case "/checkout/place-order":
		h.handler.PlaceOrder(rec, req)
	}
	return rec
}

func TestCheckoutHandlerDoubleClickGuard(t *testing.T) {
	h := newCheckoutHarness(t, domain.Actor{UserID: "user-1", Authenticated: true, Key: "actor-1"})
	h.orders.CreateResult = &orderapi.CreateOrderResult{
		InternalOrderID:     "ord-1",
		GatewayOrderID:      "gw-1",
		PaymentSessionToken: "cs_123",
	}
	h.orders.CreateDelay = make(chan struct{})

	require.Equal(t, http.StatusOK, h.post("/checkout/confirm-address").Code)

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() { first <- h.post("/checkout/place-order") }()

	require.Eventually(t, func() bool {
		return h.orders.CallCount() == 1
	}, 5*time.Second, 5*time.Millisecond)

	// The second click gets a conflict, not a second order.
	second := h.post("/checkout/place-order")
	assert.Equal(t, http.StatusConflict, second.Code)

	close(h.orders.CreateDelay)
	rec := <-first
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["redirect_url"])
	assert.Equal(t, 1, h.orders.CallCount())
}

func TestCheckoutHandlerGuestGetsLoginRedirect(t *testing.T) {
	h := newCheckoutHarness(t, domain.Actor{Authenticated: false, Key: "guest-1"})

	require.Equal(t, http.StatusOK, h.post("/checkout/confirm-address").Code)

	rec := h.post("/checkout/place-order")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["login_redirect"])
	assert.Empty(t, body["redirect_url"])
	assert.Equal(t, 0, h.orders.CallCount())
}

func TestCheckoutHandlerPlaceOrderWithoutSession(t *testing.T) {
	h := newCheckoutHarness(t, domain.Actor{UserID: "user-1", Authenticated: true, Key: "actor-2"})

	rec := h.post("/checkout/place-order")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
