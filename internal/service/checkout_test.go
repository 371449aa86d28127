package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/gateway"
	"github.com/sawaikart/padharo/internal/kv"
	"github.com/sawaikart/padharo/internal/orderapi"
)

type checkoutFixture struct {
	coordinator   *CheckoutCoordinator
	orders        *orderapi.MockClient
	gateway       *gateway.MockGateway
	store         *kv.MemoryStore
	continuations *ContinuationStore
}

func newCheckoutFixture() *checkoutFixture {
	orders := orderapi.NewMockClient()
	gw := &gateway.MockGateway{}
	store := kv.NewMemoryStore()
	continuations := NewContinuationStore(store, 30*time.Minute, testLogger(), nil)
	return &checkoutFixture{
		coordinator:   NewCheckoutCoordinator(orders, gw, store, continuations, nil, "jaipur", "http://localhost:3000", testLogger(), nil),
		orders:        orders,
		gateway:       gw,
		store:         store,
		continuations: continuations,
	}
}

func testCartSnapshot() domain.CartSnapshot {
	return domain.CartSnapshot{
		Items: []domain.LineItem{
			{LineID: "l1", ProductID: "p1", VariantID: "v1", Quantity: 2, UnitPrice: 49900},
		},
		Subtotal:       99800,
		ServerSubtotal: true,
	}
}

func jaipurAddress() *domain.Address {
	return &domain.Address{ID: "addr-1", Name: "Asha Sharma", City: "Jaipur", ZipCode: "302001"}
}

// paymentReadySession walks a session to the payment step.
func (f *checkoutFixture) paymentReadySession(t *testing.T) *domain.CheckoutSession {
	t.Helper()
	sess := f.coordinator.Begin(testCartSnapshot())
	require.NoError(t, f.coordinator.ConfirmAddress(context.Background(), sess, jaipurAddress()))
	require.Equal(t, domain.StepPayment, sess.Step)
	return sess
}

func TestCheckoutConfirmAddressGate(t *testing.T) {
	f := newCheckoutFixture()
	sess := f.coordinator.Begin(testCartSnapshot())
	assert.Equal(t, domain.StepAddress, sess.Step)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, int32(99800), sess.TotalAmount)

	err := f.coordinator.ConfirmAddress(context.Background(), sess, nil)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	err = f.coordinator.ConfirmAddress(context.Background(), sess, &domain.Address{ID: "addr-2", City: "Mumbai"})
	assert.ErrorIs(t, err, domain.ErrNotServiceable)
	assert.Equal(t, domain.StepAddress, sess.Step)
	assert.NotEmpty(t, sess.LastError)

	require.NoError(t, f.coordinator.ConfirmAddress(context.Background(), sess, jaipurAddress()))
	assert.Equal(t, domain.StepPayment, sess.Step)
	assert.Empty(t, sess.LastError)
}

func TestCheckoutPlaceOrderHappyPath(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.CreateResult = &orderapi.CreateOrderResult{
		InternalOrderID:     "ord-1",
		GatewayOrderID:      "gw-1",
		PaymentSessionToken: "cs_123",
	}
	sess := f.paymentReadySession(t)

	result, err := f.coordinator.PlaceOrder(context.Background(), sess, domain.Actor{
		UserID: "user-1", Authenticated: true, Key: "actor-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RedirectURL)
	assert.Empty(t, result.LoginRedirect)
	assert.Equal(t, domain.StepAwaitingGateway, sess.Step)

	// Exactly one order call carrying the session id as idempotency key and
	// the server-confirmed total.
	assert.Equal(t, 1, f.orders.CallCount())
	require.NotNil(t, f.orders.LastCreateParam)
	assert.Equal(t, sess.ID, f.orders.LastCreateParam.IdempotencyKey)
	assert.Equal(t, int32(99800), f.orders.LastCreateParam.TotalAmount)
	assert.Equal(t, "addr-1", f.orders.LastCreateParam.ShippingAddressID)

	// The gateway-id mapping is durable before the browser leaves.
	raw, err := f.store.Get(context.Background(), kv.OrderMapKey("gw-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `"ord-1"`, string(raw))
}

func TestCheckoutPlaceOrderRequiresPaymentStep(t *testing.T) {
	f := newCheckoutFixture()
	sess := f.coordinator.Begin(testCartSnapshot())

	_, err := f.coordinator.PlaceOrder(context.Background(), sess, domain.Actor{
		UserID: "user-1", Authenticated: true, Key: "actor-1",
	})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, 0, f.orders.CallCount())
}

func TestCheckoutIncompleteCreationResponse(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.CreateResult = &orderapi.CreateOrderResult{
		InternalOrderID: "ord-1",
		GatewayOrderID:  "gw-1",
		// PaymentSessionToken missing on a nominal success.
	}
	sess := f.paymentReadySession(t)
	actor := domain.Actor{UserID: "user-1", Authenticated: true, Key: "actor-1"}

	_, err := f.coordinator.PlaceOrder(context.Background(), sess, actor)
	assert.ErrorIs(t, err, domain.ErrOrderCreationIncomplete)
	assert.Equal(t, domain.StepPayment, sess.Step)
	assert.NotEmpty(t, sess.LastError)

	// The session returned to a well-defined state; a retry can succeed.
	f.orders.CreateResult = &orderapi.CreateOrderResult{
		InternalOrderID:     "ord-1",
		GatewayOrderID:      "gw-1",
		PaymentSessionToken: "cs_123",
	}
	result, err := f.coordinator.PlaceOrder(context.Background(), sess, actor)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RedirectURL)
}

func TestCheckoutDoubleSubmitSingleFlight(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.CreateResult = &orderapi.CreateOrderResult{
		InternalOrderID:     "ord-1",
		GatewayOrderID:      "gw-1",
		PaymentSessionToken: "cs_123",
	}
	f.orders.CreateDelay = make(chan struct{})
	sess := f.paymentReadySession(t)
	actor := domain.Actor{UserID: "user-1", Authenticated: true, Key: "actor-1"}

	type placed struct {
		result *PlaceOrderResult
		err    error
	}
	done := make(chan placed, 1)
	go func() {
		result, err := f.coordinator.PlaceOrder(context.Background(), sess, actor)
		done <- placed{result, err}
	}()

	require.Eventually(t, func() bool {
		return f.orders.CallCount() == 1
	}, 5*time.Second, 5*time.Millisecond, "first submission never reached the order service")

	// The second click lands while the first call is in flight.
	_, err := f.coordinator.PlaceOrder(context.Background(), sess, actor)
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)

	close(f.orders.CreateDelay)
	first := <-done
	require.NoError(t, first.err)
	assert.NotEmpty(t, first.result.RedirectURL)
	assert.Equal(t, 1, f.orders.CallCount(), "exactly one order call per user action")
}

func TestCheckoutGuestRedirectedToLogin(t *testing.T) {
	f := newCheckoutFixture()
	sess := f.paymentReadySession(t)

	result, err := f.coordinator.PlaceOrder(context.Background(), sess, domain.Actor{
		Authenticated: false, Key: "guest-7",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.LoginRedirect)
	assert.Empty(t, result.RedirectURL)
	assert.Equal(t, 0, f.orders.CallCount(), "no order call for an unauthenticated submit")
	assert.Equal(t, domain.StepPayment, sess.Step)

	// The guest's input survived under their continuation key.
	record, err := f.continuations.ConsumeIfPresent(context.Background(), "guest-7")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "/checkout", record.TargetRoute)
	assert.NotEmpty(t, record.FormSnapshot)
}

func TestCheckoutGatewayFailureKeepsMapping(t *testing.T) {
	f := newCheckoutFixture()
	f.orders.CreateResult = &orderapi.CreateOrderResult{
		InternalOrderID:     "ord-1",
		GatewayOrderID:      "gw-1",
		PaymentSessionToken: "cs_123",
	}
	f.gateway.Err = errors.New("gateway 502")
	sess := f.paymentReadySession(t)

	_, err := f.coordinator.PlaceOrder(context.Background(), sess, domain.Actor{
		UserID: "user-1", Authenticated: true, Key: "actor-1",
	})
	assert.ErrorIs(t, err, domain.ErrPaymentSessionUnavailable)
	assert.Equal(t, domain.StepPayment, sess.Step)

	// The order exists; the mapping stays so a later gateway return still
	// reconciles.
	_, err = f.store.Get(context.Background(), kv.OrderMapKey("gw-1"))
	assert.NoError(t, err)
}
