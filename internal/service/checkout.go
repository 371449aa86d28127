package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/events"
	"github.com/sawaikart/padharo/internal/gateway"
	"github.com/sawaikart/padharo/internal/kv"
	"github.com/sawaikart/padharo/internal/orderapi"
	"github.com/sawaikart/padharo/internal/telemetry"
)

// PlaceOrderResult is the coordinator's answer to a submission. Exactly one
// of the two fields is set: RedirectURL hands the browser to the payment
// gateway, LoginRedirect sends an unauthenticated actor to login with their
// input preserved in the continuation store.
type PlaceOrderResult struct {
	RedirectURL   string
	LoginRedirect string
}

// checkoutContinuation is the form snapshot saved for a guest who must log
// in before submitting.
type checkoutContinuation struct {
	Items       []domain.LineItem `json:"items"`
	Address     *domain.Address   `json:"address,omitempty"`
	TotalAmount int32             `json:"total_amount"`
}

// CheckoutCoordinator drives one checkout attempt through its states:
// address selection, payment selection, submitting, awaiting the gateway
// redirect. Every failure path puts the session back in the last
// well-defined state with LastError set; no path leaves it undefined.
type CheckoutCoordinator struct {
	orders        orderapi.Client
	gateway       gateway.Gateway
	store         kv.Store
	continuations *ContinuationStore
	publisher     *events.Publisher
	region        string
	baseURL       string
	logger        *slog.Logger
	metrics       *telemetry.BusinessMetrics

	// mu guards session state transitions, making the submit guard
	// race-free: at most one submission per session is ever in flight.
	mu sync.Mutex
}

// NewCheckoutCoordinator creates the coordinator.
func NewCheckoutCoordinator(
	orders orderapi.Client,
	gw gateway.Gateway,
	store kv.Store,
	continuations *ContinuationStore,
	publisher *events.Publisher,
	region string,
	baseURL string,
	logger *slog.Logger,
	metrics *telemetry.BusinessMetrics,
) *CheckoutCoordinator {
	return &CheckoutCoordinator{
		orders:        orders,
		gateway:       gw,
		store:         store,
		continuations: continuations,
		publisher:     publisher,
		region:        region,
		baseURL:       baseURL,
		logger:        logger,
		metrics:       metrics,
	}
}

// Begin opens a checkout session over the given cart snapshot. The session
// total is the snapshot's server-provided subtotal when present.
func (c *CheckoutCoordinator) Begin(snap domain.CartSnapshot) *domain.CheckoutSession {
	if c.metrics != nil {
		c.metrics.CheckoutStarted.Inc()
	}
	return &domain.CheckoutSession{
		ID:          uuid.NewString(),
		Items:       snap.Items,
		Step:        domain.StepAddress,
		CreatedAt:   time.Now(),
		TotalAmount: snap.Total(),
	}
}

// ConfirmAddress moves the session from address selection to payment
// selection. It requires an explicit user action with a selected address
// whose serviceability verdict, recomputed here, passes the gate.
func (c *CheckoutCoordinator) ConfirmAddress(ctx context.Context, sess *domain.CheckoutSession, addr *domain.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sess.Step != domain.StepAddress {
		return domain.Errorf(domain.EINVALID, "checkout.confirm_address", "address already confirmed")
	}
	if addr == nil {
		return domain.Errorf(domain.EINVALID, "checkout.confirm_address", "select a delivery address first")
	}

	verdict := domain.Serviceable(*addr, c.region)
	if !verdict.Serviceable {
		sess.LastError = verdict.Reason
		if c.metrics != nil {
			c.metrics.AddressRejected.Inc()
		}
		return domain.ErrNotServiceable
	}

	addrCopy := *addr
	sess.Address = &addrCopy
	sess.Step = domain.StepPayment
	sess.LastError = ""
	if c.metrics != nil {
		c.metrics.CheckoutStep.WithLabelValues("address").Inc()
	}
	c.publisher.Publish(events.SubjectCheckoutConfirmed, events.AddressConfirmed{
		City:      addrCopy.City,
		ZipCode:   addrCopy.ZipCode,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

// PlaceOrder submits the session. It calls the order service at most once
// per invocation; a submission arriving while another is in flight returns
// ErrSubmitInFlight without any network call.
func (c *CheckoutCoordinator) PlaceOrder(ctx context.Context, sess *domain.CheckoutSession, actor domain.Actor) (*PlaceOrderResult, error) {
	c.mu.Lock()
	if sess.Step == domain.StepSubmitting {
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.SubmitBlocked.Inc()
		}
		return nil, domain.ErrSubmitInFlight
	}
	if sess.Step != domain.StepPayment {
		c.mu.Unlock()
		return nil, domain.Errorf(domain.EINVALID, "checkout.place_order", "confirm your delivery address first")
	}
	sess.Step = domain.StepSubmitting
	sess.LastError = ""
	c.mu.Unlock()

	// Identity is checked at submit time; a login session can expire
	// anywhere in the flow.
	if !actor.Authenticated {
		return c.redirectToLogin(ctx, sess, actor)
	}

	result, err := c.orders.CreateOrder(ctx, orderapi.CreateOrderParams{
		UserID:            actor.UserID,
		Items:             sess.Items,
		ShippingAddressID: sess.Address.ID,
		TotalAmount:       sess.TotalAmount,
		IdempotencyKey:    sess.ID,
	})
	if err != nil {
		c.failSubmit(sess, "Order could not be placed. Please try again.")
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "checkout.place_order", "Order could not be placed. Please try again.")
	}

	// A 200 with required fields missing is not success.
	if result == nil || result.InternalOrderID == "" || result.PaymentSessionToken == "" {
		c.logger.Error("order service returned incomplete creation response",
			"session_id", sess.ID)
		c.failSubmit(sess, domain.ErrOrderCreationIncomplete.Message)
		return nil, domain.ErrOrderCreationIncomplete
	}

	c.persistOrderMap(ctx, result)
	c.publishOrderCreated(result, actor, sess.TotalAmount)

	if c.metrics != nil {
		c.metrics.OrdersCreated.Inc()
		c.metrics.OrderValue.Observe(float64(sess.TotalAmount))
	}

	handoff, err := c.gateway.Launch(ctx, gateway.LaunchParams{
		SessionToken: result.PaymentSessionToken,
		ReturnURL:    c.baseURL + "/orders/confirmation",
	})
	if err != nil {
		// The order exists and the map entry stays; a later gateway
		// return can still be reconciled.
		c.logger.Error("payment gateway launch failed",
			"internal_order_id", result.InternalOrderID,
			"error", err)
		if c.metrics != nil {
			c.metrics.PaymentLaunches.WithLabelValues("failed").Inc()
		}
		c.failSubmit(sess, domain.ErrPaymentSessionUnavailable.Message)
		return nil, domain.WrapError(err, domain.EPAYMENT, "checkout.place_order", domain.ErrPaymentSessionUnavailable.Message)
	}

	c.mu.Lock()
	sess.Step = domain.StepAwaitingGateway
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.PaymentLaunches.WithLabelValues("launched").Inc()
		c.metrics.CheckoutStep.WithLabelValues("payment").Inc()
	}
	c.logger.Info("checkout handed off to gateway",
		"internal_order_id", result.InternalOrderID,
		"gateway_order_id", result.GatewayOrderID)

	return &PlaceOrderResult{RedirectURL: handoff.RedirectURL}, nil
}

// redirectToLogin snapshots the in-flight checkout for the guest and points
// them at login. Saving is best effort; losing the snapshot costs re-entry,
// not correctness.
func (c *CheckoutCoordinator) redirectToLogin(ctx context.Context, sess *domain.CheckoutSession, actor domain.Actor) (*PlaceOrderResult, error) {
	snapshot, err := json.Marshal(checkoutContinuation{
		Items:       sess.Items,
		Address:     sess.Address,
		TotalAmount: sess.TotalAmount,
	})
	if err == nil {
		if err := c.continuations.Save(ctx, actor.Key, snapshot, "/checkout"); err != nil {
			c.logger.Warn("failed to save checkout continuation",
				"error", err)
		}
	}

	c.mu.Lock()
	sess.Step = domain.StepPayment
	c.mu.Unlock()

	return &PlaceOrderResult{LoginRedirect: "/login?next=%2Fcheckout"}, nil
}

// persistOrderMap writes the gateway-id to internal-id bridge. A write
// failure is logged and tolerated; the reconciler degrades to its miss path.
func (c *CheckoutCoordinator) persistOrderMap(ctx context.Context, result *orderapi.CreateOrderResult) {
	if result.GatewayOrderID == "" {
		c.logger.Warn("order created without a gateway order id",
			"internal_order_id", result.InternalOrderID)
		return
	}

	value, err := json.Marshal(result.InternalOrderID)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, kv.OrderMapKey(result.GatewayOrderID), value); err != nil {
		c.logger.Error("failed to persist order mapping",
			"gateway_order_id", result.GatewayOrderID,
			"error", err)
	}
}

func (c *CheckoutCoordinator) publishOrderCreated(result *orderapi.CreateOrderResult, actor domain.Actor, total int32) {
	c.publisher.Publish(events.SubjectOrderCreated, events.OrderCreated{
		InternalOrderID: result.InternalOrderID,
		GatewayOrderID:  result.GatewayOrderID,
		UserID:          actor.UserID,
		TotalAmount:     total,
		CreatedAt:       time.Now().UTC(),
	})
}

func (c *CheckoutCoordinator) failSubmit(sess *domain.CheckoutSession, reason string) {
	c.mu.Lock()
	sess.Step = domain.StepPayment
	sess.LastError = reason
	c.mu.Unlock()
}
