package domain

import (
	"encoding/json"
	"time"
)

// Actor identifies the current requester. The identity provider is out of
// scope beyond this boolean+id query; the actor is passed explicitly to the
// coordinator and reconciler rather than read from ambient storage.
type Actor struct {
	UserID        string
	Authenticated bool

	// Key is the stable per-browser key used for cart and continuation
	// scoping; present for guests too.
	Key string
}

// CheckoutStep is the coordinator's state-machine position.
type CheckoutStep string

const (
	StepAddress         CheckoutStep = "address_selection"
	StepPayment         CheckoutStep = "payment_selection"
	StepSubmitting      CheckoutStep = "submitting"
	StepAwaitingGateway CheckoutStep = "awaiting_gateway_redirect"
)

// CheckoutSession is the ephemeral, coordinator-owned state of one checkout
// attempt. It exists until the terminal gateway handoff or navigation away;
// every failure path returns Step to the last well-defined state.
type CheckoutSession struct {
	ID        string
	Items     []LineItem
	Address   *Address
	Step      CheckoutStep
	CreatedAt time.Time

	// TotalAmount in paise; the server-provided cart subtotal when the
	// snapshot carried one, otherwise the line-sum.
	TotalAmount int32

	// LastError records why the last transition failed, for display.
	LastError string
}

// ContinuationRecord preserves in-flight checkout/booking input across an
// authentication redirect. Consumed-and-deleted exactly once.
type ContinuationRecord struct {
	FormSnapshot json.RawMessage `json:"form_snapshot"`
	TargetRoute  string          `json:"target_route"`
	SavedAt      time.Time       `json:"saved_at"`
}
