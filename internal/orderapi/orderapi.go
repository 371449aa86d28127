// Package orderapi talks to the order service, which owns order records and
// issues payment-gateway session tokens. The checkout coordinator calls
// CreateOrder exactly once per user submit.
package orderapi

import (
	"context"

	"github.com/sawaikart/padharo/internal/domain"
)

// CreateOrderParams is the order-creation request.
type CreateOrderParams struct {
	UserID            string
	Items             []domain.LineItem
	ShippingAddressID string

	// TotalAmount is sent for server-side cross-checking only; the order
	// service reprices authoritatively.
	TotalAmount int32

	// IdempotencyKey guards against retried submissions creating duplicates.
	IdempotencyKey string
}

// CreateOrderResult is the order-creation response. A nominally-successful
// response missing InternalOrderID or PaymentSessionToken is not success;
// the coordinator validates required fields.
type CreateOrderResult struct {
	InternalOrderID     string
	GatewayOrderID      string
	PaymentSessionToken string
}

// Client is the order service collaborator interface.
type Client interface {
	// CreateOrder submits the order and returns the payment session handle.
	CreateOrder(ctx context.Context, params CreateOrderParams) (*CreateOrderResult, error)

	// GetOrder fetches the authoritative order record by internal id.
	GetOrder(ctx context.Context, internalOrderID string) (*domain.OrderRecord, error)
}
