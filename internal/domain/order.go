package domain

import "time"

// OrderStatus is the order service's authoritative fulfillment state.
// The checkout core never infers it from the payment gateway's own signal;
// payment success and fulfillment are reconciled server-side.
type OrderStatus string

const (
	OrderPending        OrderStatus = "Pending"
	OrderProcessing     OrderStatus = "Processing"
	OrderShipped        OrderStatus = "Shipped"
	OrderOutForDelivery OrderStatus = "Out for Delivery"
	OrderDelivered      OrderStatus = "Delivered"
	OrderCancelled      OrderStatus = "Cancelled"
)

// PaymentStatus is a displayed sub-status; it never gates whether the
// confirmation view is shown.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentPending PaymentStatus = "PENDING"
)

// OrderRecord is created once by the order service at submission time.
// InternalOrderID and GatewayOrderID are distinct identifier spaces bridged
// through the durable order map, since the gateway redirect carries only the
// gateway's own id.
type OrderRecord struct {
	InternalOrderID string
	GatewayOrderID  string
	OrderStatus     OrderStatus
	PaymentStatus   PaymentStatus
	Items           []LineItem
	ShippingAddrRef string
	ItemsPrice      int32
	TaxPrice        int32
	TotalPrice      int32
	CreatedAt       time.Time
}

// ConfirmationView is the terminal state rendered after the gateway redirect
// has been reconciled back to an internal order.
type ConfirmationView struct {
	Order OrderRecord

	// PaymentNote carries the payment sub-status message ("payment pending",
	// "payment failed") shown on the confirmation, not a different screen.
	PaymentNote string
}
