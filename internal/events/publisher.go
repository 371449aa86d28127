// Package events publishes domain events to NATS. Publishing is fire and
// forget; a checkout must never fail because the event bus is down.
package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectOrderCreated      = "padharo.order.created"
	SubjectCheckoutConfirmed = "padharo.checkout.address_confirmed"
)

// OrderCreated is emitted once a gateway order has been created and the
// gateway-id mapping persisted.
type OrderCreated struct {
	InternalOrderID string    `json:"internal_order_id"`
	GatewayOrderID  string    `json:"gateway_order_id"`
	UserID          string    `json:"user_id"`
	TotalAmount     int32     `json:"total_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

// AddressConfirmed is emitted when a serviceable address passes the
// address step of checkout.
type AddressConfirmed struct {
	City      string    `json:"city"`
	ZipCode   string    `json:"zip_code"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher wraps a NATS connection. A nil *Publisher is valid and drops
// every event, so callers never nil-check.
type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// Connect dials the NATS server and returns a publisher. Reconnects are
// handled by the client with unlimited retries.
func Connect(url string, logger *slog.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("padharo"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, logger: logger}, nil
}

// Publish serializes the payload and publishes it on subject. Failures are
// logged and swallowed.
func (p *Publisher) Publish(subject string, payload any) {
	if p == nil || p.conn == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal event",
			"subject", subject,
			"error", err)
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Error("failed to publish event",
			"subject", subject,
			"error", err)
	}
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Drain()
}
