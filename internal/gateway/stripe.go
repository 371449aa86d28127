package gateway

import (
	"context"
	"log/slog"

	"github.com/stripe/stripe-go/v83"
	checkoutsession "github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/sawaikart/padharo/internal/domain"
)

// StripeGateway implements Gateway over Stripe hosted checkout. The payment
// session token issued by the order service is a Stripe Checkout Session id;
// launching resolves it to the session's hosted URL.
type StripeGateway struct {
	logger *slog.Logger
}

// NewStripeGateway configures the Stripe SDK and returns the gateway.
func NewStripeGateway(apiKey string, logger *slog.Logger) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{logger: logger}
}

func (g *StripeGateway) Launch(ctx context.Context, params LaunchParams) (*Handoff, error) {
	if params.SessionToken == "" {
		return nil, domain.WrapError(domain.ErrPaymentSessionUnavailable, domain.EPAYMENT, "gateway.launch", "empty session token")
	}

	// The return URL is baked into the session by the order service at
	// creation time; Stripe ignores it at launch.
	sess, err := checkoutsession.Get(params.SessionToken, &stripe.CheckoutSessionParams{})
	if err != nil {
		g.logger.Error("failed to resolve checkout session",
			"error", err)
		return nil, domain.WrapError(err, domain.EPAYMENT, "gateway.launch", "payment session could not be started")
	}

	if sess.URL == "" {
		return nil, domain.WrapError(domain.ErrPaymentSessionUnavailable, domain.EPAYMENT, "gateway.launch", "session has no hosted page")
	}

	g.logger.Info("payment session launched",
		"session_id", sess.ID)

	return &Handoff{RedirectURL: sess.URL}, nil
}
