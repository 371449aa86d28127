// Package gateway defines the payment gateway port. The gateway is opaque:
// given a session token it takes over the user's browser on its own hosted
// page, performs payment, and redirects back carrying only its own order id.
package gateway

import "context"

// LaunchParams describes one gateway handoff.
type LaunchParams struct {
	// SessionToken is the single-use token issued by the order service.
	SessionToken string

	// ReturnURL is where the gateway redirects after payment, in the same
	// tab. The gateway appends its own order id as a query parameter.
	ReturnURL string
}

// Handoff is the result of a launch: the hosted-page URL the client must be
// redirected to. No further client-side state exists until the return trip.
type Handoff struct {
	RedirectURL string
}

// Gateway is the payment gateway port.
type Gateway interface {
	// Launch resolves the session token into a hosted checkout redirect.
	Launch(ctx context.Context, params LaunchParams) (*Handoff, error)
}
