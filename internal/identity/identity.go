// Package identity resolves the current actor. The identity provider is out
// of scope beyond a single "is authenticated + user id" query; the resolved
// actor is passed explicitly through the request context.
package identity

import "context"

// Resolution is the provider's answer for one token.
type Resolution struct {
	UserID        string
	Authenticated bool
}

// Provider answers the boolean+id query for a session token.
type Provider interface {
	Resolve(ctx context.Context, token string) (Resolution, error)
}
