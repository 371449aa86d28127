// Package middleware holds the HTTP middleware chain: request ids,
// request-scoped logging, identity resolution, and Prometheus metrics.
package middleware

// contextKey is a private type for context values set by this package.
type contextKey string
