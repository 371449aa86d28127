// Package postal provides best-effort PIN-code reverse lookup for city/state
// autofill. Failures are logged and swallowed by callers; autofill is an
// enhancement, never a blocking dependency.
package postal

import "context"

// Place is the locality a PIN code resolves to.
type Place struct {
	City  string
	State string
}

// Lookup is the postal collaborator interface.
type Lookup interface {
	// Resolve returns the place for a 6-digit PIN code.
	Resolve(ctx context.Context, pinCode string) (*Place, error)
}
