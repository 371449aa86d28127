// Package addressbook talks to the address book service and validates
// address payloads before they leave the process. Guest addresses are never
// persisted here; they live only in the checkout session.
package addressbook

import (
	"context"

	"github.com/sawaikart/padharo/internal/domain"
)

// Client is the address book collaborator interface.
type Client interface {
	// List returns the user's saved addresses.
	List(ctx context.Context, userID string) ([]domain.Address, error)

	// Upsert creates the address when its ID is empty, updates it otherwise,
	// and returns the stored record.
	Upsert(ctx context.Context, userID string, addr domain.Address) (*domain.Address, error)

	// Delete removes a saved address.
	Delete(ctx context.Context, userID, addressID string) error
}
