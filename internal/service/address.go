package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sawaikart/padharo/internal/addressbook"
	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/postal"
)

// AddressSelector manages one actor's delivery address selection and the
// serviceability gate derived from it. The verdict is recomputed on every
// selection change and never stored anywhere durable.
type AddressSelector struct {
	book   addressbook.Client
	postal postal.Lookup
	region string
	userID string
	logger *slog.Logger

	mu       sync.Mutex
	selected *domain.Address
	verdict  domain.ServiceabilityVerdict
}

// NewAddressSelector creates a selector for one user. userID is empty for
// guests, whose addresses stay transient.
func NewAddressSelector(book addressbook.Client, lookup postal.Lookup, region, userID string, logger *slog.Logger) *AddressSelector {
	return &AddressSelector{
		book:   book,
		postal: lookup,
		region: region,
		userID: userID,
		logger: logger,
	}
}

// List returns the user's saved addresses. Guests have none.
func (s *AddressSelector) List(ctx context.Context) ([]domain.Address, error) {
	if s.userID == "" {
		return nil, nil
	}
	addrs, err := s.book.List(ctx, s.userID)
	if err != nil {
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "address.list", "Could not load your addresses. Please try again.")
	}
	return addrs, nil
}

// Select picks a saved address by id and recomputes serviceability
// synchronously, so the verdict shown is never stale relative to the
// selection.
func (s *AddressSelector) Select(ctx context.Context, addressID string) (domain.ServiceabilityVerdict, error) {
	addrs, err := s.List(ctx)
	if err != nil {
		return domain.ServiceabilityVerdict{}, err
	}

	for i := range addrs {
		if addrs[i].ID == addressID {
			return s.setSelection(addrs[i]), nil
		}
	}
	return domain.ServiceabilityVerdict{}, domain.ErrAddressNotFound
}

// CreateOrUpdate validates the payload, autofills city/state from the PIN
// code on a best-effort basis, and persists through the address book. For a
// guest the address is held transiently instead. The stored address becomes
// the selection.
func (s *AddressSelector) CreateOrUpdate(ctx context.Context, payload addressbook.AddressPayload) (*domain.Address, error) {
	s.autofill(ctx, &payload)

	if err := addressbook.ValidatePayload(payload); err != nil {
		return nil, err
	}

	if s.userID == "" {
		addr := payload.ToAddress()
		addr.IsTemporary = true
		s.setSelection(addr)
		out := addr
		return &out, nil
	}

	stored, err := s.book.Upsert(ctx, s.userID, payload.ToAddress())
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, err
		}
		return nil, domain.WrapError(err, domain.EUNAVAILABLE, "address.save", "Could not save your address. Please try again.")
	}

	s.setSelection(*stored)
	return stored, nil
}

// SetGuestAddress holds a transient address for an unauthenticated actor.
// Nothing is persisted; the address lives only in this selector.
func (s *AddressSelector) SetGuestAddress(payload addressbook.AddressPayload) (*domain.Address, error) {
	if err := addressbook.ValidatePayload(payload); err != nil {
		return nil, err
	}
	addr := payload.ToAddress()
	addr.IsTemporary = true
	s.setSelection(addr)
	out := addr
	return &out, nil
}

// Delete removes a saved address. Deleting the selected address clears the
// selection and its verdict.
func (s *AddressSelector) Delete(ctx context.Context, addressID string) error {
	if s.userID == "" {
		return domain.ErrAddressNotFound
	}

	if err := s.book.Delete(ctx, s.userID, addressID); err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return err
		}
		return domain.WrapError(err, domain.EUNAVAILABLE, "address.delete", "Could not delete the address. Please try again.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != nil && s.selected.ID == addressID {
		s.selected = nil
		s.verdict = domain.ServiceabilityVerdict{}
	}
	return nil
}

// Selected returns a copy of the currently selected address, or nil.
func (s *AddressSelector) Selected() *domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	out := *s.selected
	return &out
}

// CurrentServiceability returns the verdict for the current selection.
func (s *AddressSelector) CurrentServiceability() domain.ServiceabilityVerdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verdict
}

func (s *AddressSelector) setSelection(addr domain.Address) domain.ServiceabilityVerdict {
	verdict := domain.Serviceable(addr, s.region)

	s.mu.Lock()
	s.selected = &addr
	s.verdict = verdict
	s.mu.Unlock()

	return verdict
}

// autofill resolves a complete PIN code to its locality and merges the
// result into empty city/state fields only. Lookup failures are logged and
// swallowed; autofill never blocks address entry.
func (s *AddressSelector) autofill(ctx context.Context, payload *addressbook.AddressPayload) {
	if len(payload.ZipCode) != 6 {
		return
	}
	if payload.City != "" && payload.State != "" {
		return
	}
	if err := addressbook.ValidateDigits("ZipCode", payload.ZipCode); err != nil {
		return
	}

	place, err := s.postal.Resolve(ctx, payload.ZipCode)
	if err != nil {
		s.logger.Debug("pin code lookup failed",
			"zip_code", payload.ZipCode,
			"error", err)
		return
	}

	if payload.City == "" {
		payload.City = place.City
	}
	if payload.State == "" {
		payload.State = place.State
	}
}
