package domain

import "strings"

// Address is a delivery address. Created via the address book service when
// authenticated, or held only as a transient guest address when not.
type Address struct {
	ID string

	// IsTemporary marks a guest address that was never persisted.
	IsTemporary bool

	Label   string
	Name    string
	Phone   string // 10 digits
	Street  string
	City    string
	State   string
	ZipCode string
	Country string

	// IsDefault is read, never enforced, by the checkout core. At most one
	// address in a user's set carries it.
	IsDefault bool
}

// ServiceabilityVerdict is derived from the selected address, never stored.
// It must be recomputed every time the selection changes.
type ServiceabilityVerdict struct {
	Serviceable bool
	Reason      string
}

// Serviceable reports whether the address city falls inside the supported
// delivery region. Pure function: case-insensitive, trimmed compare.
func Serviceable(addr Address, region string) ServiceabilityVerdict {
	if strings.EqualFold(strings.TrimSpace(addr.City), strings.TrimSpace(region)) {
		return ServiceabilityVerdict{Serviceable: true}
	}
	return ServiceabilityVerdict{
		Serviceable: false,
		Reason:      "Delivery is currently available only in " + strings.TrimSpace(region),
	}
}
