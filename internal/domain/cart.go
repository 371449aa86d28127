package domain

// LineItem is one product+variant+quantity entry in a cart or order.
// Owned by the cart synchronizer; UnitPrice is a snapshot cached at add time
// and refreshed from the authoritative cart response after every mutation.
type LineItem struct {
	// LineID is opaque and stable within one cart.
	LineID    string
	ProductID string
	VariantID string

	// Quantity is always a positive integer. A decrement to 0 is removal,
	// never a negative quantity.
	Quantity int32

	// UnitPrice is the cached price snapshot in paise.
	UnitPrice int32
}

// LineSubtotal returns quantity times the unit price snapshot.
func (li LineItem) LineSubtotal() int32 {
	return li.Quantity * li.UnitPrice
}

// CartSnapshot is the full authoritative cart state as last confirmed by the
// remote cart service. The remote cart always returns whole snapshots, never
// deltas; the local copy is provisional until the next refresh.
type CartSnapshot struct {
	Items []LineItem

	// Subtotal in paise. When ServerSubtotal is true this came from the cart
	// service and wins over any client recomputation.
	Subtotal       int32
	ServerSubtotal bool
}

// ItemCount returns the total unit count across lines.
func (s *CartSnapshot) ItemCount() int {
	var n int
	for _, li := range s.Items {
		n += int(li.Quantity)
	}
	return n
}

// Total returns the amount to charge: the server-provided subtotal whenever
// present, otherwise the sum of line snapshots.
func (s *CartSnapshot) Total() int32 {
	if s.ServerSubtotal {
		return s.Subtotal
	}
	var sum int32
	for _, li := range s.Items {
		sum += li.LineSubtotal()
	}
	return sum
}

// FindLine returns the line with the given id, or nil.
func (s *CartSnapshot) FindLine(lineID string) *LineItem {
	for i := range s.Items {
		if s.Items[i].LineID == lineID {
			return &s.Items[i]
		}
	}
	return nil
}

// ContainsProduct reports whether any line references the product.
// Line items are normalized at ingest, so a plain id compare suffices here.
func (s *CartSnapshot) ContainsProduct(productID string) bool {
	for _, li := range s.Items {
		if li.ProductID == productID {
			return true
		}
	}
	return false
}
