package domain

// Variant is a purchasable option of a product with its own price and stock.
// Read-only from the checkout core's point of view.
type Variant struct {
	ID        string
	ProductID string

	// PriceMRP is the maximum retail price in paise.
	PriceMRP int32

	// SellingPrice is the charged price in paise. A SellingPrice above
	// PriceMRP is tolerated and treated as no discount.
	SellingPrice int32

	Stock             int32
	DisplayAttributes map[string]string
}

// DiscountPaise returns the per-unit discount, or 0 when SellingPrice
// exceeds PriceMRP.
func (v Variant) DiscountPaise() int32 {
	if v.SellingPrice > v.PriceMRP {
		return 0
	}
	return v.PriceMRP - v.SellingPrice
}

// Product is a catalog product with its purchasable variants.
type Product struct {
	ID       string
	Name     string
	Variants []Variant
}
