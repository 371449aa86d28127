package cartapi

import (
	"encoding/json"

	"github.com/sawaikart/padharo/internal/domain"
)

// objectRef accepts either a bare id string or a populated object carrying
// an id field. The cart service's list and mutate paths disagree on which
// shape they return.
type objectRef struct {
	ID string
}

func (r *objectRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		return nil
	}

	var obj struct {
		ID    string `json:"id"`
		AltID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.ID != "" {
		r.ID = obj.ID
	} else {
		r.ID = obj.AltID
	}
	return nil
}

// cartResponse is the wire shape of every cart read and mutation response.
type cartResponse struct {
	LineItems []lineItemResponse `json:"lineItems"`
	Subtotal  *int32             `json:"subtotal"`
}

type lineItemResponse struct {
	ID       string    `json:"id"`
	Product  objectRef `json:"product"`
	Variant  objectRef `json:"variant"`
	Quantity int32     `json:"quantity"`
	Price    int32     `json:"price"`
}

// toSnapshot normalizes the wire cart into the canonical domain shape.
func (c *cartResponse) toSnapshot() *domain.CartSnapshot {
	snap := &domain.CartSnapshot{
		Items: make([]domain.LineItem, 0, len(c.LineItems)),
	}
	for _, li := range c.LineItems {
		snap.Items = append(snap.Items, domain.LineItem{
			LineID:    li.ID,
			ProductID: li.Product.ID,
			VariantID: li.Variant.ID,
			Quantity:  li.Quantity,
			UnitPrice: li.Price,
		})
	}
	if c.Subtotal != nil {
		snap.Subtotal = *c.Subtotal
		snap.ServerSubtotal = true
	}
	return snap
}
