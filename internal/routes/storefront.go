package routes

import (
	"github.com/sawaikart/padharo/internal/router"
)

// RegisterStorefrontRoutes registers the customer-facing routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Shopping cart
	r.Get("/cart", deps.CartHandler.View)
	r.Post("/cart/items", deps.CartHandler.Add)
	r.Post("/cart/items/{lineID}/increase", deps.CartHandler.Increase)
	r.Post("/cart/items/{lineID}/decrease", deps.CartHandler.Decrease)
	r.Delete("/cart/items/{lineID}", deps.CartHandler.Remove)
	r.Delete("/cart", deps.CartHandler.Clear)

	// Address book and serviceability
	r.Get("/addresses", deps.AddressHandler.List)
	r.Post("/addresses", deps.AddressHandler.Upsert)
	r.Post("/addresses/{id}", deps.AddressHandler.Upsert)
	r.Post("/addresses/{id}/select", deps.AddressHandler.Select)
	r.Delete("/addresses/{id}", deps.AddressHandler.Delete)
	r.Get("/addresses/serviceability", deps.AddressHandler.Serviceability)
	r.Post("/addresses/validate-field", deps.AddressHandler.ValidateField)

	// Checkout flow
	r.Post("/checkout/confirm-address", deps.CheckoutHandler.ConfirmAddress)
	r.Post("/checkout/place-order", deps.CheckoutHandler.PlaceOrder)
	r.Get("/checkout/continuation", deps.CheckoutHandler.Continuation)

	// Gateway return
	r.Get("/orders/confirmation", deps.ConfirmationHandler.ServeHTTP)
}
