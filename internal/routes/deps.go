// Package routes wires handlers onto the router.
package routes

import (
	"github.com/sawaikart/padharo/internal/handler/storefront"
)

// StorefrontDeps contains the handlers for the customer-facing routes.
type StorefrontDeps struct {
	CartHandler         *storefront.CartHandler
	AddressHandler      *storefront.AddressHandler
	CheckoutHandler     *storefront.CheckoutHandler
	ConfirmationHandler *storefront.OrderConfirmationHandler
}
