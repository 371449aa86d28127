package service

import (
	"log/slog"
	"sync"

	"github.com/sawaikart/padharo/internal/addressbook"
	"github.com/sawaikart/padharo/internal/cartapi"
	"github.com/sawaikart/padharo/internal/domain"
	"github.com/sawaikart/padharo/internal/postal"
	"github.com/sawaikart/padharo/internal/telemetry"
)

// Checkout bundles one actor's in-process state: the cart synchronizer, the
// address selector, and the current checkout session if one is open.
type Checkout struct {
	Cart      *CartSynchronizer
	Addresses *AddressSelector

	mu      sync.Mutex
	session *domain.CheckoutSession
}

// Session returns the open checkout session, or nil.
func (c *Checkout) Session() *domain.CheckoutSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// SetSession installs or clears the open checkout session.
func (c *Checkout) SetSession(sess *domain.CheckoutSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = sess
}

// Registry hands out the per-actor Checkout bundle, keyed by the stable
// actor key. Bundles are in-process caches; losing one on restart only
// costs a refresh against the backend services.
type Registry struct {
	carts   cartapi.Client
	book    addressbook.Client
	postal  postal.Lookup
	region  string
	logger  *slog.Logger
	metrics *telemetry.BusinessMetrics

	mu     sync.Mutex
	byKey  map[string]*Checkout
	owners map[string]string // actor key -> user id the selector was built for
}

// NewRegistry creates the registry.
func NewRegistry(carts cartapi.Client, book addressbook.Client, lookup postal.Lookup, region string, logger *slog.Logger, metrics *telemetry.BusinessMetrics) *Registry {
	return &Registry{
		carts:   carts,
		book:    book,
		postal:  lookup,
		region:  region,
		logger:  logger,
		metrics: metrics,
		byKey:   make(map[string]*Checkout),
		owners:  make(map[string]string),
	}
}

// For returns the actor's bundle, creating it on first sight. When the same
// key reappears with a different user id (login or logout happened) the
// address selector is rebuilt for the new identity; the cart synchronizer
// survives, since the cart key does not change.
func (r *Registry) For(actor domain.Actor) *Checkout {
	r.mu.Lock()
	defer r.mu.Unlock()

	bundle, ok := r.byKey[actor.Key]
	if !ok {
		bundle = &Checkout{
			Cart:      NewCartSynchronizer(r.carts, actor.Key, r.logger, r.metrics),
			Addresses: NewAddressSelector(r.book, r.postal, r.region, actor.UserID, r.logger),
		}
		r.byKey[actor.Key] = bundle
		r.owners[actor.Key] = actor.UserID
		return bundle
	}

	if r.owners[actor.Key] != actor.UserID {
		bundle.Addresses = NewAddressSelector(r.book, r.postal, r.region, actor.UserID, r.logger)
		r.owners[actor.Key] = actor.UserID
	}
	return bundle
}
