package session

import (
	"sync"
	"time"

	"kisansetu/internal/cart"
	"kisansetu/internal/checkout"
)

// Session is one shopper's state: a cart and at most one checkout in progress.
// Access goes through Registry.With, which holds mu for the duration of the call.
type Session struct {
	mu          sync.Mutex
	id          string
	cart        *cart.Ledger
	checkout    *checkout.Session
	newCheckout func(id string, c checkout.Cart) *checkout.Session
	created     time.Time
	lastSeen    time.Time
	seq         int
}

func (s *Session) ID() string { return s.id }

func (s *Session) Cart() *cart.Ledger { return s.cart }

// Checkout returns the checkout in progress, or nil.
func (s *Session) Checkout() *checkout.Session { return s.checkout }

// BeginCheckout starts a fresh checkout over the cart, replacing any previous one.
func (s *Session) BeginCheckout() *checkout.Session {
	s.seq++
	s.checkout = s.newCheckout(checkoutID(s.id, s.seq), s.cart)
	return s.checkout
}

// AbandonCheckout drops the checkout in progress. The cart is left as is.
func (s *Session) AbandonCheckout() {
	s.checkout = nil
}

func (s *Session) CreatedAt() time.Time { return s.created }
