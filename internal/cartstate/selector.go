package cartstate

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/pkg/storefrontclient"
)

// Selector is the quantity picker shown for a single product before it is
// added to the cart. It is not safe for concurrent use.
type Selector struct {
	product  *storefrontclient.Product
	quantity int
}

// Select opens the selector for p with quantity 1.
func (s *Selector) Select(p storefrontclient.Product) {
	s.product = &p
	s.quantity = 1
}

func (s *Selector) IsOpen() bool { return s.product != nil }

func (s *Selector) Product() (storefrontclient.Product, bool) {
	if s.product == nil {
		return storefrontclient.Product{}, false
	}
	return *s.product, true
}

func (s *Selector) Quantity() int { return s.quantity }

func (s *Selector) Increment() {
	if s.product != nil {
		s.quantity++
	}
}

// Decrement never goes below 1.
func (s *Selector) Decrement() {
	if s.quantity > 1 {
		s.quantity--
	}
}

func (s *Selector) Subtotal() decimal.Decimal {
	if s.product == nil {
		return decimal.Zero
	}
	return s.product.Price.Mul(decimal.NewFromInt(int64(s.quantity)))
}

// Confirm adds the selection to cart and closes the selector. It reports
// false when nothing was selected.
func (s *Selector) Confirm(cart Cart) bool {
	if s.product == nil {
		return false
	}
	cart.AddItem(*s.product, s.quantity)
	s.Close()
	return true
}

func (s *Selector) Close() {
	s.product = nil
	s.quantity = 0
}
