package persist

import (
	"context"

	"github.com/electa-dev/electa/pkg/storage"
)

// CartKey is the storage key of the shopping cart.
const CartKey = "shopCart"

// CartLine is one product in the cart. Quantity is always at least 1.
type CartLine struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price × quantity.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

func cartLineID(l CartLine) string { return l.ID }

func validCartLine(l CartLine) bool { return l.ID != "" && l.Quantity >= 1 }

// CartStore persists the visitor's cart.
type CartStore struct {
	*SetStore[CartLine, string]
	maxQuantity int
}

// NewCartStore creates the cart store for one visitor.
// Adding an id already in the cart increments its quantity by one, up to
// the WithMaxQuantity cap when one is set.
func NewCartStore(local storage.Storage, opts ...Option) *CartStore {
	o := buildOptions(opts)
	c := &CartStore{maxQuantity: o.maxQuantity}
	c.SetStore = NewSetStore(local, CartKey, cartLineID, c.increment, opts...)
	c.SetStore.valid = validCartLine
	return c
}

func (c *CartStore) increment(existing, _ CartLine) (CartLine, bool) {
	if c.maxQuantity > 0 && existing.Quantity >= c.maxQuantity {
		return existing, false
	}
	existing.Quantity++
	return existing, true
}

// AddItem adds one unit of the product to the cart.
func (c *CartStore) AddItem(ctx context.Context, id string, price float64) []CartLine {
	return c.Add(ctx, CartLine{ID: id, Price: price, Quantity: 1})
}

// Count returns the number of units in the cart.
func (c *CartStore) Count(ctx context.Context) int {
	return Count(c.Load(ctx))
}

// Count sums the quantities of lines.
func Count(lines []CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Total sums the subtotals of lines.
func Total(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
