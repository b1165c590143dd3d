package models

import (
	"github.com/shopspring/decimal"

	"storefront/cart"
)

// CartItemRequest is the body of add / update cart calls
type CartItemRequest struct {
	DocumentID string `json:"documentId"`
	Quantity   *int   `json:"quantity,omitempty"`
}

// CartLine is one entry of a cart as returned to clients
type CartLine struct {
	Product  cart.Product    `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartView represents the session's shopping cart
type CartView struct {
	Items   []CartLine      `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Version uint64          `json:"version"`
}

// NewCartView renders a cart state at a given version.
func NewCartView(s cart.State, version uint64) CartView {
	lines := make([]CartLine, 0, len(s.Entries))
	for _, e := range s.Entries {
		lines = append(lines, CartLine{Product: e.Product, Quantity: e.Quantity, Subtotal: e.Subtotal()})
	}
	return CartView{Items: lines, Total: s.Total, Count: s.Count(), Version: version}
}
