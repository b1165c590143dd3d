package controllers

import (
	"fmt"

	"storefront/models"
)

// StockError rejects a cart change that would exceed what the catalog can
// supply. The cart is left untouched.
type StockError struct {
	Product string
	Limit   int
}

func (e *StockError) Error() string {
	if e.Limit < 1 {
		return "This item is out of stock!"
	}
	return fmt.Sprintf("You already have the maximum available quantity (%d) in your cart!", e.Limit)
}

// checkStock reports whether a cart holding current units of p may take extra
// more. Only increases are checked by callers; lowering a quantity is always
// allowed.
func checkStock(p models.Product, current, extra, defaultLimit int) error {
	limit := p.StockLimit(defaultLimit)
	if limit < 1 || extra > limit-current {
		return &StockError{Product: p.DocumentID, Limit: limit}
	}
	return nil
}
