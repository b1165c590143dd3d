package cart

import "github.com/shopspring/decimal"

// Product is the slice of a catalog product the cart needs for arithmetic.
type Product struct {
	Key   string          `json:"documentId"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Entry pairs a product with a positive quantity.
type Entry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price * quantity for the entry.
func (e Entry) Subtotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// State is an ordered list of entries, unique by product key, and the total
// derived from them.
type State struct {
	Entries []Entry         `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

// Empty returns a cart with no entries and a zero total.
func Empty() State {
	return State{Entries: []Entry{}, Total: decimal.Zero}
}

// Quantity returns how many units of key are in the cart, 0 if none.
func (s State) Quantity(key string) int {
	if i := s.index(key); i >= 0 {
		return s.Entries[i].Quantity
	}
	return 0
}

// Count returns the number of units across all entries.
func (s State) Count() int {
	n := 0
	for _, e := range s.Entries {
		n += e.Quantity
	}
	return n
}

func (s State) index(key string) int {
	for i, e := range s.Entries {
		if e.Product.Key == key {
			return i
		}
	}
	return -1
}

func calculateTotal(entries []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

func withEntries(entries []Entry) State {
	return State{Entries: entries, Total: calculateTotal(entries)}
}
