package cart

import "math"

// Command is one of AddItem, RemoveItem, SetQuantity or Clear.
type Command interface {
	command()
}

// AddItem adds Quantity units of Product, merging into an existing entry.
// A merged quantity saturates at math.MaxInt.
type AddItem struct {
	Product  Product
	Quantity int
}

// RemoveItem drops the entry for Key. Absent keys are ignored.
type RemoveItem struct {
	Key string
}

// SetQuantity replaces the quantity of Key. Zero or less removes the entry.
type SetQuantity struct {
	Key      string
	Quantity int
}

// Clear empties the cart.
type Clear struct{}

func (AddItem) command()     {}
func (RemoveItem) command()  {}
func (SetQuantity) command() {}
func (Clear) command()       {}

// Apply returns the state that results from running cmd against s. It never
// modifies s and never fails; the returned total always matches its entries.
func Apply(s State, cmd Command) State {
	switch c := cmd.(type) {
	case AddItem:
		return addItem(s, c)
	case RemoveItem:
		return removeItem(s, c.Key)
	case SetQuantity:
		if c.Quantity <= 0 {
			return removeItem(s, c.Key)
		}
		return setQuantity(s, c)
	case Clear:
		return Empty()
	default:
		return s
	}
}

// Replay folds cmds over the empty cart.
func Replay(cmds ...Command) State {
	s := Empty()
	for _, cmd := range cmds {
		s = Apply(s, cmd)
	}
	return s
}

func addItem(s State, c AddItem) State {
	i := s.index(c.Product.Key)
	if i < 0 {
		if c.Quantity <= 0 {
			return s
		}
		entries := make([]Entry, len(s.Entries), len(s.Entries)+1)
		copy(entries, s.Entries)
		return withEntries(append(entries, Entry{Product: c.Product, Quantity: c.Quantity}))
	}

	existing := s.Entries[i].Quantity
	if c.Quantity > 0 && c.Quantity > math.MaxInt-existing {
		c.Quantity = math.MaxInt - existing
	}
	quantity := existing + c.Quantity
	if quantity <= 0 {
		return removeItem(s, c.Product.Key)
	}
	entries := cloneEntries(s.Entries)
	entries[i].Quantity = quantity
	return withEntries(entries)
}

func removeItem(s State, key string) State {
	i := s.index(key)
	if i < 0 {
		return s
	}
	entries := make([]Entry, 0, len(s.Entries)-1)
	entries = append(entries, s.Entries[:i]...)
	entries = append(entries, s.Entries[i+1:]...)
	return withEntries(entries)
}

func setQuantity(s State, c SetQuantity) State {
	i := s.index(c.Key)
	if i < 0 {
		return s
	}
	entries := cloneEntries(s.Entries)
	entries[i].Quantity = c.Quantity
	return withEntries(entries)
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
