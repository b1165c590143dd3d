package cart

import (
	"errors"
	"sync"
)

// ErrStaleVersion is returned by DispatchAt when the cart changed since the
// caller last read it.
var ErrStaleVersion = errors.New("cart was modified concurrently")

// Store owns the cart of one session. All commands are serialised, and each
// dispatched command bumps the version.
type Store struct {
	mu      sync.Mutex
	state   State
	version uint64
}

// NewStore creates an empty cart at version 0.
func NewStore() *Store {
	return &Store{state: Empty()}
}

// Snapshot returns the current state and its version.
func (s *Store) Snapshot() (State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.version
}

// Dispatch applies cmd unconditionally.
func (s *Store) Dispatch(cmd Command) (State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Apply(s.state, cmd)
	s.version++
	return s.state, s.version
}

// DispatchAt applies cmd only if the store is still at version expected.
func (s *Store) DispatchAt(expected uint64, cmd Command) (State, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != expected {
		return s.state, s.version, ErrStaleVersion
	}
	s.state = Apply(s.state, cmd)
	s.version++
	return s.state, s.version, nil
}

// Add dispatches AddItem.
func (s *Store) Add(p Product, quantity int) State {
	st, _ := s.Dispatch(AddItem{Product: p, Quantity: quantity})
	return st
}

// Remove dispatches RemoveItem.
func (s *Store) Remove(key string) State {
	st, _ := s.Dispatch(RemoveItem{Key: key})
	return st
}

// SetQuantity dispatches SetQuantity.
func (s *Store) SetQuantity(key string, quantity int) State {
	st, _ := s.Dispatch(SetQuantity{Key: key, Quantity: quantity})
	return st
}

// Clear dispatches Clear.
func (s *Store) Clear() State {
	st, _ := s.Dispatch(Clear{})
	return st
}
