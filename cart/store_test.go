package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDispatchBumpsVersion(t *testing.T) {
	s := NewStore()
	st, v := s.Snapshot()
	assert.Empty(t, st.Entries)
	assert.Equal(t, uint64(0), v)

	s.Add(product("sword-1", 100), 2)
	s.Add(product("mask-1", 50), 1)
	st = s.SetQuantity("sword-1", 5)
	assertTotal(t, "550", st)

	_, v = s.Snapshot()
	assert.Equal(t, uint64(3), v)

	st = s.Remove("mask-1")
	assertTotal(t, "500", st)
	st = s.Clear()
	assert.Empty(t, st.Entries)
}

func TestStoreDispatchAtRejectsStaleVersion(t *testing.T) {
	s := NewStore()
	_, v := s.Snapshot()

	st, v2, err := s.DispatchAt(v, AddItem{Product: product("a", 10), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, v+1, v2)
	assertTotal(t, "10", st)

	// a second tab still holding the old version
	st, v3, err := s.DispatchAt(v, AddItem{Product: product("b", 10), Quantity: 1})
	assert.ErrorIs(t, err, ErrStaleVersion)
	assert.Equal(t, v2, v3)
	assert.Equal(t, 0, st.Quantity("b"))
}

func TestStoreSerialisesConcurrentWriters(t *testing.T) {
	s := NewStore()
	p := product("a", 3)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(p, 1)
		}()
	}
	wg.Wait()

	st, v := s.Snapshot()
	assert.Equal(t, 50, st.Quantity("a"))
	assertTotal(t, "150", st)
	assert.Equal(t, uint64(50), v)
}
