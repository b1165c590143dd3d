package cart

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(key string, price int64) Product {
	return Product{Key: key, Name: key, Price: decimal.NewFromInt(price)}
}

func assertTotal(t *testing.T, want string, s State) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(s.Total), "total = %s, want %s", s.Total, want)
}

func assertConsistent(t *testing.T, s State) {
	t.Helper()
	sum := decimal.Zero
	seen := map[string]bool{}
	for _, e := range s.Entries {
		assert.Greater(t, e.Quantity, 0, "entry %s has non-positive quantity", e.Product.Key)
		assert.False(t, seen[e.Product.Key], "duplicate entry %s", e.Product.Key)
		seen[e.Product.Key] = true
		sum = sum.Add(e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	assert.True(t, sum.Equal(s.Total), "total %s drifted from entries %s", s.Total, sum)
}

func TestScenario(t *testing.T) {
	sword := product("sword-1", 100)
	mask := product("mask-1", 50)

	s := Empty()
	s = Apply(s, AddItem{Product: sword, Quantity: 2})
	require.Len(t, s.Entries, 1)
	assert.Equal(t, 2, s.Entries[0].Quantity)
	assertTotal(t, "200", s)

	s = Apply(s, AddItem{Product: mask, Quantity: 1})
	assertTotal(t, "250", s)

	s = Apply(s, SetQuantity{Key: "sword-1", Quantity: 5})
	assertTotal(t, "550", s)

	s = Apply(s, RemoveItem{Key: "mask-1"})
	assertTotal(t, "500", s)

	s = Apply(s, Clear{})
	assertTotal(t, "0", s)
	assert.Empty(t, s.Entries)
}

func TestAddMergesQuantity(t *testing.T) {
	p := product("p", 10)
	s := Replay(AddItem{Product: p, Quantity: 3}, AddItem{Product: p, Quantity: 4})

	require.Len(t, s.Entries, 1)
	assert.Equal(t, 7, s.Entries[0].Quantity)
	assertTotal(t, "70", s)
}

func TestAddSaturatesInsteadOfWrapping(t *testing.T) {
	p := product("p", 1)
	s := Replay(AddItem{Product: p, Quantity: 1}, AddItem{Product: p, Quantity: math.MaxInt})

	require.Len(t, s.Entries, 1)
	assert.Equal(t, math.MaxInt, s.Entries[0].Quantity)
	assertConsistent(t, s)

	s = Apply(s, AddItem{Product: p, Quantity: 5})
	require.Len(t, s.Entries, 1)
	assert.Equal(t, math.MaxInt, s.Entries[0].Quantity)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := Replay(
		AddItem{Product: product("a", 1), Quantity: 1},
		AddItem{Product: product("b", 1), Quantity: 1},
		AddItem{Product: product("a", 1), Quantity: 1},
	)
	require.Len(t, s.Entries, 2)
	assert.Equal(t, "a", s.Entries[0].Product.Key)
	assert.Equal(t, "b", s.Entries[1].Product.Key)
}

func TestAddNonPositiveNeverCreatesEntry(t *testing.T) {
	s := Replay(AddItem{Product: product("p", 10), Quantity: 0})
	assert.Empty(t, s.Entries)

	s = Replay(
		AddItem{Product: product("p", 10), Quantity: 2},
		AddItem{Product: product("p", 10), Quantity: -2},
	)
	assert.Empty(t, s.Entries)
	assertTotal(t, "0", s)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	base := Replay(
		AddItem{Product: product("a", 3), Quantity: 2},
		AddItem{Product: product("b", 5), Quantity: 1},
	)

	viaSet := Apply(base, SetQuantity{Key: "a", Quantity: 0})
	viaRemove := Apply(base, RemoveItem{Key: "a"})

	assert.Equal(t, 0, viaSet.Quantity("a"))
	assert.Equal(t, viaRemove.Entries, viaSet.Entries)
	assert.True(t, viaRemove.Total.Equal(viaSet.Total))
}

func TestSetQuantityAbsentKeyIsNoop(t *testing.T) {
	base := Replay(AddItem{Product: product("a", 3), Quantity: 2})
	assert.Equal(t, base, Apply(base, SetQuantity{Key: "missing", Quantity: 4}))
}

func TestRemoveAbsentKeyIsNoop(t *testing.T) {
	base := Replay(AddItem{Product: product("a", 3), Quantity: 2})
	assert.Equal(t, base, Apply(base, RemoveItem{Key: "missing"}))
	assert.Equal(t, Empty(), Apply(Empty(), RemoveItem{Key: "missing"}))
}

func TestClearFromAnyState(t *testing.T) {
	states := []State{
		Empty(),
		Replay(AddItem{Product: product("a", 3), Quantity: 2}),
		Replay(
			AddItem{Product: product("a", 3), Quantity: 2},
			AddItem{Product: product("b", 7), Quantity: 9},
		),
	}
	for _, s := range states {
		cleared := Apply(s, Clear{})
		assert.Empty(t, cleared.Entries)
		assertTotal(t, "0", cleared)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base := Replay(
		AddItem{Product: product("a", 3), Quantity: 2},
		AddItem{Product: product("b", 5), Quantity: 1},
	)
	before := cloneEntries(base.Entries)

	Apply(base, AddItem{Product: product("a", 3), Quantity: 1})
	Apply(base, SetQuantity{Key: "b", Quantity: 8})
	Apply(base, RemoveItem{Key: "a"})

	assert.Equal(t, before, base.Entries)
}

func TestTotalCommutes(t *testing.T) {
	a, b := product("a", 12), product("b", 30)
	ab := Replay(AddItem{Product: a, Quantity: 1}, AddItem{Product: b, Quantity: 1})
	ba := Replay(AddItem{Product: b, Quantity: 1}, AddItem{Product: a, Quantity: 1})
	assert.True(t, ab.Total.Equal(ba.Total))
}

func TestFractionalPrices(t *testing.T) {
	p := Product{Key: "tsuba", Price: decimal.RequireFromString("19.99")}
	s := Replay(AddItem{Product: p, Quantity: 3})
	assertTotal(t, "59.97", s)
}

func randomCommands(r *rand.Rand, n int) []Command {
	catalog := []Product{
		product("sword", 100),
		product("mask", 50),
		{Key: "charm", Price: decimal.RequireFromString("4.25")},
		product("haori", 75),
	}
	cmds := make([]Command, 0, n)
	for i := 0; i < n; i++ {
		p := catalog[r.Intn(len(catalog))]
		switch r.Intn(10) {
		case 0:
			cmds = append(cmds, Clear{})
		case 1, 2:
			cmds = append(cmds, RemoveItem{Key: p.Key})
		case 3, 4, 5:
			cmds = append(cmds, SetQuantity{Key: p.Key, Quantity: r.Intn(6)})
		default:
			cmds = append(cmds, AddItem{Product: p, Quantity: 1 + r.Intn(4)})
		}
	}
	return cmds
}

func TestRandomSequencesKeepInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for run := 0; run < 200; run++ {
		s := Empty()
		for _, cmd := range randomCommands(r, 40) {
			s = Apply(s, cmd)
			assertConsistent(t, s)
		}
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		cmds := randomCommands(r, 30)
		first, second := Replay(cmds...), Replay(cmds...)
		assert.Equal(t, first.Entries, second.Entries)
		assert.True(t, first.Total.Equal(second.Total))
	}
}

func TestStateHelpers(t *testing.T) {
	s := Replay(
		AddItem{Product: product("a", 1), Quantity: 2},
		AddItem{Product: product("b", 1), Quantity: 3},
	)
	assert.Equal(t, 5, s.Count())
	assert.Equal(t, 3, s.Quantity("b"))
	assert.Equal(t, 0, s.Quantity("c"))
}
