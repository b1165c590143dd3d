package session

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/cart"
)

func TestCartIsOwnedPerSession(t *testing.T) {
	m := NewManager(time.Hour)
	a := m.Cart("alice")
	b := m.Cart("bob")

	a.Add(cart.Product{Key: "sword-1", Price: decimal.NewFromInt(100)}, 1)

	assert.Same(t, a, m.Cart("alice"))
	st, _ := b.Snapshot()
	assert.Empty(t, st.Entries)
	assert.Equal(t, 2, m.Len())
}

func TestEndResetsCart(t *testing.T) {
	m := NewManager(time.Hour)
	m.Cart("alice").Add(cart.Product{Key: "sword-1", Price: decimal.NewFromInt(100)}, 1)
	m.End("alice")

	st, _ := m.Cart("alice").Snapshot()
	assert.Empty(t, st.Entries)
}

func TestSweepDropsIdleCarts(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(30 * time.Minute)
	m.now = func() time.Time { return clock }

	m.Cart("old")
	clock = clock.Add(20 * time.Minute)
	m.Cart("fresh")
	clock = clock.Add(15 * time.Minute)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestSweepWithoutTTLKeepsEverything(t *testing.T) {
	m := NewManager(0)
	m.Cart("a")
	assert.Equal(t, 0, m.Sweep())
	assert.Equal(t, 1, m.Len())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	m := NewManager(time.Minute)
	assert.Error(t, m.Start("not a schedule"))
}
