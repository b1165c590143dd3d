package session

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"storefront/cart"
)

type holder struct {
	store    *cart.Store
	lastSeen time.Time
}

// Manager hands out one cart.Store per session id. Carts are created empty on
// first use and dropped when the session ends or sits idle past the TTL.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*holder
	ttl   time.Duration
	now   func() time.Time
	sched *cron.Cron
}

// NewManager creates a Manager whose carts expire after ttl of inactivity.
// A ttl of zero keeps carts until End.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		carts: make(map[string]*holder),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Cart returns the store owned by id, creating it if needed.
func (m *Manager) Cart(id string) *cart.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.carts[id]
	if !ok {
		h = &holder{store: cart.NewStore()}
		m.carts[id] = h
	}
	h.lastSeen = m.now()
	return h.store
}

// End discards the cart of id.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, id)
}

// Len reports the number of live carts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}

// Sweep drops carts idle for longer than the TTL and returns how many went.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, h := range m.carts {
		if h.lastSeen.Before(cutoff) {
			delete(m.carts, id)
			n++
		}
	}
	return n
}

// Start schedules Sweep on spec (a cron expression such as "@every 1m").
func (m *Manager) Start(spec string) error {
	m.sched = cron.New()
	_, err := m.sched.AddFunc(spec, func() {
		if n := m.Sweep(); n > 0 {
			zap.L().Info("expired idle carts", zap.Int("count", n))
		}
	})
	if err != nil {
		return err
	}
	m.sched.Start()
	return nil
}

// Stop halts the sweeper and waits for a running sweep to finish.
func (m *Manager) Stop() {
	if m.sched != nil {
		<-m.sched.Stop().Done()
	}
}
