package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/models"
)

// MemoryProducts is a ProductRepository held in process memory. It backs
// STORAGE=memory runs and handler tests.
type MemoryProducts struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewMemoryProducts returns a catalog holding seed.
func NewMemoryProducts(seed ...models.Product) *MemoryProducts {
	m := &MemoryProducts{products: make(map[string]models.Product)}
	for i := range seed {
		_ = m.Create(context.Background(), &seed[i])
	}
	return m
}

func (m *MemoryProducts) List(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Product{}
	for _, p := range m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].DocumentID < out[j].DocumentID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryProducts) Get(_ context.Context, documentID string) (models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[documentID]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (m *MemoryProducts) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.DocumentID == "" {
		p.DocumentID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.products[p.DocumentID] = *p
	return nil
}

func (m *MemoryProducts) Update(_ context.Context, documentID string, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.products[documentID]
	if !ok {
		return ErrNotFound
	}
	p.DocumentID = documentID
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	m.products[documentID] = p
	return nil
}

func (m *MemoryProducts) Delete(_ context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[documentID]; !ok {
		return ErrNotFound
	}
	delete(m.products, documentID)
	return nil
}

func (m *MemoryProducts) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.products))
	m.products = make(map[string]models.Product)
	return n, nil
}

func (m *MemoryProducts) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.products)), nil
}

// MemoryOrders is an OrderRepository held in process memory.
type MemoryOrders struct {
	mu     sync.Mutex
	orders []models.Order
}

// NewMemoryOrders returns an empty order store.
func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{}
}

func (m *MemoryOrders) Create(_ context.Context, o *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *o)
	return nil
}

func (m *MemoryOrders) ListByEmail(_ context.Context, email string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].Customer.Email == email {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

// MemoryUsers is a UserRepository held in process memory.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

// NewMemoryUsers returns an empty user store.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]models.User)}
}

func (m *MemoryUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemoryUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.CreatedAt = time.Now().UTC()
	m.users[u.Email] = *u
	return nil
}

func (m *MemoryUsers) CountByRole(_ context.Context, role string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}
