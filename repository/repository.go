package repository

import (
	"context"

	"github.com/pkg/errors"

	"storefront/models"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("not found")

// ProductFilter narrows List results. Zero values match everything.
type ProductFilter struct {
	Category     string
	FeaturedOnly bool
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, documentID string) (models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, documentID string, p models.Product) error
	Delete(ctx context.Context, documentID string) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, u *models.User) error
	CountByRole(ctx context.Context, role string) (int64, error)
}
