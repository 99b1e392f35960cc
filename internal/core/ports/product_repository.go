package ports

import (
	"context"
	"time"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

// ProductRepository persists catalogue entries.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

// ProductCache is a best-effort read-through cache in front of
// ProductRepository.FindByID. A miss is (nil, nil).
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product, ttl time.Duration) error
	Invalidate(ctx context.Context, id string) error
}
