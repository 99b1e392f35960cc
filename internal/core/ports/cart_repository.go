package ports

import (
	"context"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

// CartRepository persists cart lines.
type CartRepository interface {
	Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error)
	FindByID(ctx context.Context, id string) (*domain.CartItem, error)
	FindByProductID(ctx context.Context, productID string) (*domain.CartItem, error)
	List(ctx context.Context) ([]*domain.CartItem, error)
	// IncrementQuantity adds delta to the item's quantity and returns the
	// updated item.
	IncrementQuantity(ctx context.Context, id string, delta int) (*domain.CartItem, error)
	SetQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
