package ports

import (
	"context"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

// RegisterUserInput carries a registration request.
type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
	Role     string
	// AllowRole is true when the caller is an admin; otherwise Role is ignored.
	AllowRole bool
}

// UserService covers the users collection. The caller is the resolved
// bearer identity.
type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, caller *domain.User, id string) (*domain.User, error)
	Update(ctx context.Context, caller *domain.User, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// ProductService covers the products collection.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// CartService covers the cart collection.
type CartService interface {
	Get(ctx context.Context) (*domain.Cart, error)
	Add(ctx context.Context, productID string, quantity int) (*domain.CartItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error)
	Remove(ctx context.Context, id string) error
}

// Stats is a snapshot of collection sizes.
type Stats struct {
	Products int64 `json:"products"`
	Cart     int64 `json:"cart"`
	Users    int64 `json:"users"`
}

// SeedResult reports how many documents a seed run inserted.
type SeedResult struct {
	Products int `json:"products"`
	Cart     int `json:"cart"`
	Users    int `json:"users"`
}

// DataService reports on and reloads the whole data set.
type DataService interface {
	Stats(ctx context.Context) (*Stats, error)
	Seed(ctx context.Context) (*SeedResult, error)
}
