package ports

import (
	"context"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

// UserRepository is the credential store. Emails are matched after
// domain.NormalizeEmail; implementations must enforce email uniqueness.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByCredentials returns the user whose email and password both match
	// exactly, or domain.ErrUserNotFound.
	FindByCredentials(ctx context.Context, email, password string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
