package ports

import (
	"context"
	"time"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

// TokenClaims is the payload carried by a bearer token.
type TokenClaims struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec signs and verifies bearer tokens.
type TokenCodec interface {
	// Issue signs claims. IssuedAt and ExpiresAt are set by the codec.
	Issue(claims TokenClaims) (string, error)
	// Verify returns false for any malformed, forged or expired token.
	Verify(token string) (TokenClaims, bool)
}

// Authenticator verifies credentials and resolves bearer headers to users.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// ResolveBearer returns domain.ErrUnauthenticated for every failure,
	// including storage faults.
	ResolveBearer(ctx context.Context, header string) (*domain.User, error)
	RequireRole(ctx context.Context, header, role string) bool
}

// PasswordMatcher decides how a registration password is stored and how a
// login password is checked against the stored value.
type PasswordMatcher interface {
	Prepare(password string) (string, error)
	Matches(stored, supplied string) bool
	// Exact reports whether stored values equal the plain password, which
	// lets the store match email and password in one query.
	Exact() bool
}
