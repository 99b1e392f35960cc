package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shoplist/shopping-api/internal/api/metrics"
	"github.com/shoplist/shopping-api/internal/core/domain"
	"github.com/shoplist/shopping-api/internal/core/ports"
)

const bearerPrefix = "Bearer "

// AuthService implements ports.Authenticator. It only reads users.
type AuthService struct {
	users     ports.UserRepository
	tokens    ports.TokenCodec
	passwords ports.PasswordMatcher
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenCodec, passwords ports.PasswordMatcher, log zerolog.Logger) *AuthService {
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &AuthService{users: users, tokens: tokens, passwords: passwords, log: log}
}

// Login returns a signed token for matching credentials. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.NewValidationError("email and password are required")
	}

	user, err := s.findByCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return "", nil, err
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.tokens.Issue(ports.TokenClaims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) findByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	if s.passwords.Exact() {
		user, err = s.users.FindByCredentials(ctx, email, password)
	} else {
		user, err = s.users.FindByEmail(ctx, email)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.passwords.Matches(user.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// ResolveBearer maps an Authorization header to the stored user. The user is
// re-read on every call so role changes and deletions apply immediately.
func (s *AuthService) ResolveBearer(ctx context.Context, header string) (*domain.User, error) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return nil, domain.ErrUnauthenticated
	}

	claims, ok := s.tokens.Verify(token)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Str("user_id", claims.UserID).Msg("resolve bearer: load user")
		}
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) RequireRole(ctx context.Context, header, role string) bool {
	user, err := s.ResolveBearer(ctx, header)
	if err != nil {
		return false
	}
	return user.Role == role
}
