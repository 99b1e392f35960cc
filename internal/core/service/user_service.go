package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/shoplist/shopping-api/internal/api/metrics"
	"github.com/shoplist/shopping-api/internal/core/domain"
	"github.com/shoplist/shopping-api/internal/core/ports"
)

// UserService implements ports.UserService.
type UserService struct {
	repo      ports.UserRepository
	passwords ports.PasswordMatcher
	log       zerolog.Logger
}

func NewUserService(repo ports.UserRepository, passwords ports.PasswordMatcher, log zerolog.Logger) *UserService {
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &UserService{repo: repo, passwords: passwords, log: log}
}

// Register creates an account. A requested role is only honoured when
// in.AllowRole is set; otherwise it is dropped and the account is a user.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}
	if !validEmail(email) {
		return nil, domain.NewValidationError("email must be a valid email")
	}

	role := domain.RoleUser
	if in.AllowRole && in.Role != "" {
		if !domain.ValidRole(in.Role) {
			return nil, domain.NewValidationError("role must be one of: user admin")
		}
		role = in.Role
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	stored, err := s.passwords.Prepare(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:     email,
		Password:  stored,
		Role:      role,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.UsersRegisteredTotal.WithLabelValues(role).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", role).Msg("user registered")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns a user to itself or to an admin.
func (s *UserService) Get(ctx context.Context, caller *domain.User, id string) (*domain.User, error) {
	if err := checkOwner(caller, id); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Update applies patch to a user. Only admins may change roles; a role in a
// non-admin patch is silently dropped.
func (s *UserService) Update(ctx context.Context, caller *domain.User, id string, patch domain.UserPatch) (*domain.User, error) {
	if err := checkOwner(caller, id); err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		patch.Role = nil
	}
	if patch.Role != nil && !domain.ValidRole(*patch.Role) {
		return nil, domain.NewValidationError("role must be one of: user admin")
	}
	if patch.Email != nil {
		email := domain.NormalizeEmail(*patch.Email)
		if !validEmail(email) {
			return nil, domain.NewValidationError("email must be a valid email")
		}
		patch.Email = &email
	}

	if patch.IsEmpty() {
		return s.Get(ctx, caller, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

var validate = validator.New()

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// checkOwner allows admins everywhere and everyone else only on their own id.
func checkOwner(caller *domain.User, id string) error {
	if caller == nil {
		return domain.ErrUnauthenticated
	}
	if caller.IsAdmin() || caller.ID == id {
		return nil
	}
	return domain.ErrForbidden
}
