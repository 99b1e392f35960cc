package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

type stubAuthenticator struct {
	users map[string]*domain.User
	calls int
}

func (s *stubAuthenticator) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

func (s *stubAuthenticator) ResolveBearer(ctx context.Context, header string) (*domain.User, error) {
	s.calls++
	if u, ok := s.users[header]; ok {
		return u, nil
	}
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthenticator) RequireRole(ctx context.Context, header, role string) bool {
	u, err := s.ResolveBearer(ctx, header)
	return err == nil && u.Role == role
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	alice := &domain.User{ID: "u1", Email: "alice@example.com", Role: domain.RoleAdmin}
	authn := &stubAuthenticator{users: map[string]*domain.User{"Bearer good": alice}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(authn)(func(c echo.Context) error {
		called = true
		if CurrentUser(c) != alice {
			t.Fatalf("user not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"invalid token":  "Bearer not-a-token",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			handler := Authenticate(&stubAuthenticator{})(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestCurrentUser_Absent(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if CurrentUser(c) != nil {
		t.Fatalf("expected nil user")
	}
}
