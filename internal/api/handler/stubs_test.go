package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shoplist/shopping-api/internal/api/middleware"
	"github.com/shoplist/shopping-api/internal/core/domain"
	"github.com/shoplist/shopping-api/internal/core/ports"
)

type stubAuthenticator struct {
	loginFn   func(ctx context.Context, email, password string) (string, *domain.User, error)
	adminAuth string
}

func (s *stubAuthenticator) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthenticator) ResolveBearer(ctx context.Context, header string) (*domain.User, error) {
	if s.adminAuth != "" && header == s.adminAuth {
		return &domain.User{ID: "admin", Role: domain.RoleAdmin}, nil
	}
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthenticator) RequireRole(ctx context.Context, header, role string) bool {
	u, err := s.ResolveBearer(ctx, header)
	return err == nil && u.Role == role
}

type stubUserService struct {
	registerFn func(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error)
	getFn      func(ctx context.Context, caller *domain.User, id string) (*domain.User, error)
	updateFn   func(ctx context.Context, caller *domain.User, id string, patch domain.UserPatch) (*domain.User, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (s *stubUserService) Get(ctx context.Context, caller *domain.User, id string) (*domain.User, error) {
	return s.getFn(ctx, caller, id)
}

func (s *stubUserService) Update(ctx context.Context, caller *domain.User, id string, patch domain.UserPatch) (*domain.User, error) {
	return s.updateFn(ctx, caller, id, patch)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubProductService struct {
	created *domain.Product
	patch   domain.ProductPatch
	getErr  error
}

func (s *stubProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return []*domain.Product{}, nil
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &domain.Product{ID: id, Name: "Cake"}, nil
}

func (s *stubProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	s.created = p
	out := *p
	out.ID = "p1"
	return &out, nil
}

func (s *stubProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	s.patch = patch
	return &domain.Product{ID: id}, nil
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return nil
}

type stubCartService struct {
	addedProduct string
	addedQty     int
	removeErr    error
}

func (s *stubCartService) Get(ctx context.Context) (*domain.Cart, error) {
	return &domain.Cart{Items: []*domain.CartItem{}, Total: 0}, nil
}

func (s *stubCartService) Add(ctx context.Context, productID string, quantity int) (*domain.CartItem, error) {
	s.addedProduct, s.addedQty = productID, quantity
	return &domain.CartItem{ID: "c1", ProductID: productID, Quantity: quantity}, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	return &domain.CartItem{ID: id, Quantity: quantity}, nil
}

func (s *stubCartService) Remove(ctx context.Context, id string) error {
	return s.removeErr
}

// newContext builds an echo context with the validator installed, an
// optional JSON body and an optional resolved caller.
func newContext(method, target, body string, caller *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		c.Set(middleware.UserKey, caller)
	}
	return c, rec
}
