package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

var errStoreDown = errors.New("store unavailable")

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	nextID  int
	findErr error // if set, every Find* returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = "u" + strconv.Itoa(r.nextID)
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByCredentials(_ context.Context, email, password string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email && u.Password == password {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		for _, other := range r.users {
			if other.ID != id && other.Email == *patch.Email {
				return nil, domain.ErrUserExists
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[string]*domain.User)
	return nil
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
	finds    int
	findErr  error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) add(name string, price float64) *domain.Product {
	p, _ := r.Create(context.Background(), &domain.Product{Name: name, Category: "Dessert", Price: price, Image: placeholderImage})
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.nextID++
	clone := *p
	clone.ID = "p" + strconv.Itoa(r.nextID)
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.finds++
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) DeleteAll(_ context.Context) error {
	r.products = make(map[string]*domain.Product)
	return nil
}

type stubProductCache struct {
	entries     map[string]*domain.Product
	getErr      error
	invalidated []string
}

func newStubProductCache() *stubProductCache {
	return &stubProductCache{entries: make(map[string]*domain.Product)}
}

func (c *stubProductCache) Get(_ context.Context, id string) (*domain.Product, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.entries[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (c *stubProductCache) Set(_ context.Context, p *domain.Product, _ time.Duration) error {
	clone := *p
	c.entries[p.ID] = &clone
	return nil
}

func (c *stubProductCache) Invalidate(_ context.Context, id string) error {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

// ---------------------------------------------------------------------------
// Cart
// ---------------------------------------------------------------------------

type stubCartRepo struct {
	items   []*domain.CartItem
	nextID  int
	listErr error
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{}
}

func (r *stubCartRepo) find(id string) *domain.CartItem {
	for _, it := range r.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (r *stubCartRepo) Create(_ context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	r.nextID++
	clone := *item
	clone.ID = "c" + strconv.Itoa(r.nextID)
	r.items = append(r.items, &clone)
	out := clone
	return &out, nil
}

func (r *stubCartRepo) FindByID(_ context.Context, id string) (*domain.CartItem, error) {
	it := r.find(id)
	if it == nil {
		return nil, domain.ErrCartItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *stubCartRepo) FindByProductID(_ context.Context, productID string) (*domain.CartItem, error) {
	for _, it := range r.items {
		if it.ProductID == productID {
			clone := *it
			return &clone, nil
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (r *stubCartRepo) List(_ context.Context) ([]*domain.CartItem, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.CartItem
	for _, it := range r.items {
		clone := *it
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCartRepo) IncrementQuantity(_ context.Context, id string, delta int) (*domain.CartItem, error) {
	it := r.find(id)
	if it == nil {
		return nil, domain.ErrCartItemNotFound
	}
	it.Quantity += delta
	clone := *it
	return &clone, nil
}

func (r *stubCartRepo) SetQuantity(_ context.Context, id string, quantity int) (*domain.CartItem, error) {
	it := r.find(id)
	if it == nil {
		return nil, domain.ErrCartItemNotFound
	}
	it.Quantity = quantity
	clone := *it
	return &clone, nil
}

func (r *stubCartRepo) Delete(_ context.Context, id string) error {
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

func (r *stubCartRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *stubCartRepo) DeleteAll(_ context.Context) error {
	r.items = nil
	return nil
}
