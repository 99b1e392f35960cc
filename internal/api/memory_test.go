package api

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

// In-memory stores behind the repository ports, used to drive the router
// end to end.

type memStore struct {
	mu  sync.Mutex
	seq int
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%04d", prefix, m.seq)
}

type memUsers struct {
	memStore
	byID map[string]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*domain.User{}} }

func (r *memUsers) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	cp := *u
	cp.ID = r.nextID("u")
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memUsers) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == domain.NormalizeEmail(email) {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := r.FindByEmail(ctx, email)
	if err != nil || u.Password != password {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *memUsers) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUsers) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	u.UpdatedAt = time.Now().UTC()
	out := *u
	return &out, nil
}

func (r *memUsers) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memUsers) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memUsers) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = map[string]*domain.User{}
	return nil
}

type memProducts struct {
	memStore
	byID map[string]*domain.Product
}

func newMemProducts() *memProducts { return &memProducts{byID: map[string]*domain.Product{}} }

func (r *memProducts) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	cp.ID = r.nextID("p")
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memProducts) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (r *memProducts) List(ctx context.Context) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Product, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProducts) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	out := *p
	return &out, nil
}

func (r *memProducts) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memProducts) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memProducts) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = map[string]*domain.Product{}
	return nil
}

type memCart struct {
	memStore
	byID map[string]*domain.CartItem
}

func newMemCart() *memCart { return &memCart{byID: map[string]*domain.CartItem{}} }

func (r *memCart) Create(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *item
	cp.ID = r.nextID("c")
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memCart) FindByID(ctx context.Context, id string) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	out := *it
	return &out, nil
}

func (r *memCart) FindByProductID(ctx context.Context, productID string) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.byID {
		if it.ProductID == productID {
			out := *it
			return &out, nil
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (r *memCart) List(ctx context.Context) ([]*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.CartItem, 0, len(r.byID))
	for _, it := range r.byID {
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCart) IncrementQuantity(ctx context.Context, id string, delta int) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	it.Quantity += delta
	out := *it
	return &out, nil
}

func (r *memCart) SetQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	it.Quantity = quantity
	out := *it
	return &out, nil
}

func (r *memCart) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCartItemNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memCart) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memCart) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = map[string]*domain.CartItem{}
	return nil
}
