package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplist/shopping-api/internal/api/metrics"
	"github.com/shoplist/shopping-api/internal/core/domain"
	"github.com/shoplist/shopping-api/internal/core/ports"
)

// CartService implements ports.CartService over a single shared cart.
type CartService struct {
	items    ports.CartRepository
	products ports.ProductRepository
	log      zerolog.Logger
}

func NewCartService(items ports.CartRepository, products ports.ProductRepository, log zerolog.Logger) *CartService {
	return &CartService{items: items, products: products, log: log}
}

// Get returns every cart line and the cart total. Lines whose product no
// longer exists stay in the list but add nothing to the total.
func (s *CartService) Get(ctx context.Context) (*domain.Cart, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var total float64
	for _, item := range items {
		p, err := s.products.FindByID(ctx, item.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get cart: price item %s: %w", item.ID, err)
		}
		total += p.Price * float64(item.Quantity)
	}

	if items == nil {
		items = []*domain.CartItem{}
	}
	return &domain.Cart{Items: items, Total: domain.RoundPrice(total)}, nil
}

// Add puts quantity units of a product in the cart, merging with an existing
// line for the same product. The lookup and the insert are not atomic: two
// concurrent first adds of one product can create two lines.
func (s *CartService) Add(ctx context.Context, productID string, quantity int) (*domain.CartItem, error) {
	if productID == "" {
		return nil, domain.NewValidationError("productId is required")
	}
	if quantity < 1 {
		return nil, domain.NewValidationError("quantity must be at least 1")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	existing, err := s.items.FindByProductID(ctx, productID)
	switch {
	case err == nil:
		updated, err := s.items.IncrementQuantity(ctx, existing.ID, quantity)
		if err != nil {
			return nil, fmt.Errorf("add to cart: %w", err)
		}
		metrics.CartAddsTotal.WithLabelValues("incremented").Inc()
		return updated, nil
	case !errors.Is(err, domain.ErrCartItemNotFound):
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.items.Create(ctx, &domain.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	metrics.CartAddsTotal.WithLabelValues("created").Inc()
	return created, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, id string, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, domain.NewValidationError("quantity must be a positive number")
	}
	item, err := s.items.SetQuantity(ctx, id, quantity)
	if err != nil {
		if errors.Is(err, domain.ErrCartItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, id string) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCartItemNotFound) {
			return err
		}
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}
