package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplist/shopping-api/internal/api/metrics"
	"github.com/shoplist/shopping-api/internal/core/domain"
	"github.com/shoplist/shopping-api/internal/core/ports"
)

const defaultProductCacheTTL = 5 * time.Minute

// ProductService implements ports.ProductService. The cache is optional and
// never authoritative: cache faults are logged and fall through to the store.
type ProductService struct {
	repo     ports.ProductRepository
	cache    ports.ProductCache
	cacheTTL time.Duration
	log      zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, cacheTTL time.Duration, log zerolog.Logger) *ProductService {
	if cacheTTL <= 0 {
		cacheTTL = defaultProductCacheTTL
	}
	return &ProductService{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log}
}

func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get reads through the cache.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		switch {
		case err != nil:
			metrics.ProductCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
		case cached != nil:
			metrics.ProductCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.ProductCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, p, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("product cache write failed")
		}
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Info().Str("product_id", created.ID).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	if err := validateProductPatch(patch); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidate(ctx, id)
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}

func validateProduct(p *domain.Product) error {
	switch {
	case p == nil:
		return domain.NewValidationError("missing required fields")
	case strings.TrimSpace(p.Name) == "":
		return domain.NewValidationError("name is required")
	case strings.TrimSpace(p.Category) == "":
		return domain.NewValidationError("category is required")
	case p.Price <= 0:
		return domain.NewValidationError("price must be greater than 0")
	}
	return validateImage(p.Image)
}

func validateProductPatch(p domain.ProductPatch) error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return domain.NewValidationError("name must not be empty")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return domain.NewValidationError("category must not be empty")
	}
	if p.Price != nil && *p.Price <= 0 {
		return domain.NewValidationError("price must be greater than 0")
	}
	if p.Image != nil {
		return validateImage(*p.Image)
	}
	return nil
}

func validateImage(img domain.ProductImage) error {
	if img.Thumbnail == "" || img.Mobile == "" || img.Tablet == "" || img.Desktop == "" {
		return domain.NewValidationError("image requires thumbnail, mobile, tablet and desktop")
	}
	return nil
}
