// Package service implements catalog management for solar panel products.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"solarxp_backend/internal/catalog/repository"
	"solarxp_backend/internal/catalog/transport"
	"solarxp_backend/platform/apperr"
	"solarxp_backend/platform/logger"
)

// productsKey caches the full product listing; the catalog is small and
// read-heavy, so one key covers it.
const productsKey = "products:all"

const subsidyExceedsBaseMsg = "Subsidy cannot exceed base price!"

// Cache is the narrow slice of the cache store the catalog needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Service manages the solar product catalog.
type Service struct {
	repo     repository.Repository
	cache    Cache
	cacheTTL time.Duration
	log      *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, cache Cache, cacheTTL time.Duration, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log}
}

// CreateProduct adds a panel model. The subsidy may not exceed the base
// price; that keeps every quoted price non-negative.
func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*transport.ProductResponse, error) {
	if err := validatePricing(req.BasePriceCents, req.SubsidyCents); err != nil {
		return nil, err
	}

	p := repository.Product{
		ID:             uuid.New(),
		Type:           req.Type,
		Watt:           req.Watt,
		BasePriceCents: req.BasePriceCents,
		SubsidyCents:   req.SubsidyCents,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return toResponse(p), nil
}

// ListProducts returns the catalog, served from cache when warm.
func (s *Service) ListProducts(ctx context.Context) ([]transport.ProductResponse, error) {
	var cached []transport.ProductResponse
	hit, err := s.cache.Get(ctx, productsKey, &cached)
	if err != nil {
		s.log.CacheError("get", productsKey, err)
	} else if hit {
		return cached, nil
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toResponse(p))
	}

	if err := s.cache.Set(ctx, productsKey, out, s.cacheTTL); err != nil {
		s.log.CacheError("set", productsKey, err)
	}
	return out, nil
}

// GetProduct returns one catalog entry.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*transport.ProductResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(*p), nil
}

// UpdateProduct rewrites a product's pricing. Prices already frozen into
// quote items are unaffected.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (*transport.ProductResponse, error) {
	if err := validatePricing(req.BasePriceCents, req.SubsidyCents); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.BasePriceCents = req.BasePriceCents
	p.SubsidyCents = req.SubsidyCents
	if err := s.repo.Update(ctx, *p); err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return toResponse(*p), nil
}

// DeleteProduct removes a product that no quote item references.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

// invalidateListing drops the cached listing after a mutation. A failed
// invalidation is logged loudly but never fails the mutation; the entry
// expires on its TTL at worst.
func (s *Service) invalidateListing(ctx context.Context) {
	if err := s.cache.Delete(ctx, productsKey); err != nil {
		s.log.CacheError("delete", productsKey, err)
	}
}

func validatePricing(baseCents, subsidyCents int64) error {
	if subsidyCents > baseCents {
		return apperr.Validation(subsidyExceedsBaseMsg)
	}
	return nil
}

func toResponse(p repository.Product) *transport.ProductResponse {
	return &transport.ProductResponse{
		ID:             p.ID,
		Type:           p.Type,
		Watt:           p.Watt,
		BasePriceCents: p.BasePriceCents,
		SubsidyCents:   p.SubsidyCents,
	}
}
