// Package catalog is the query layer the front ends call.
//
// Service adds nothing on top of the record store except building the
// substring predicates used by the two searches. Store errors are logged and
// returned unchanged.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/lojacapivara/catalog/internal/product"
	"github.com/lojacapivara/catalog/internal/queryir"
)

// Repository is the record store as seen by the query layer.
// *store.Store implements it.
type Repository interface {
	List(ctx context.Context, filter queryir.Predicate) ([]product.Product, error)
	Get(ctx context.Context, id int64) (product.Product, error)
	Insert(ctx context.Context, p product.Product) (int64, error)
	Update(ctx context.Context, p product.Product) error
	Delete(ctx context.Context, id int64) error
}

// Service exposes the catalog operations.
type Service struct {
	repo Repository
	log  *zap.Logger
}

// New creates a Service. A nil logger falls back to the global zap logger.
func New(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.L()
	}
	return &Service{repo: repo, log: log.Named("catalog")}
}

// List returns every product in insertion order.
func (s *Service) List(ctx context.Context) ([]product.Product, error) {
	products, err := s.repo.List(ctx, nil)
	if err != nil {
		s.log.Error("failed to list products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

// SearchByName returns the products whose name contains term.
func (s *Service) SearchByName(ctx context.Context, term string) ([]product.Product, error) {
	products, err := s.repo.List(ctx, queryir.NameContains(term))
	if err != nil {
		s.log.Error("failed to search products by name", zap.String("term", term), zap.Error(err))
		return nil, err
	}
	return products, nil
}

// SearchByColor returns the products whose colors contain term.
func (s *Service) SearchByColor(ctx context.Context, term string) ([]product.Product, error) {
	products, err := s.repo.List(ctx, queryir.ColorsContain(term))
	if err != nil {
		s.log.Error("failed to search products by color", zap.String("term", term), zap.Error(err))
		return nil, err
	}
	return products, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id int64) (product.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		s.log.Error("failed to get product", zap.Int64("id", id), zap.Error(err))
		return product.Product{}, err
	}
	return p, nil
}

// Insert stores a new product and returns its id.
func (s *Service) Insert(ctx context.Context, p product.Product) (int64, error) {
	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		s.log.Error("failed to insert product", zap.String("name", p.Name), zap.Error(err))
		return 0, err
	}
	s.log.Debug("product inserted", zap.Int64("id", id))
	return id, nil
}

// Update replaces the product with id p.ID.
func (s *Service) Update(ctx context.Context, p product.Product) error {
	if err := s.repo.Update(ctx, p); err != nil {
		s.log.Error("failed to update product", zap.Int64("id", p.ID), zap.Error(err))
		return err
	}
	s.log.Debug("product updated", zap.Int64("id", p.ID))
	return nil
}

// Delete removes the product with the given id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete product", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.log.Debug("product deleted", zap.Int64("id", id))
	return nil
}
