package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

// ProductService implements catalog operations.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProductService) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// FindWithFilters searches the catalog with a conjunction of the present
// criteria. An empty name counts as absent, so passing no criteria at all
// returns the same set as FindAll.
func (s *ProductService) FindWithFilters(ctx context.Context, name string, minPrice, maxPrice *float64, status *domain.ProductStatus) ([]domain.Product, error) {
	filter := ports.ProductFilter{}
	if name != "" {
		filter.Name = name
	}
	if minPrice != nil {
		filter.MinPrice = minPrice
	}
	if maxPrice != nil {
		filter.MaxPrice = maxPrice
	}
	if status != nil {
		filter.Status = status
	}

	return s.repo.FindWithFilters(ctx, filter)
}

func (s *ProductService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	return product, nil
}

// Create stamps the creation time and persists the product.
func (s *ProductService) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	product.CreatedAt = s.now()

	created, err := s.repo.Save(ctx, &product)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// Update loads the stored product and overwrites only the fields present in
// patch. CreatedAt is never touched.
func (s *ProductService) Update(ctx context.Context, id int64, patch ports.ProductPatch) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", id, err)
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Price != nil {
		existing.Price = *patch.Price
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return updated, nil
}

// Delete hard-deletes the product.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
