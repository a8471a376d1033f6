package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// ProductPatch carries only the fields a caller intends to change.
type ProductPatch struct {
	Name   *string
	Price  *float64
	Status *domain.ProductStatus
}

// ProductService defines use-case operations for catalog products.
type ProductService interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	// FindWithFilters searches the catalog. Every argument is optional: an
	// empty name and nil pointers mean "no filter on this field".
	FindWithFilters(ctx context.Context, name string, minPrice, maxPrice *float64, status *domain.ProductStatus) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
