package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// ProductFilter carries the optional catalog search criteria. Absent criteria
// (zero Name, nil pointers) are omitted from the query entirely, so an empty
// filter matches every product.
type ProductFilter struct {
	Name     string                // case-insensitive substring match
	MinPrice *float64              // price >= MinPrice
	MaxPrice *float64              // price <= MaxPrice
	Status   *domain.ProductStatus // exact match
}

// ProductRepository defines persistence operations for catalog products.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// FindWithFilters returns products matching the conjunction of all
	// present criteria in filter.
	FindWithFilters(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
