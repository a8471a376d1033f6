package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// CountryRepository defines persistence operations for countries.
// Save is an upsert keyed by country code.
type CountryRepository interface {
	FindAll(ctx context.Context) ([]domain.Country, error)
	FindByCode(ctx context.Context, code string) (*domain.Country, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, country *domain.Country) (*domain.Country, error)
	Delete(ctx context.Context, code string) error
}
