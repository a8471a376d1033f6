package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// CountryPatch carries only the fields a caller intends to change.
// Nil fields keep the stored value.
type CountryPatch struct {
	Code *string
	Name *string
}

// CountryService defines use-case operations for countries.
type CountryService interface {
	FindAll(ctx context.Context) ([]domain.Country, error)
	FindByCode(ctx context.Context, code string) (*domain.Country, error)
	Create(ctx context.Context, country domain.Country) (*domain.Country, error)
	Update(ctx context.Context, code string, patch CountryPatch) (*domain.Country, error)
	Delete(ctx context.Context, code string) error
}
