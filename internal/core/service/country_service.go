package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

// CountryService implements CRUD over countries.
type CountryService struct {
	repo   ports.CountryRepository
	logger zerolog.Logger
}

func NewCountryService(repo ports.CountryRepository, logger zerolog.Logger) *CountryService {
	return &CountryService{repo: repo, logger: logger}
}

func (s *CountryService) FindAll(ctx context.Context) ([]domain.Country, error) {
	return s.repo.FindAll(ctx)
}

func (s *CountryService) FindByCode(ctx context.Context, code string) (*domain.Country, error) {
	country, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("country %q: %w", code, err)
	}
	return country, nil
}

// Create inserts the country as given. Code collisions are the store's
// concern (primary key), no uniqueness check happens here.
func (s *CountryService) Create(ctx context.Context, country domain.Country) (*domain.Country, error) {
	created, err := s.repo.Save(ctx, &country)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("code", created.Code).Msg("country created")
	return created, nil
}

// Update loads the stored country and overwrites only the fields present in
// patch. The code itself may change; the merged record is saved under it.
func (s *CountryService) Update(ctx context.Context, code string, patch ports.CountryPatch) (*domain.Country, error) {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("country %q: %w", code, err)
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Code != nil {
		existing.Code = *patch.Code
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("code", code).Msg("country updated")
	return updated, nil
}

// Delete hard-deletes the country.
func (s *CountryService) Delete(ctx context.Context, code string) error {
	exists, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("country %q: %w", code, domain.ErrCountryNotFound)
	}
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	s.logger.Info().Str("code", code).Msg("country deleted")
	return nil
}
