package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blanca/commerce-api/internal/core/domain"
)

type CountryRepository struct {
	db *sql.DB
}

func NewCountryRepository(store *Store) *CountryRepository {
	return &CountryRepository{db: store.DB()}
}

func (r *CountryRepository) FindAll(ctx context.Context) ([]domain.Country, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT code, name FROM countries ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scan country row: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (r *CountryRepository) FindByCode(ctx context.Context, code string) (*domain.Country, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c domain.Country
	err := r.db.QueryRowContext(ctx, `SELECT code, name FROM countries WHERE code = $1`, code).
		Scan(&c.Code, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCountryNotFound
		}
		return nil, fmt.Errorf("select country: %w", err)
	}
	return &c, nil
}

func (r *CountryRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM countries WHERE code = $1)`, code).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("country exists: %w", err)
	}
	return exists, nil
}

// Save upserts by code: an unknown code inserts, a known one updates the name.
func (r *CountryRepository) Save(ctx context.Context, country *domain.Country) (*domain.Country, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO countries (code, name) VALUES ($1, $2)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
	`, country.Code, country.Name)
	if err != nil {
		return nil, fmt.Errorf("upsert country: %w", err)
	}

	clone := *country
	return &clone, nil
}

func (r *CountryRepository) Delete(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE code = $1`, code); err != nil {
		return fmt.Errorf("delete country: %w", err)
	}
	return nil
}
