package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{db: store.DB()}
}

const selectProducts = `SELECT id, name, price, status, created_at FROM products`

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var (
			p      domain.Product
			status string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		p.Status = domain.ProductStatus(status)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.queryProducts(ctx, selectProducts+` ORDER BY id`)
}

// FindWithFilters composes the WHERE clause from the criteria that are
// present, in a fixed order; absent criteria contribute no condition at all.
func (r *ProductRepository) FindWithFilters(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		conditions []string
		args       []any
	)
	addCondition := func(expr string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}

	if filter.Name != "" {
		addCondition(`name ILIKE '%%' || $%d || '%%'`, filter.Name)
	}
	if filter.MinPrice != nil {
		addCondition(`price >= $%d`, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCondition(`price <= $%d`, *filter.MaxPrice)
	}
	if filter.Status != nil {
		addCondition(`status = $%d`, string(*filter.Status))
	}

	query := selectProducts
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY id`

	return r.queryProducts(ctx, query, args...)
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		p      domain.Product
		status string
	)
	err := r.db.QueryRowContext(ctx, selectProducts+` WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	p.Status = domain.ProductStatus(status)
	return &p, nil
}

func (r *ProductRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

// Save upserts: a zero ID inserts and returns the generated id.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if product.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO products (name, price, status, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, product.Name, product.Price, string(product.Status), product.CreatedAt).
			Scan(&product.ID)
		if err != nil {
			return nil, fmt.Errorf("insert product: %w", err)
		}
	} else {
		_, err := r.db.ExecContext(ctx, `
			UPDATE products SET name = $2, price = $3, status = $4 WHERE id = $1
		`, product.ID, product.Name, product.Price, string(product.Status))
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
	}

	clone := *product
	return &clone, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
