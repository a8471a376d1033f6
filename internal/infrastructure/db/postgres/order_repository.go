package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blanca/commerce-api/internal/core/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{db: store.DB()}
}

const selectOrders = `
	SELECT o.id, o.status, o.created_at,
	       u.id, u.role, u.full_name, u.email, u.password_hash, u.created_at, u.active
	FROM orders o
	JOIN users u ON u.id = o.user_id`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var (
		o      domain.Order
		u      domain.User
		status string
		role   string
	)
	if err := row.Scan(&o.ID, &status, &o.CreatedAt,
		&u.ID, &role, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.Active); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	u.Role = domain.Role(role)
	o.User = &u
	return &o, nil
}

// loadItems fetches the line items for one order, with a product snapshot
// joined in for read views.
func (r *OrderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT op.product_id, op.amount, p.name, p.price, p.status, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY op.product_id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderProduct, 0)
	for rows.Next() {
		var (
			item          domain.OrderProduct
			product       domain.Product
			productStatus string
		)
		if err := rows.Scan(&item.ProductID, &item.Amount,
			&product.Name, &product.Price, &productStatus, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		product.ID = item.ProductID
		product.Status = domain.ProductStatus(productStatus)
		item.Product = &product
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Products = items
	}
	return orders, nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.queryOrders(ctx, selectOrders+` ORDER BY o.id`)
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrders+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Products = items
	return o, nil
}

func (r *OrderRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("order exists: %w", err)
	}
	return exists, nil
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.queryOrders(ctx, selectOrders+` WHERE o.user_id = $1 ORDER BY o.id`, userID)
}

// Save upserts the order row and replaces its line-item collection in one
// transaction: on update the stored items are deleted and the order's slice
// re-inserted wholesale.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if order.ID == 0 {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, status, created_at)
			VALUES ($1, $2, $3)
			RETURNING id
		`, order.User.ID, string(order.Status), order.CreatedAt).Scan(&order.ID)
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE orders SET user_id = $2, status = $3 WHERE id = $1
		`, order.ID, order.User.ID, string(order.Status))
		if err != nil {
			return nil, fmt.Errorf("update order: %w", err)
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM order_products WHERE order_id = $1`, order.ID); err != nil {
			return nil, fmt.Errorf("clear order items: %w", err)
		}
	}

	for _, item := range order.Products {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id, amount)
			VALUES ($1, $2, $3)
		`, order.ID, item.ProductID, item.Amount); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save order: %w", err)
	}

	clone := *order
	return &clone, nil
}

// Delete removes the order; order_products rows go with it via ON DELETE
// CASCADE.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
