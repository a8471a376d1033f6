package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders. Save is an
// upsert that writes the order row together with its line items: on update
// the stored line-item collection is replaced by the one on the order.
// Delete cascades to the order's line items.
type OrderRepository interface {
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
