package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// OrderPatch carries only the fields a caller intends to change. A non-nil
// Products slice replaces the whole line-item collection; nil leaves it
// untouched.
type OrderPatch struct {
	Status   *domain.OrderStatus
	UserID   *int64
	Products []domain.OrderProduct
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// FindByUserID returns the user's orders. The user itself must exist,
	// independently of whether any orders do.
	FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error)
	// Create resolves the order's user by id, stamps the creation time, and
	// forces the initial status to PENDING regardless of the input status.
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id int64, patch OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
