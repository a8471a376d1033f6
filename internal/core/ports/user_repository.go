package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// UserRepository defines persistence operations for users. Save is an upsert:
// a zero ID inserts, a non-zero ID updates. Save never touches the user's
// orders; order rows belong to OrderRepository.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
