package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// CreateUserInput carries the data needed to create a user. Password is the
// plaintext credential; it is hashed by the service and never stored.
type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Role     domain.Role
}

// UserPatch carries only the fields a caller intends to change. Active is a
// pointer so the patch can distinguish "leave as is" from an explicit
// activation toggle.
type UserPatch struct {
	FullName *string
	Email    *string
	Active   *bool
}

// UserService defines use-case operations for users. Delete is a soft delete:
// it marks the user inactive and keeps the record.
type UserService interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	AssignCountry(ctx context.Context, userID int64, countryCode string) (*domain.User, error)
}
