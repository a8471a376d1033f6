package ports

import (
	"context"

	"github.com/blanca/commerce-api/internal/core/domain"
)

// PasswordHasher is the one-way credential hasher the services depend on.
// The core never decodes a hash; Compare is the only way to check one.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// AuthService handles registration and login. Both return a signed token so
// registration doubles as a first login.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
