package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blanca/commerce-api/internal/core/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{db: store.DB()}
}

const userColumns = `
	u.id, u.role, u.full_name, u.email, u.password_hash, u.created_at, u.active,
	c.code, c.name`

const userFrom = `
	FROM users u
	LEFT JOIN countries c ON c.code = u.country_code`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var (
		u           domain.User
		role        string
		countryCode sql.NullString
		countryName sql.NullString
	)
	if err := row.Scan(&u.ID, &role, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.Active,
		&countryCode, &countryName); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	if countryCode.Valid {
		u.Country = &domain.Country{Code: countryCode.String, Name: countryName.String}
	}
	return &u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT`+userColumns+userFrom+` ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT`+userColumns+userFrom+` WHERE u.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT`+userColumns+userFrom+` WHERE u.email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user email exists: %w", err)
	}
	return exists, nil
}

// Save upserts: a zero ID inserts and returns the generated id, a non-zero ID
// updates the users row only. Order rows are never touched here.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var countryCode sql.NullString
	if user.Country != nil {
		countryCode = sql.NullString{String: user.Country.Code, Valid: true}
	}

	if user.ID == 0 {
		err := r.db.QueryRowContext(ctx, `
			INSERT INTO users (role, full_name, email, password_hash, created_at, active, country_code)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, string(user.Role), user.FullName, user.Email, user.PasswordHash, user.CreatedAt, user.Active, countryCode).
			Scan(&user.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, domain.ErrEmailExists
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}
	} else {
		_, err := r.db.ExecContext(ctx, `
			UPDATE users
			SET role = $2, full_name = $3, email = $4, password_hash = $5, active = $6, country_code = $7
			WHERE id = $1
		`, user.ID, string(user.Role), user.FullName, user.Email, user.PasswordHash, user.Active, countryCode)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, domain.ErrEmailExists
			}
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	clone := *user
	return &clone, nil
}
