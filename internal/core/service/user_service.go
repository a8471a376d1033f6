package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

// UserService implements user lifecycle operations. It is the only service
// that reaches into a second aggregate's repository (countries, for
// AssignCountry).
type UserService struct {
	repo        ports.UserRepository
	countryRepo ports.CountryRepository
	hasher      ports.PasswordHasher
	logger      zerolog.Logger
	now         func() time.Time
}

func NewUserService(repo ports.UserRepository, countryRepo ports.CountryRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:        repo,
		countryRepo: countryRepo,
		hasher:      hasher,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	return user, nil
}

// Create registers a new user. The email must be free; the conflict check
// runs before any hashing so a duplicate registration does no work.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	exists, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email %q: %w", input.Email, domain.ErrEmailExists)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Role:         role,
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
		Active:       true,
	}

	created, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return created, nil
}

// Update loads the stored user and overwrites only the fields present in
// patch. The user's orders are never part of this write: saving a user
// touches the users row only, so no unrelated field change can drop them.
func (s *UserService) Update(ctx context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", id, err)
	}

	if patch.FullName != nil {
		existing.FullName = *patch.FullName
	}
	if patch.Email != nil {
		existing.Email = *patch.Email
	}
	if patch.Active != nil {
		existing.Active = *patch.Active
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", id).Msg("user updated")
	return updated, nil
}

// Delete soft-deletes: the user is marked inactive and the record kept.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user %d: %w", id, err)
	}

	user.Active = false
	if _, err := s.repo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user marked inactive")
	return nil
}

// AssignCountry sets the user's country reference. Both the user and the
// country must exist; a missing country leaves the user untouched.
func (s *UserService) AssignCountry(ctx context.Context, userID int64, countryCode string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}

	country, err := s.countryRepo.FindByCode(ctx, countryCode)
	if err != nil {
		return nil, fmt.Errorf("country %q: %w", countryCode, err)
	}

	user.Country = country
	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", userID).Str("country", countryCode).Msg("country assigned")
	return updated, nil
}
