package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login limiter (Redis).
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login on top of UserService.
// Registration always creates a USER role account.
type AuthService struct {
	users     ports.UserService
	userRepo  ports.UserRepository
	hasher    ports.PasswordHasher
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserService, userRepo ports.UserRepository, hasher ports.PasswordHasher, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		userRepo:  userRepo,
		hasher:    hasher,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a USER account and signs a token for it (auto-login).
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (string, *domain.User, error) {
	if err := validatePassword(password); err != nil {
		return "", nil, err
	}

	user, err := s.users.Create(ctx, ports.CreateUserInput{
		FullName: fullName,
		Email:    email,
		Password: password,
		Role:     domain.RoleUser,
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", email).Msg("user registered")
	return token, user, nil
}

// Login verifies the credentials and returns a signed token. Failures count
// against the throttle; throttle errors are logged and ignored so an
// unavailable Redis never locks the API out.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	blocked, err := s.throttle.TooManyFailures(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("login throttle check failed, continuing")
	} else if blocked {
		return "", nil, domain.ErrTooManyLoginAttempts
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// An unknown email must be indistinguishable from a wrong password,
		// so account existence never leaks through the login endpoint.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("user %q: %w", email, err)
	}

	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		if recErr := s.throttle.RecordFailure(ctx, email); recErr != nil {
			s.logger.Warn().Err(recErr).Str("email", email).Msg("failed to record login failure")
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if resetErr := s.throttle.Reset(ctx, email); resetErr != nil {
		s.logger.Warn().Err(resetErr).Str("email", email).Msg("failed to reset login throttle")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", email).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.Email,
		"role":    string(user.Role),
		"user_id": user.ID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validatePassword enforces the registration password policy: at least 8
// characters with one uppercase letter, one lowercase letter, and one digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters long", domain.ErrInvalidPassword)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return fmt.Errorf("%w: must contain an uppercase letter, a lowercase letter, and a digit", domain.ErrInvalidPassword)
	}
	return nil
}
