package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

// OrderService implements the order workflow. Creating or reassigning an
// order resolves the target user through UserRepository, and every line item
// resolves its product through ProductRepository, so an order can never
// reference a user or product that does not exist.
type OrderService struct {
	repo        ports.OrderRepository
	userRepo    ports.UserRepository
	productRepo ports.ProductRepository
	logger      zerolog.Logger
	now         func() time.Time
}

func NewOrderService(repo ports.OrderRepository, userRepo ports.UserRepository, productRepo ports.ProductRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{
		repo:        repo,
		userRepo:    userRepo,
		productRepo: productRepo,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *OrderService) FindAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.FindAll(ctx)
}

func (s *OrderService) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", id, err)
	}
	return order, nil
}

// FindByUserID returns the user's orders, possibly empty. The user itself
// must exist; the check is independent of whether any order rows do.
func (s *OrderService) FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrUserNotFound)
	}
	return s.repo.FindByUserID(ctx, userID)
}

// Create persists a new order. The input order only needs a user id; the
// full user is resolved here and replaces the skeletal reference. The status
// supplied by the caller is ignored: every order starts PENDING.
func (s *OrderService) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	if order.User == nil || order.User.ID == 0 {
		return nil, fmt.Errorf("order create: %w", domain.ErrUserNotFound)
	}

	user, err := s.userRepo.FindByID(ctx, order.User.ID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", order.User.ID, err)
	}
	if err := s.resolveProducts(ctx, order.Products); err != nil {
		return nil, err
	}

	order.User = user
	order.CreatedAt = s.now()
	order.Status = domain.OrderPending

	created, err := s.repo.Save(ctx, &order)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("order_id", created.ID).Int64("user_id", user.ID).Msg("order created")
	return created, nil
}

// Update loads the stored order and merges the patch: status overwrites when
// present, a user reference is resolved before replacing, and a non-nil
// Products slice replaces the line-item collection wholesale.
func (s *OrderService) Update(ctx context.Context, id int64, patch ports.OrderPatch) (*domain.Order, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", id, err)
	}

	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.UserID != nil {
		user, err := s.userRepo.FindByID(ctx, *patch.UserID)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", *patch.UserID, err)
		}
		existing.User = user
	}
	if patch.Products != nil {
		if err := s.resolveProducts(ctx, patch.Products); err != nil {
			return nil, err
		}
		existing.Products = patch.Products
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("order_id", id).Msg("order updated")
	return updated, nil
}

// resolveProducts loads the catalog product behind every line item and
// attaches it in place. An unknown product id fails the whole operation
// before anything is written.
func (s *OrderService) resolveProducts(ctx context.Context, items []domain.OrderProduct) error {
	for i := range items {
		product, err := s.productRepo.FindByID(ctx, items[i].ProductID)
		if err != nil {
			return fmt.Errorf("product %d: %w", items[i].ProductID, err)
		}
		items[i].Product = product
	}
	return nil
}

// Delete hard-deletes the order; the store cascades to its line items.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("order_id", id).Msg("order deleted")
	return nil
}
