package cart

import (
	"context"
	"fmt"

	"campusmart-be/internal/apperr"
	"campusmart-be/internal/logger"
	"campusmart-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for the cart aggregate. Every
// mutation persists immediately and returns the resulting denormalized
// cart for presentation.
type Service interface {
	AddItem(ctx context.Context, params AddItemParams) ([]Item, error)
	RemoveItem(ctx context.Context, userID, productID string) ([]Item, error)
	Clear(ctx context.Context, userID string) error
	Get(ctx context.Context, userID string) ([]Item, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) AddItem(ctx context.Context, params AddItemParams) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	if params.Quantity == 0 {
		params.Quantity = 1
	}
	if params.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", apperr.ErrInvalidState)
	}

	if _, err := s.productRepo.GetByID(ctx, params.ProductID); err != nil {
		log.Warn("product lookup failed", zap.Error(err))
		return nil, err
	}

	if err := s.repo.UpsertItem(ctx, params); err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return nil, err
	}

	return s.repo.GetItems(ctx, params.UserID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) ([]Item, error) {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.repo.GetItems(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID string) ([]Item, error) {
	return s.repo.GetItems(ctx, userID)
}
