package product

import (
	"context"
	"fmt"

	"campusmart-be/internal/apperr"
)

type Service interface {
	Create(ctx context.Context, sellerID string, input NewProductInput) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, category string) ([]Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]Product, error)
	Delete(ctx context.Context, callerID, productID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, sellerID string, input NewProductInput) (Product, error) {
	if input.Name == "" {
		return Product{}, fmt.Errorf("product name is required: %w", apperr.ErrInvalidState)
	}
	if input.Price < 0 {
		return Product{}, fmt.Errorf("price must be non-negative: %w", apperr.ErrInvalidState)
	}

	return s.repo.Create(ctx, sellerID, input)
}

func (s *service) GetByID(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, category string) ([]Product, error) {
	return s.repo.List(ctx, category)
}

func (s *service) ListBySeller(ctx context.Context, sellerID string) ([]Product, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

// Delete removes a listing. Only the owning seller may delete it.
func (s *service) Delete(ctx context.Context, callerID, productID string) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.SellerID != callerID {
		return fmt.Errorf("product %s belongs to another seller: %w", productID, apperr.ErrForbidden)
	}

	return s.repo.Delete(ctx, productID)
}
