package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
	"go.uber.org/zap"
)

func (s *Service) GetCart(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	items, err := s.repo.ListCart(ctx, userID)
	if err != nil {
		s.logger.Error("List cart", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// AddToCart accumulates quantity onto an existing row. The requested quantity
// is checked against current stock; the hard reservation happens at checkout,
// not here.
func (s *Service) AddToCart(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int64) ([]*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, domain.ErrBadRequest
	}

	product, err := s.repo.ReadProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, &domain.ProductNotFoundError{ProductID: productID.String()}
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, &domain.InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock,
			Requested:   quantity,
		}
	}

	if err := s.repo.AddCartItem(ctx, userID, productID, quantity); err != nil {
		s.logger.Error("Add cart item", zap.Error(err))
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

func (s *Service) UpdateCartQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int64) ([]*domain.CartItem, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, userID, productID)
	}

	product, err := s.repo.ReadProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, &domain.ProductNotFoundError{ProductID: productID.String()}
		}
		return nil, err
	}
	if product.Stock < quantity {
		return nil, &domain.InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock,
			Requested:   quantity,
		}
	}

	if err := s.repo.SetCartQuantity(ctx, userID, productID, quantity); err != nil {
		s.logger.Error("Set cart quantity", zap.Error(err))
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

func (s *Service) RemoveFromCart(ctx context.Context, userID uuid.UUID, productID uuid.UUID) ([]*domain.CartItem, error) {
	if err := s.repo.RemoveCartItem(ctx, userID, productID); err != nil {
		s.logger.Error("Remove cart item", zap.Error(err))
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

func (s *Service) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.ClearCart(ctx, userID); err != nil {
		s.logger.Error("Clear cart", zap.Error(err))
		return err
	}
	return nil
}
