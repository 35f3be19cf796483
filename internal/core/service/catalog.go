package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	now := time.Now()
	product.ID = uuid.New()
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.Brand == "" {
		product.Brand = "Generic"
	}
	if product.Color == "" {
		product.Color = "Not specified"
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		s.logger.Error("Create product", zap.Error(err))
		return nil, err
	}

	// the chatbot's catalog summary is stale now
	s.storeContext.invalidate()

	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	existing, err := s.repo.ReadProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	if len(product.Images) == 0 {
		product.Images = existing.Images
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		s.logger.Error("Update product", zap.Error(err))
		return nil, err
	}

	s.storeContext.invalidate()

	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	err := s.repo.DeleteProduct(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Error("Delete product", zap.Error(err))
		}
		return err
	}

	s.storeContext.invalidate()

	return nil
}

func (s *Service) GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	return s.repo.ReadProduct(ctx, productID)
}

func (s *Service) ListProducts(ctx context.Context, filter port.ProductFilter) ([]*domain.Product, error) {
	list, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		s.logger.Error("List products", zap.Error(err))
		return nil, err
	}
	return list, nil
}
