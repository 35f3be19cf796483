package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
	"go.uber.org/zap"
)

// PlaceOrder validates every line against the live catalog before any
// mutation, persists the order, then reserves stock line by line through the
// inventory ledger. A decrement that fails (a concurrent checkout won the
// race) rolls the whole checkout back: already-applied decrements are
// restocked and the order record is removed.
func (s *Service) PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if len(order.Items) == 0 {
		return nil, domain.ErrNoOrderItems
	}

	for _, item := range order.Items {
		product, err := s.repo.ReadProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrDataNotFound) {
				return nil, &domain.ProductNotFoundError{ProductID: item.ProductID.String()}
			}
			s.logger.Error("Read product", zap.Error(err))
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, &domain.InsufficientStockError{
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   item.Quantity,
			}
		}
	}

	now := time.Now()
	order.ID = uuid.New()
	order.Status = domain.OrderStatusPending
	order.IsPaid = false
	order.IsDelivered = false
	order.CreatedAt = now
	order.UpdatedAt = now

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error("Create order", zap.Error(err))
		return nil, err
	}

	// The ledger decrement is conditional at the storage layer, so two
	// checkouts racing past the validation read cannot under-reserve stock.
	for i, item := range order.Items {
		if err := s.repo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.rollbackCheckout(ctx, created.ID, order.Items[:i])
			return nil, err
		}
	}

	return created, nil
}

// rollbackCheckout compensates a partially reserved checkout: restock what
// was already decremented, then remove the order record.
func (s *Service) rollbackCheckout(ctx context.Context, orderID uuid.UUID, decremented []domain.OrderItem) {
	for _, item := range decremented {
		if err := s.repo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error("Restock after failed checkout",
				zap.String("product", item.ProductID.String()), zap.Error(err))
		}
	}
	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		s.logger.Error("Remove order after failed checkout",
			zap.String("order", orderID.String()), zap.Error(err))
	}
}

func (s *Service) GetOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	list, err := s.repo.ListOrders(ctx)
	if err != nil {
		s.logger.Error("List orders", zap.Error(err))
		return nil, err
	}
	return list, nil
}

// DeliverOrder marks an order delivered. There is deliberately no guard on
// payment state: cash-on-delivery orders are delivered while still unpaid.
func (s *Service) DeliverOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.MarkOrderDelivered(ctx, orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrDataNotFound) {
			s.logger.Error("Mark order delivered", zap.Error(err))
		}
		return nil, err
	}
	return order, nil
}
