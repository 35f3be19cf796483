package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

// CreateCheckoutSession builds a hosted payment session for an existing
// order. Session lines are priced from the live catalog (offer price when
// set), not from the order's frozen total, matching the storefront's
// behavior of charging the current price at payment time.
func (s *Service) CreateCheckoutSession(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	items := make([]port.SessionLineItem, 0, len(order.Items))
	for _, item := range order.Items {
		product, err := s.repo.ReadProduct(ctx, item.ProductID)
		if err != nil {
			return "", err
		}
		if item.Quantity < 1 {
			return "", fmt.Errorf("%w: product %s", domain.ErrInvalidLineItem, product.Name)
		}
		unit, err := priceInCents(product.EffectivePrice())
		if err != nil {
			return "", fmt.Errorf("%w: product %s", domain.ErrInvalidLineItem, product.Name)
		}
		items = append(items, port.SessionLineItem{
			Name:        product.Name,
			Description: product.Description,
			UnitAmount:  unit,
			Quantity:    item.Quantity,
		})
	}

	session, err := s.gateway.CreateSession(ctx, order.ID, items)
	if err != nil {
		s.logger.Error("Create checkout session", zap.Error(err))
		return "", err
	}

	return session.URL, nil
}

// VerifyPayment reconciles a hosted session outcome with the order it was
// created for. Confirmation is idempotent: an already-paid order is a no-op
// success, so the client may safely re-verify on page refresh.
func (s *Service) VerifyPayment(ctx context.Context, sessionID string) (*domain.Order, bool, error) {
	status, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		s.logger.Error("Retrieve checkout session", zap.Error(err))
		return nil, false, err
	}

	if status.PaymentStatus != port.PaymentStatusPaid {
		return nil, false, nil
	}

	orderID, err := uuid.Parse(status.OrderID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad order correlation %q", domain.ErrGateway, status.OrderID)
	}

	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, false, err
	}

	if order.IsPaid {
		return order, true, nil
	}

	paid, err := s.repo.MarkOrderPaid(ctx, orderID, domain.PaymentResult{
		ID:           status.PaymentIntentID,
		Status:       status.PaymentStatus,
		UpdateTime:   time.Now().UTC().Format(time.RFC3339),
		EmailAddress: status.PayerEmail,
	})
	if err != nil {
		s.logger.Error("Mark order paid", zap.Error(err))
		return nil, false, err
	}

	return paid, true, nil
}

// priceInCents converts a catalog price to the smallest currency unit.
func priceInCents(price decimal.Decimal) (int64, error) {
	whole, frac, ok := price.Int64(2)
	if !ok || price.IsNeg() {
		return 0, domain.ErrInvalidLineItem
	}
	return whole*100 + frac, nil
}
