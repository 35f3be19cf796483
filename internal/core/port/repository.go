package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/sgladkov/storefront/internal/core/domain"
)

// ProductFilter narrows catalog listings. Zero values mean "no constraint".
type ProductFilter struct {
	Category string
	Search   string
	Brand    string
	MinPrice decimal.NullDecimal
	MaxPrice decimal.NullDecimal
}

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Product
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	ReadProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	// Inventory ledger. DecrementStock is a single conditional update that
	// fails with InsufficientStockError instead of driving stock negative.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error
	IncrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
	ReadOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	MarkOrderPaid(ctx context.Context, orderID uuid.UUID, result domain.PaymentResult) (*domain.Order, error)
	MarkOrderDelivered(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)

	// Cart
	ListCart(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error)
	AddCartItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int64) error
	SetCartQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int64) error
	RemoveCartItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
