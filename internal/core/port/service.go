package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
)

type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, email string, password string) (string, *domain.User, error)

	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	GetCart(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error)
	AddToCart(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int64) ([]*domain.CartItem, error)
	UpdateCartQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int64) ([]*domain.CartItem, error)
	RemoveFromCart(ctx context.Context, userID uuid.UUID, productID uuid.UUID) ([]*domain.CartItem, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error

	PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	DeliverOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)

	CreateCheckoutSession(ctx context.Context, orderID uuid.UUID) (string, error)
	VerifyPayment(ctx context.Context, sessionID string) (*domain.Order, bool, error)

	Chat(ctx context.Context, messages []domain.ChatMessage) (string, error)
}
