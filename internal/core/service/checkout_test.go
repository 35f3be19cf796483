package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
)

func testProduct(name string, price string, stock int64) *domain.Product {
	return &domain.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.MustParse(price),
		Stock:    stock,
		Category: "Electronics",
	}
}

func TestService_PlaceOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	userID := uuid.New()
	phone := testProduct("Phone", "499.99", 10)
	cable := testProduct("Cable", "9.99", 100)

	type placeOrderTest struct {
		name     string
		order    domain.Order
		mock     prepareMocks
		expError error
	}

	tests := []placeOrderTest{
		{
			name:     "No items",
			order:    domain.Order{UserID: userID},
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrNoOrderItems,
		},
		{
			name: "Unknown product",
			order: domain.Order{
				UserID: userID,
				Items:  []domain.OrderItem{{ProductID: phone.ID, Quantity: 1}},
			},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadProduct(gomock.Any(), phone.ID).Return(nil, domain.ErrDataNotFound)
			},
			expError: &domain.ProductNotFoundError{ProductID: phone.ID.String()},
		},
		{
			name: "Insufficient stock rejects before any mutation",
			order: domain.Order{
				UserID: userID,
				Items:  []domain.OrderItem{{ProductID: phone.ID, Quantity: 11}},
			},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadProduct(gomock.Any(), phone.ID).Return(phone, nil)
			},
			expError: &domain.InsufficientStockError{ProductName: "Phone", Available: 10, Requested: 11},
		},
		{
			name: "Good order reserves every line",
			order: domain.Order{
				UserID: userID,
				Items: []domain.OrderItem{
					{ProductID: phone.ID, Quantity: 2},
					{ProductID: cable.ID, Quantity: 3},
				},
				TotalPrice: decimal.MustParse("1029.95"),
			},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadProduct(gomock.Any(), phone.ID).Return(phone, nil)
				repo.EXPECT().ReadProduct(gomock.Any(), cable.ID).Return(cable, nil)
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
						return o, nil
					})
				repo.EXPECT().DecrementStock(gomock.Any(), phone.ID, int64(2)).Return(nil)
				repo.EXPECT().DecrementStock(gomock.Any(), cable.ID, int64(3)).Return(nil)
			},
			expError: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			gateway := mock.NewMockPaymentGateway(mockCtrl)
			chatModel := mock.NewMockChatModel(mockCtrl)
			test.mock(repo)

			s := newTestService(t, repo, gateway, chatModel)

			result, err := s.PlaceOrder(context.Background(), &test.order)

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.NotEqual(t, uuid.Nil, result.ID)
				assert.Equal(t, domain.OrderStatusPending, result.Status)
				assert.False(t, result.IsPaid)
				assert.False(t, result.IsDelivered)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

// A concurrent checkout can win the race between the validation read and the
// ledger decrement. The loser must restock what it already reserved and
// remove its order record.
func TestService_PlaceOrder_CompensatesLostRace(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	gateway := mock.NewMockPaymentGateway(mockCtrl)
	chatModel := mock.NewMockChatModel(mockCtrl)

	userID := uuid.New()
	phone := testProduct("Phone", "499.99", 10)
	cable := testProduct("Cable", "9.99", 1)

	raceLoss := &domain.InsufficientStockError{ProductName: "Cable", Available: 0, Requested: 1}

	var createdID uuid.UUID
	repo.EXPECT().ReadProduct(gomock.Any(), phone.ID).Return(phone, nil)
	repo.EXPECT().ReadProduct(gomock.Any(), cable.ID).Return(cable, nil)
	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			createdID = o.ID
			return o, nil
		})
	repo.EXPECT().DecrementStock(gomock.Any(), phone.ID, int64(2)).Return(nil)
	repo.EXPECT().DecrementStock(gomock.Any(), cable.ID, int64(1)).Return(raceLoss)

	// compensation: restock the phone line, drop the order
	repo.EXPECT().IncrementStock(gomock.Any(), phone.ID, int64(2)).Return(nil)
	repo.EXPECT().DeleteOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, orderID uuid.UUID) error {
			assert.Equal(t, createdID, orderID)
			return nil
		})

	s := newTestService(t, repo, gateway, chatModel)

	result, err := s.PlaceOrder(context.Background(), &domain.Order{
		UserID: userID,
		Items: []domain.OrderItem{
			{ProductID: phone.ID, Quantity: 2},
			{ProductID: cable.ID, Quantity: 1},
		},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Five units in stock: an order for five drains it, the next order for one
// is rejected.
func TestService_PlaceOrder_DrainsStock(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	gateway := mock.NewMockPaymentGateway(mockCtrl)
	chatModel := mock.NewMockChatModel(mockCtrl)

	userID := uuid.New()
	gadget := testProduct("Gadget", "25.00", 5)

	repo.EXPECT().ReadProduct(gomock.Any(), gadget.ID).Return(gadget, nil)
	repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order) (*domain.Order, error) {
			return o, nil
		})
	repo.EXPECT().DecrementStock(gomock.Any(), gadget.ID, int64(5)).
		DoAndReturn(func(context.Context, uuid.UUID, int64) error {
			gadget.Stock = 0
			return nil
		})

	s := newTestService(t, repo, gateway, chatModel)

	first, err := s.PlaceOrder(context.Background(), &domain.Order{
		UserID: userID,
		Items:  []domain.OrderItem{{ProductID: gadget.ID, Quantity: 5}},
	})
	assert.NoError(t, err)
	assert.NotNil(t, first)

	repo.EXPECT().ReadProduct(gomock.Any(), gadget.ID).Return(gadget, nil)

	second, err := s.PlaceOrder(context.Background(), &domain.Order{
		UserID: userID,
		Items:  []domain.OrderItem{{ProductID: gadget.ID, Quantity: 1}},
	})
	assert.Nil(t, second)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestService_DeliverOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	orderID := uuid.New()
	deliveredAt := time.Now()
	delivered := &domain.Order{
		ID:          orderID,
		Status:      domain.OrderStatusDelivered,
		IsDelivered: true,
		DeliveredAt: &deliveredAt,
	}

	type deliverTest struct {
		name      string
		mock      prepareMocks
		expError  error
		expResult *domain.Order
	}

	tests := []deliverTest{
		{
			name: "Deliver good",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().MarkOrderDelivered(gomock.Any(), orderID).Return(delivered, nil)
			},
			expError:  nil,
			expResult: delivered,
		},
		{
			name: "Deliver missing order",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().MarkOrderDelivered(gomock.Any(), orderID).Return(nil, domain.ErrDataNotFound)
			},
			expError:  domain.ErrDataNotFound,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			gateway := mock.NewMockPaymentGateway(mockCtrl)
			chatModel := mock.NewMockChatModel(mockCtrl)
			test.mock(repo)

			s := newTestService(t, repo, gateway, chatModel)

			result, err := s.DeliverOrder(context.Background(), orderID)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}
