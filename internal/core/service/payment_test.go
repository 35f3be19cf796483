package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"github.com/sgladkov/storefront/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
)

func TestService_CreateCheckoutSession(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	gateway := mock.NewMockPaymentGateway(mockCtrl)
	chatModel := mock.NewMockChatModel(mockCtrl)

	phone := testProduct("Phone", "500.00", 10)
	phone.Description = "A phone"
	cable := testProduct("Cable", "10.00", 100)
	// the cable went on sale after the order was placed
	cable.OfferPrice = decimal.NullDecimal{Decimal: decimal.MustParse("7.50"), Valid: true}

	order := &domain.Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Items: []domain.OrderItem{
			{ProductID: phone.ID, Quantity: 1},
			{ProductID: cable.ID, Quantity: 2},
		},
		// frozen at checkout from the pre-sale prices
		TotalPrice: decimal.MustParse("520.00"),
		Status:     domain.OrderStatusPending,
	}

	repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(order, nil)
	repo.EXPECT().ReadProduct(gomock.Any(), phone.ID).Return(phone, nil)
	repo.EXPECT().ReadProduct(gomock.Any(), cable.ID).Return(cable, nil)
	gateway.EXPECT().CreateSession(gomock.Any(), order.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, items []port.SessionLineItem) (*port.CheckoutSession, error) {
			assert.Equal(t, []port.SessionLineItem{
				{Name: "Phone", Description: "A phone", UnitAmount: 50000, Quantity: 1},
				{Name: "Cable", UnitAmount: 750, Quantity: 2},
			}, items)
			return &port.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
		})

	s := newTestService(t, repo, gateway, chatModel)

	url, err := s.CreateCheckoutSession(context.Background(), order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_test_1", url)

	// the session charged live prices while the stored total kept the frozen
	// ones, so both remain inspectable side by side
	assert.Equal(t, decimal.MustParse("520.00"), order.TotalPrice)
}

func TestService_CreateCheckoutSession_OrderMissing(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	gateway := mock.NewMockPaymentGateway(mockCtrl)
	chatModel := mock.NewMockChatModel(mockCtrl)

	orderID := uuid.New()
	repo.EXPECT().ReadOrder(gomock.Any(), orderID).Return(nil, domain.ErrDataNotFound)

	s := newTestService(t, repo, gateway, chatModel)

	url, err := s.CreateCheckoutSession(context.Background(), orderID)
	assert.Empty(t, url)
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestService_VerifyPayment(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	orderID := uuid.New()
	order := &domain.Order{
		ID:     orderID,
		Status: domain.OrderStatusPending,
	}
	paidOrder := &domain.Order{
		ID:     orderID,
		Status: domain.OrderStatusPaid,
		IsPaid: true,
	}

	type verifyTest struct {
		name     string
		mock     func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway)
		expOrder *domain.Order
		expPaid  bool
		expError error
	}

	tests := []verifyTest{
		{
			name: "Paid session marks the order",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_1").Return(&port.SessionStatus{
					PaymentStatus:   port.PaymentStatusPaid,
					PaymentIntentID: "pi_1",
					PayerEmail:      "buyer@example.com",
					OrderID:         orderID.String(),
				}, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), orderID).Return(order, nil)
				repo.EXPECT().MarkOrderPaid(gomock.Any(), orderID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, result domain.PaymentResult) (*domain.Order, error) {
						assert.Equal(t, "pi_1", result.ID)
						assert.Equal(t, port.PaymentStatusPaid, result.Status)
						assert.Equal(t, "buyer@example.com", result.EmailAddress)
						assert.NotEmpty(t, result.UpdateTime)
						return paidOrder, nil
					})
			},
			expOrder: paidOrder,
			expPaid:  true,
		},
		{
			name: "Re-verifying a paid order is a no-op success",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_1").Return(&port.SessionStatus{
					PaymentStatus: port.PaymentStatusPaid,
					OrderID:       orderID.String(),
				}, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), orderID).Return(paidOrder, nil)
			},
			expOrder: paidOrder,
			expPaid:  true,
		},
		{
			name: "Unpaid session reports not paid",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_1").Return(&port.SessionStatus{
					PaymentStatus: "unpaid",
					OrderID:       orderID.String(),
				}, nil)
			},
			expOrder: nil,
			expPaid:  false,
		},
		{
			name: "Bad order correlation",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_1").Return(&port.SessionStatus{
					PaymentStatus: port.PaymentStatusPaid,
					OrderID:       "not-a-uuid",
				}, nil)
			},
			expOrder: nil,
			expPaid:  false,
			expError: domain.ErrGateway,
		},
		{
			name: "Order missing",
			mock: func(repo *mock.MockRepository, gateway *mock.MockPaymentGateway) {
				gateway.EXPECT().RetrieveSession(gomock.Any(), "cs_1").Return(&port.SessionStatus{
					PaymentStatus: port.PaymentStatusPaid,
					OrderID:       orderID.String(),
				}, nil)
				repo.EXPECT().ReadOrder(gomock.Any(), orderID).Return(nil, domain.ErrDataNotFound)
			},
			expOrder: nil,
			expPaid:  false,
			expError: domain.ErrDataNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			gateway := mock.NewMockPaymentGateway(mockCtrl)
			chatModel := mock.NewMockChatModel(mockCtrl)
			test.mock(repo, gateway)

			s := newTestService(t, repo, gateway, chatModel)

			result, paid, err := s.VerifyPayment(context.Background(), "cs_1")

			assert.Equal(t, test.expOrder, result)
			assert.Equal(t, test.expPaid, paid)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
