package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
)

func TestService_CreateProduct_Defaults(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	gateway := mock.NewMockPaymentGateway(mockCtrl)
	chatModel := mock.NewMockChatModel(mockCtrl)

	repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Product) (*domain.Product, error) {
			assert.NotEqual(t, uuid.Nil, p.ID)
			assert.Equal(t, "Generic", p.Brand)
			assert.Equal(t, "Not specified", p.Color)
			assert.False(t, p.CreatedAt.IsZero())
			return p, nil
		})

	s := newTestService(t, repo, gateway, chatModel)

	created, err := s.CreateProduct(context.Background(), &domain.Product{Name: "Buds"})
	assert.NoError(t, err)
	assert.Equal(t, "Buds", created.Name)
}

func TestService_UpdateProduct_PreservesHistory(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	gateway := mock.NewMockPaymentGateway(mockCtrl)
	chatModel := mock.NewMockChatModel(mockCtrl)

	existing := testProduct("Phone", "499.99", 10)
	existing.Images = []string{"phone.jpg"}
	existing.CreatedAt = time.Now().Add(-24 * time.Hour)

	repo.EXPECT().ReadProduct(gomock.Any(), existing.ID).Return(existing, nil)
	repo.EXPECT().UpdateProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Product) (*domain.Product, error) {
			assert.Equal(t, existing.CreatedAt, p.CreatedAt)
			// an update without images keeps the stored ones
			assert.Equal(t, existing.Images, p.Images)
			assert.True(t, p.UpdatedAt.After(p.CreatedAt))
			return p, nil
		})

	s := newTestService(t, repo, gateway, chatModel)

	_, err := s.UpdateProduct(context.Background(), &domain.Product{ID: existing.ID, Name: "Phone v2"})
	assert.NoError(t, err)
}

func TestService_DeleteProduct_NotFound(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	gateway := mock.NewMockPaymentGateway(mockCtrl)
	chatModel := mock.NewMockChatModel(mockCtrl)

	productID := uuid.New()
	repo.EXPECT().DeleteProduct(gomock.Any(), productID).Return(domain.ErrDataNotFound)

	s := newTestService(t, repo, gateway, chatModel)

	err := s.DeleteProduct(context.Background(), productID)
	assert.Equal(t, domain.ErrDataNotFound, err)
}
