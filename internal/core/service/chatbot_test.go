package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
)

func TestService_Chat(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	phone := testProduct("Phone", "499.99", 10)
	catalog := []*domain.Product{phone}
	question := []domain.ChatMessage{{From: domain.ChatRoleUser, Text: "any phones?"}}

	t.Run("Empty conversation", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		chatModel := mock.NewMockChatModel(mockCtrl)

		s := newTestService(t, repo, gateway, chatModel)

		reply, err := s.Chat(context.Background(), nil)
		assert.Empty(t, reply)
		assert.Equal(t, domain.ErrBadRequest, err)
	})

	t.Run("Store context built once and reused", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		chatModel := mock.NewMockChatModel(mockCtrl)

		repo.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(catalog, nil).Times(1)
		chatModel.EXPECT().GenerateReply(gomock.Any(), gomock.Any(), question).
			DoAndReturn(func(_ context.Context, storeCtx string, _ []domain.ChatMessage) (string, error) {
				assert.Contains(t, storeCtx, "Phone")
				assert.Contains(t, storeCtx, "$499.99")
				return "Sure, we have the Phone.", nil
			}).Times(2)

		s := newTestService(t, repo, gateway, chatModel)

		for i := 0; i < 2; i++ {
			reply, err := s.Chat(context.Background(), question)
			assert.NoError(t, err)
			assert.Equal(t, "Sure, we have the Phone.", reply)
		}
	})

	t.Run("Catalog change invalidates the context", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		chatModel := mock.NewMockChatModel(mockCtrl)

		repo.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(catalog, nil).Times(2)
		chatModel.EXPECT().GenerateReply(gomock.Any(), gomock.Any(), question).Return("ok", nil).Times(2)
		repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *domain.Product) (*domain.Product, error) {
				return p, nil
			})

		s := newTestService(t, repo, gateway, chatModel)

		_, err := s.Chat(context.Background(), question)
		assert.NoError(t, err)

		_, err = s.CreateProduct(context.Background(), testProduct("Buds", "59.99", 20))
		assert.NoError(t, err)

		_, err = s.Chat(context.Background(), question)
		assert.NoError(t, err)
	})

	t.Run("Only the recent turns are forwarded", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		gateway := mock.NewMockPaymentGateway(mockCtrl)
		chatModel := mock.NewMockChatModel(mockCtrl)

		long := make([]domain.ChatMessage, 0, 8)
		for i := 0; i < 8; i++ {
			long = append(long, domain.ChatMessage{From: domain.ChatRoleUser, Text: fmt.Sprintf("turn %d", i)})
		}

		repo.EXPECT().ListProducts(gomock.Any(), gomock.Any()).Return(catalog, nil)
		chatModel.EXPECT().GenerateReply(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages []domain.ChatMessage) (string, error) {
				assert.Len(t, messages, 5)
				assert.Equal(t, "turn 3", messages[0].Text)
				assert.Equal(t, "turn 7", messages[4].Text)
				return "ok", nil
			})

		s := newTestService(t, repo, gateway, chatModel)

		_, err := s.Chat(context.Background(), long)
		assert.NoError(t, err)
	})
}
