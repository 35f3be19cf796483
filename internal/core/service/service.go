package service

import (
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

const defaultChatMemory = 5

type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	gateway      port.PaymentGateway
	chatModel    port.ChatModel
	storeContext *storeContext
	chatMemory   int
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService,
	gateway port.PaymentGateway, chatModel port.ChatModel,
	chatMemory int, logger *zap.Logger) (*Service, error) {
	if chatMemory <= 0 {
		chatMemory = defaultChatMemory
	}
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		gateway:      gateway,
		chatModel:    chatModel,
		storeContext: newStoreContext(),
		chatMemory:   chatMemory,
		logger:       logger,
	}, nil
}
