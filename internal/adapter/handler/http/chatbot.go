package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

type ChatbotHandler struct {
	Handler
	service port.Service
}

func NewChatbotHandler(service port.Service, logger *zap.Logger) (*ChatbotHandler, error) {
	return &ChatbotHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type chatMessageRequest struct {
	From string `json:"from" binding:"required,oneof=user bot"`
	Text string `json:"text" binding:"required"`
}

type chatRequest struct {
	Messages []chatMessageRequest `json:"messages" binding:"required,min=1,dive"`
}

func (ch *ChatbotHandler) Chat(ctx *gin.Context) {
	req := chatRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	messages := make([]domain.ChatMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, domain.ChatMessage{From: m.From, Text: m.Text})
	}

	reply, err := ch.service.Chat(ctx, messages)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, gin.H{"reply": reply})
}
