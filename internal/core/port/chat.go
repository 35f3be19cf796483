package port

import (
	"context"

	"github.com/sgladkov/storefront/internal/core/domain"
)

//go:generate mockgen -source=chat.go -destination=mock/chat.go -package=mock
type ChatModel interface {
	// GenerateReply sends the store context followed by the conversation and
	// returns the model's reply text.
	GenerateReply(ctx context.Context, storeContext string, messages []domain.ChatMessage) (string, error)
}
