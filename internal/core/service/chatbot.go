package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

const storeContextPreamble = `You are a helpful ecommerce assistant for an ecommerce website.

Store info:
- Categories: Headphones, Gadgets, Electronics
- Your goals:
  - Help users find products
  - Answer product-related questions
  - Recommend suitable products from the catalog
  - Be concise, friendly, and honest
  - Never invent products that are not listed
- Product list:
`

// Chat forwards the most recent conversation turns plus the cached store
// context to the language model.
func (s *Service) Chat(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", domain.ErrBadRequest
	}

	storeCtx, err := s.storeContext.get(ctx, s.buildStoreContext)
	if err != nil {
		s.logger.Error("Build store context", zap.Error(err))
		return "", err
	}

	if len(messages) > s.chatMemory {
		messages = messages[len(messages)-s.chatMemory:]
	}

	reply, err := s.chatModel.GenerateReply(ctx, storeCtx, messages)
	if err != nil {
		s.logger.Error("Generate chat reply", zap.Error(err))
		return "", err
	}

	return reply, nil
}

func (s *Service) buildStoreContext(ctx context.Context) (string, error) {
	products, err := s.repo.ListProducts(ctx, port.ProductFilter{})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(storeContextPreamble)
	for _, p := range products {
		price, _ := p.EffectivePrice().Float64()
		fmt.Fprintf(&b, "• %s | $%.2f | Category: %s\n  %s\n", p.Name, price, p.Category, p.Description)
	}

	return b.String(), nil
}
