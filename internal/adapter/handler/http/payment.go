package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Handler
	service port.Service
}

func NewPaymentHandler(service port.Service, logger *zap.Logger) (*PaymentHandler, error) {
	return &PaymentHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type createSessionRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

func (ph *PaymentHandler) CreateCheckoutSession(ctx *gin.Context) {
	req := createSessionRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	url, err := ph.service.CreateCheckoutSession(ctx, orderID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{"url": url})
}

type verifyPaymentRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

func (ph *PaymentHandler) VerifyPayment(ctx *gin.Context) {
	req := verifyPaymentRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	order, paid, err := ph.service.VerifyPayment(ctx, req.SessionID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	if !paid {
		ph.handleSuccess(ctx, gin.H{"success": false})
		return
	}

	ph.handleSuccess(ctx, gin.H{
		"success": true,
		"order":   newOrderResponse(order),
	})
}
