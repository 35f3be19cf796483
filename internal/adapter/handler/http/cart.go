package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

type CartHandler struct {
	Handler
	service port.Service
}

func NewCartHandler(service port.Service, logger *zap.Logger) (*CartHandler, error) {
	return &CartHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type cartItemResponse struct {
	Product  productResponse `json:"product"`
	Quantity int64           `json:"quantity"`
}

func newCartResponse(items []*domain.CartItem) gin.H {
	result := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, cartItemResponse{
			Product:  newProductResponse(item.Product),
			Quantity: item.Quantity,
		})
	}
	return gin.H{"success": true, "cart": result}
}

func (ch *CartHandler) GetCart(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	items, err := ch.service.GetCart(ctx, userID)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newCartResponse(items))
}

type cartMutationRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int64  `json:"quantity"`
}

func (ch *CartHandler) AddToCart(ctx *gin.Context) {
	req := cartMutationRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		ch.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	userID := getAuthPayload(ctx).UserID

	items, err := ch.service.AddToCart(ctx, userID, productID, req.Quantity)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newCartResponse(items))
}

func (ch *CartHandler) UpdateCartQuantity(ctx *gin.Context) {
	req := cartMutationRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		ch.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	userID := getAuthPayload(ctx).UserID

	items, err := ch.service.UpdateCartQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newCartResponse(items))
}

func (ch *CartHandler) RemoveFromCart(ctx *gin.Context) {
	req := cartMutationRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ch.handleValidationError(ctx, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		ch.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	userID := getAuthPayload(ctx).UserID

	items, err := ch.service.RemoveFromCart(ctx, userID, productID)
	if err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, newCartResponse(items))
}

func (ch *CartHandler) ClearCart(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	if err := ch.service.ClearCart(ctx, userID); err != nil {
		ch.handleError(ctx, err)
		return
	}

	ch.handleSuccess(ctx, gin.H{"success": true, "message": "Cart cleared"})
}
