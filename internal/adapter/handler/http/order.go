package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type orderItemResponse struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

type shippingAddressResponse struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country,omitempty"`
}

type paymentResultResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

// orderResponse keeps the field names the storefront SPA already consumes.
type orderResponse struct {
	ID              string                  `json:"_id"`
	User            any                     `json:"user"`
	Products        []orderItemResponse     `json:"products"`
	ShippingAddress shippingAddressResponse `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	PaymentResult   *paymentResultResponse  `json:"paymentResult,omitempty"`
	TotalPrice      float64                 `json:"totalPrice"`
	IsPaid          bool                    `json:"isPaid"`
	PaidAt          *time.Time              `json:"paidAt,omitempty"`
	IsDelivered     bool                    `json:"isDelivered"`
	DeliveredAt     *time.Time              `json:"deliveredAt,omitempty"`
	OrderStatus     string                  `json:"orderStatus"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

func newOrderResponse(o *domain.Order) orderResponse {
	total, _ := o.TotalPrice.Float64()

	products := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		products = append(products, orderItemResponse{
			Product:  item.ProductID.String(),
			Quantity: item.Quantity,
		})
	}

	resp := orderResponse{
		ID:       o.ID.String(),
		User:     o.UserID.String(),
		Products: products,
		ShippingAddress: shippingAddressResponse{
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		TotalPrice:    total,
		IsPaid:        o.IsPaid,
		PaidAt:        o.PaidAt,
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   o.DeliveredAt,
		OrderStatus:   string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}

	// admin listings carry the owner's name
	if o.User != nil {
		resp.User = gin.H{"_id": o.User.ID.String(), "name": o.User.Name}
	}

	if o.PaymentResult != nil {
		resp.PaymentResult = &paymentResultResponse{
			ID:           o.PaymentResult.ID,
			Status:       o.PaymentResult.Status,
			UpdateTime:   o.PaymentResult.UpdateTime,
			EmailAddress: o.PaymentResult.EmailAddress,
		}
	}

	return resp
}

type orderItemRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

type shippingAddressRequest struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country"`
}

type createOrderRequest struct {
	Products        []orderItemRequest     `json:"products"`
	ShippingAddress shippingAddressRequest `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
	TotalPrice      float64                `json:"totalPrice" binding:"required,gt=0"`
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	req := createOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	if len(req.Products) == 0 {
		oh.handleError(ctx, domain.ErrNoOrderItems)
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Products))
	for _, item := range req.Products {
		productID, err := uuid.Parse(item.Product)
		if err != nil {
			oh.handleValidationError(ctx, domain.ErrBadRequest)
			return
		}
		items = append(items, domain.OrderItem{ProductID: productID, Quantity: item.Quantity})
	}

	total, err := decimal.NewFromFloat64(req.TotalPrice)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order := &domain.Order{
		UserID: getAuthPayload(ctx).UserID,
		Items:  items,
		ShippingAddress: domain.ShippingAddress{
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
		TotalPrice:    total,
	}

	created, err := oh.service.PlaceOrder(ctx, order)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, newOrderResponse(created), http.StatusCreated)
}

func (oh *OrderHandler) ListMyOrders(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.GetOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResponse(o))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) ListAllOrders(ctx *gin.Context) {
	list, err := oh.service.ListOrders(ctx)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]orderResponse, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResponse(o))
	}

	oh.handleSuccess(ctx, gin.H{
		"success": true,
		"count":   len(result),
		"orders":  result,
	})
}

func (oh *OrderHandler) DeliverOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.DeliverOrder(ctx, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResponse(order))
}
