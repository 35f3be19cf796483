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

type ProductHandler struct {
	Handler
	service port.Service
}

func NewProductHandler(service port.Service, logger *zap.Logger) (*ProductHandler, error) {
	return &ProductHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type productResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OfferPrice  *float64  `json:"offerPrice"`
	Images      []string  `json:"images"`
	Brand       string    `json:"brand"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newProductResponse(p *domain.Product) productResponse {
	price, _ := p.Price.Float64()
	resp := productResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Images:      p.Images,
		Brand:       p.Brand,
		Color:       p.Color,
		Category:    p.Category,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.OfferPrice.Valid {
		offer, _ := p.OfferPrice.Decimal.Float64()
		resp.OfferPrice = &offer
	}
	return resp
}

func newProductListResponse(list []*domain.Product) []productResponse {
	result := make([]productResponse, 0, len(list))
	for _, p := range list {
		result = append(result, newProductResponse(p))
	}
	return result
}

type productRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	OfferPrice  *float64 `json:"offerPrice"`
	Images      []string `json:"images"`
	Brand       string   `json:"brand"`
	Color       string   `json:"color"`
	Category    string   `json:"category" binding:"required"`
	Stock       int64    `json:"stock" binding:"required,gte=0"`
}

func (req *productRequest) toDomain() (*domain.Product, error) {
	price, err := decimal.NewFromFloat64(req.Price)
	if err != nil {
		return nil, domain.ErrBadRequest
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Images:      req.Images,
		Brand:       req.Brand,
		Color:       req.Color,
		Category:    req.Category,
		Stock:       req.Stock,
	}
	if req.OfferPrice != nil {
		offer, err := decimal.NewFromFloat64(*req.OfferPrice)
		if err != nil {
			return nil, domain.ErrBadRequest
		}
		product.OfferPrice = decimal.NullDecimal{Decimal: offer, Valid: true}
	}

	return product, nil
}

func (ph *ProductHandler) CreateProduct(ctx *gin.Context) {
	req := productRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	product, err := req.toDomain()
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	created, err := ph.service.CreateProduct(ctx, product)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccessWithStatus(ctx, gin.H{
		"success": true,
		"message": "Product created successfully",
		"product": newProductResponse(created),
	}, http.StatusCreated)
}

func (ph *ProductHandler) UpdateProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	req := productRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		ph.handleValidationError(ctx, err)
		return
	}

	product, err := req.toDomain()
	if err != nil {
		ph.handleValidationError(ctx, err)
		return
	}
	product.ID = productID

	updated, err := ph.service.UpdateProduct(ctx, product)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"product": newProductResponse(updated),
	})
}

func (ph *ProductHandler) DeleteProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	if err := ph.service.DeleteProduct(ctx, productID); err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func (ph *ProductHandler) GetProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	product, err := ph.service.GetProduct(ctx, productID)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{
		"success": true,
		"product": newProductResponse(product),
	})
}

func (ph *ProductHandler) ListProducts(ctx *gin.Context) {
	filter := port.ProductFilter{
		Search: ctx.Query("search"),
		Brand:  ctx.Query("brand"),
	}
	if category := ctx.Query("category"); category != "" && category != "all" {
		filter.Category = category
	}

	var err error
	filter.MinPrice, err = parsePriceQuery(ctx, "minPrice")
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}
	filter.MaxPrice, err = parsePriceQuery(ctx, "maxPrice")
	if err != nil {
		ph.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	list, err := ph.service.ListProducts(ctx, filter)
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{
		"success":  true,
		"count":    len(list),
		"products": newProductListResponse(list),
	})
}

func (ph *ProductHandler) ListProductsByCategory(ctx *gin.Context) {
	list, err := ph.service.ListProducts(ctx, port.ProductFilter{
		Category: ctx.Param("category"),
	})
	if err != nil {
		ph.handleError(ctx, err)
		return
	}

	ph.handleSuccess(ctx, gin.H{
		"success":  true,
		"count":    len(list),
		"products": newProductListResponse(list),
	})
}

func parsePriceQuery(ctx *gin.Context, name string) (decimal.NullDecimal, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	price, err := decimal.Parse(raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: price, Valid: true}, nil
}
