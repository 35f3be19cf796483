package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sgladkov/storefront/internal/adapter/config"
	"github.com/sgladkov/storefront/internal/adapter/metrics"
	"github.com/sgladkov/storefront/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	serverMetrics *metrics.ServerMetrics,
	userHandler *UserHandler,
	productHandler *ProductHandler,
	cartHandler *CartHandler,
	orderHandler *OrderHandler,
	paymentHandler *PaymentHandler,
	chatbotHandler *ChatbotHandler) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(serverMetrics.Middleware())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", userHandler.RegisterUser)
			auth.POST("/login", userHandler.LoginUser)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/category/:category", productHandler.ListProductsByCategory)
			products.GET("/:id", productHandler.GetProduct)

			admin := products.Group("")
			{
				admin.Use(authCheck(tokenService), adminCheck())
				admin.POST("", productHandler.CreateProduct)
				admin.PUT("/:id", productHandler.UpdateProduct)
				admin.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		cart := api.Group("/cart")
		{
			cart.Use(authCheck(tokenService))
			cart.GET("", cartHandler.GetCart)
			cart.POST("/add", cartHandler.AddToCart)
			cart.PUT("/update", cartHandler.UpdateCartQuantity)
			cart.DELETE("/remove", cartHandler.RemoveFromCart)
			cart.DELETE("/clear", cartHandler.ClearCart)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authCheck(tokenService))
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/myorders", orderHandler.ListMyOrders)

			admin := orders.Group("")
			{
				admin.Use(adminCheck())
				admin.GET("", orderHandler.ListAllOrders)
				admin.PATCH("/:id/deliver", orderHandler.DeliverOrder)
			}
		}

		stripe := api.Group("/stripe")
		{
			stripe.Use(authCheck(tokenService))
			stripe.POST("/create-checkout-session", paymentHandler.CreateCheckoutSession)
			stripe.POST("/verify-payment", paymentHandler.VerifyPayment)
		}

		chatbot := api.Group("/chatbot")
		{
			chatbot.Use(authCheck(tokenService))
			chatbot.POST("", chatbotHandler.Chat)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
