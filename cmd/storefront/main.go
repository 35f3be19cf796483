package main

import (
	"context"
	"fmt"

	"github.com/sgladkov/storefront/internal/adapter/auth"
	"github.com/sgladkov/storefront/internal/adapter/client/genai"
	"github.com/sgladkov/storefront/internal/adapter/client/stripe"
	"github.com/sgladkov/storefront/internal/adapter/config"
	"github.com/sgladkov/storefront/internal/adapter/handler/http"
	"github.com/sgladkov/storefront/internal/adapter/logger"
	"github.com/sgladkov/storefront/internal/adapter/metrics"
	"github.com/sgladkov/storefront/internal/adapter/storage"
	"github.com/sgladkov/storefront/internal/adapter/storage/repository"
	"github.com/sgladkov/storefront/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	gateway, err := stripe.NewClient(conf.Stripe, log.Named("Stripe"))
	if err != nil {
		log.Error("stripe client creating error", zap.Error(err))
		return
	}
	chatModel, err := genai.NewClient(conf.Gemini, log.Named("Gemini"))
	if err != nil {
		log.Error("gemini client creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, tokenService, gateway, chatModel,
		conf.Gemini.MemoryLimit, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	productHandler, err := http.NewProductHandler(svc, log.Named("Product handler"))
	if err != nil {
		log.Error("product handler creating error", zap.Error(err))
		return
	}
	cartHandler, err := http.NewCartHandler(svc, log.Named("Cart handler"))
	if err != nil {
		log.Error("cart handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	paymentHandler, err := http.NewPaymentHandler(svc, log.Named("Payment handler"))
	if err != nil {
		log.Error("payment handler creating error", zap.Error(err))
		return
	}
	chatbotHandler, err := http.NewChatbotHandler(svc, log.Named("Chatbot handler"))
	if err != nil {
		log.Error("chatbot handler creating error", zap.Error(err))
		return
	}

	serverMetrics := metrics.NewServerMetrics("api")

	r, err := http.NewRouter(conf.HTTP, tokenService, serverMetrics,
		userHandler, productHandler, cartHandler, orderHandler, paymentHandler, chatbotHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
