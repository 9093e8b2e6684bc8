// @title                       Storefront API
// @version                     1.0
// @description                 Catalogue, reviews, user profiles, orders and payments for the storefront.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/seatech/storefront-api/internal/api"
	"github.com/seatech/storefront-api/internal/api/metrics"
	"github.com/seatech/storefront-api/internal/core/ports"
	"github.com/seatech/storefront-api/internal/core/service"
	"github.com/seatech/storefront-api/internal/infrastructure/db/mongo"
	"github.com/seatech/storefront-api/internal/infrastructure/db/redis"
	"github.com/seatech/storefront-api/internal/infrastructure/http/handlers"
	"github.com/seatech/storefront-api/internal/infrastructure/payment"
	"github.com/seatech/storefront-api/internal/infrastructure/queue"
	"github.com/seatech/storefront-api/internal/pkg/config"
	"github.com/seatech/storefront-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "storefront-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	checks := map[string]handlers.Pinger{
		"mongodb": handlers.PingFunc(func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }),
		"redis":   handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
	}

	// --- Order events (optional) ---
	var (
		events     ports.EventSink
		dispatcher *queue.Dispatcher
		publisher  *queue.AMQPPublisher
	)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if cfg.AMQP.URL != "" {
		publisher, err = queue.DialAMQP(cfg.AMQP.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
		}
		dispatcher = queue.NewDispatcher(cfg.AMQP.Workers, publisher, logger.Component("dispatcher"))
		dispatcher.Start(workerCtx)
		events = dispatcher
		checks["rabbitmq"] = publisher
	} else {
		log.Warn().Msg("AMQP_URL not set; order events are not published")
	}

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	productRepo := mongo.NewProductRepository(db)
	reviewRepo := mongo.NewReviewRepository(db)
	orderRepo := mongo.NewOrderRepository(db)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	orders := service.NewOrderService(
		orderRepo,
		productRepo,
		redis.NewPaymentDedup(rdb),
		events,
		service.FulfillmentOptions{
			SerializeInventory: cfg.Fulfillment.SerializeInventory,
			RejectOversell:     cfg.Fulfillment.RejectOversell,
			MaxAttempts:        cfg.Fulfillment.MaxAttempts,
		},
		logger.Component("orders"),
	)

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	e := api.NewRouter(api.Dependencies{
		Tokens:   tokens,
		Roles:    userRepo,
		Auth:     service.NewAuthService(userRepo, tokens, logger.Component("auth")),
		Users:    service.NewUserService(userRepo, logger.Component("users")),
		Products: service.NewProductService(productRepo, logger.Component("products")),
		Reviews:  service.NewReviewService(reviewRepo, logger.Component("reviews")),
		Orders:   orders,
		Payments: service.NewPaymentService(payment.NewStripeGateway(cfg.Stripe.SecretKey), logger.Component("payments")),
		Checks:   checks,
		Registry: registry,
		Logger:   log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// Requests are drained; let the workers flush what was enqueued.
	if dispatcher != nil {
		dispatcher.Close()
		dispatcher.Wait()
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("rabbitmq close")
		}
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	log.Info().Msg("server stopped")
}
