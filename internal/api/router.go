package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/seatech/storefront-api/docs"
	"github.com/seatech/storefront-api/internal/api/handler"
	"github.com/seatech/storefront-api/internal/api/middleware"
	"github.com/seatech/storefront-api/internal/core/ports"
	"github.com/seatech/storefront-api/internal/infrastructure/http/handlers"
)

// Dependencies are the services the HTTP layer is wired against.
type Dependencies struct {
	Tokens ports.TokenVerifier
	Roles  ports.RoleLookup

	Auth     ports.AuthService
	Users    ports.UserService
	Products ports.ProductService
	Reviews  ports.ReviewService
	Orders   ports.OrderService
	Payments ports.PaymentService

	// Checks are pinged by the readiness probe.
	Checks map[string]handlers.Pinger
	// Registry receives HTTP metrics and is served on /metrics.
	// Nil disables both.
	Registry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORS())
	if deps.Registry != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "storefront",
			Subsystem:  "http",
			Registerer: deps.Registry,
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Registry,
		}))
	}

	authed := middleware.Auth(deps.Tokens)
	admin := middleware.AdminOnly(deps.Roles)

	// --- Auth & users ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)

	e.PUT("/auth/:email", authHandler.Login)
	e.GET("/users/me", userHandler.Me, authed)
	e.PUT("/users/me", userHandler.UpdateMe, authed)
	e.GET("/users", userHandler.List, authed, admin)
	e.GET("/users/:email/admin", userHandler.AdminStatus)
	e.PUT("/users/:email/admin", userHandler.Promote, authed, admin)
	e.DELETE("/users/:email", userHandler.Remove, authed, admin)

	// --- Catalogue ---
	productHandler := handler.NewProductHandler(deps.Products)
	reviewHandler := handler.NewReviewHandler(deps.Reviews)

	e.GET("/products", productHandler.List)
	e.GET("/admin/products", productHandler.List, authed, admin)
	e.GET("/products/:id", productHandler.Get, authed)
	e.GET("/products/:id/availability", productHandler.Availability, authed, admin)
	e.POST("/products", productHandler.Create, authed, admin)
	e.DELETE("/products/:id", productHandler.Delete, authed, admin)

	e.GET("/reviews", reviewHandler.List)
	e.GET("/reviews/latest", reviewHandler.Latest)
	e.POST("/reviews", reviewHandler.Create, authed)

	// --- Orders & payments ---
	orderHandler := handler.NewOrderHandler(deps.Orders)
	paymentHandler := handler.NewPaymentHandler(deps.Payments)

	e.POST("/orders", orderHandler.Place, authed)
	e.PUT("/orders/:id/payment", orderHandler.RecordPayment, authed)
	e.GET("/orders/mine", orderHandler.ListMine, authed)
	e.GET("/orders", orderHandler.ListAll, authed, admin)
	e.PUT("/orders/:id/deliver", orderHandler.Deliver, authed, admin)

	e.POST("/payments/intent", paymentHandler.CreateIntent, authed)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
