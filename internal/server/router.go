package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/voltstack/commerce-backend/internal/handlers"
	"github.com/voltstack/commerce-backend/internal/middleware"
	"github.com/voltstack/commerce-backend/internal/observability"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	Metrics         *observability.Metrics
	TracingEnabled  bool
	ServiceName     string
	AllowedOrigins  []string
	ProductHandler  *handlers.ProductHandler
	OrderHandler    *handlers.OrderHandler
	CustomerHandler *handlers.CustomerHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.RequestMetrics(cfg.Metrics))
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware(cfg.ServiceName))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.POST("", cfg.ProductHandler.Create)
			products.GET("", cfg.ProductHandler.List)
			products.POST("/:id/activate", cfg.ProductHandler.Activate)
			products.POST("/:id/deactivate", cfg.ProductHandler.Deactivate)
			products.PATCH("/:id/stock", cfg.ProductHandler.UpdateStock)
			products.DELETE("/:id", cfg.ProductHandler.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", cfg.OrderHandler.Place)
			orders.GET("", cfg.OrderHandler.List)
			orders.GET("/:id", cfg.OrderHandler.Get)
			orders.POST("/:id/items", cfg.OrderHandler.AddItem)
			orders.POST("/:id/confirm", cfg.OrderHandler.Confirm)
			orders.POST("/:id/ship", cfg.OrderHandler.Ship)
			orders.POST("/:id/cancel", cfg.OrderHandler.Cancel)
		}

		customers := api.Group("/customers")
		{
			customers.POST("", cfg.CustomerHandler.Create)
			customers.PUT("/:id/name", cfg.CustomerHandler.Rename)
			customers.PUT("/:id/address", cfg.CustomerHandler.Relocate)
		}
	}

	return router
}
