package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/voltstack/commerce-backend/internal/commands"
	"github.com/voltstack/commerce-backend/internal/data/db"
	"github.com/voltstack/commerce-backend/internal/data/repos"
	"github.com/voltstack/commerce-backend/internal/data/uow"
	"github.com/voltstack/commerce-backend/internal/handlers"
	"github.com/voltstack/commerce-backend/internal/observability"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
	"github.com/voltstack/commerce-backend/internal/platform/rediscache"
	"github.com/voltstack/commerce-backend/internal/server"
)

// App owns the wired object graph. Construction is explicit and ordered:
// config, tracing, database, cache, repos, command services, handlers,
// router.
type App struct {
	Log        *logger.Logger
	Config     Config
	DB         *db.Service
	Dispatcher *commands.Dispatcher
	Router     *gin.Engine

	shutdownTracing func(context.Context) error
}

func New(ctx context.Context, log *logger.Logger) (*App, error) {
	cfg := LoadConfig(log)

	shutdownTracing := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	})

	log.Info("Connecting to database...")
	dbService, err := db.New(log)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		return nil, fmt.Errorf("database migration: %w", err)
	}
	handle := dbService.DB()

	if cfg.SeedOnStart {
		if err := db.Seed(ctx, handle, log); err != nil {
			log.Warn("Seeding failed", "error", err)
		}
	}

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	cache := rediscache.New(log)

	log.Info("Setting up repos...")
	productRepo := repos.NewProductRepo(handle, log)
	orderRepo := repos.NewOrderRepo(handle, log)
	customerRepo := repos.NewCustomerRepo(handle, log)

	log.Info("Setting up command services...")
	deps := uow.Deps{DB: handle, Hooks: uow.NewMetricsHooks(metrics)}.WithDefaults()
	productCommands := commands.NewProductCommands(deps, productRepo, cache, log)
	orderCommands := commands.NewOrderCommands(deps, orderRepo, productRepo, customerRepo, cache, log)
	customerCommands := commands.NewCustomerCommands(deps, customerRepo, log)
	dispatcher := commands.NewDispatcher(productCommands, orderCommands, customerCommands)

	log.Info("Setting up handlers and router...")
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		TracingEnabled:  observability.TracingEnabled(),
		ServiceName:     cfg.ServiceName,
		AllowedOrigins:  cfg.CORSOrigins,
		ProductHandler:  handlers.NewProductHandler(log, dispatcher),
		OrderHandler:    handlers.NewOrderHandler(log, dispatcher),
		CustomerHandler: handlers.NewCustomerHandler(log, dispatcher),
	})

	return &App{
		Log:             log,
		Config:          cfg,
		DB:              dbService,
		Dispatcher:      dispatcher,
		Router:          router,
		shutdownTracing: shutdownTracing,
	}, nil
}

// Run blocks serving HTTP until the listener fails.
func (a *App) Run() error {
	fmt.Printf("Server listening on :%s\n", a.Config.Port)
	return a.Router.Run(":" + a.Config.Port)
}

// Close flushes tracing; safe to call when tracing never started.
func (a *App) Close() {
	if a.shutdownTracing == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.shutdownTracing(ctx)
}
