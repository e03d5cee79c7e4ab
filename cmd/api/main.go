package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	common_api "go-shop/internal/common/api"
	"go-shop/internal/clients/dummyjson"
	"go-shop/internal/clients/exchangerate"
	"go-shop/internal/config"
	"go-shop/internal/database"
	"go-shop/internal/features/cart"
	"go-shop/internal/features/catalog"
	"go-shop/internal/features/dashboard"
	"go-shop/internal/features/history"
	"go-shop/internal/features/sync"
	"go-shop/internal/logger"
	"go-shop/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// NewSessionStore backs the cart with cookie sessions.
func NewSessionStore() *session.Store {
	return session.New()
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeSchema creates the relational tables on startup.
func InitializeSchema(lc fx.Lifecycle, db *sql.DB) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return database.EnsureSchema(ctx, db)
		},
	})
}

// StartScheduler runs the periodic synchronization when configured.
func StartScheduler(lc fx.Lifecycle, scheduler *sync.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return scheduler.Stop()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,
			NewSessionStore,

			// Initialize Databases
			database.NewMongo,
			database.NewPostgres,

			// Remote API clients
			dummyjson.NewClient,
			exchangerate.NewClient,

			// Initialize Repository
			history.NewHistoryRepository,
			sync.NewSyncedProductRepository,
			catalog.NewProductRepository,
			cart.NewCartRepository,

			// Initialize Service
			history.NewHistoryService,
			sync.NewSyncService,
			sync.NewScheduler,
			catalog.NewProductService,
			cart.NewCartService,
			dashboard.NewDashboardService,

			// Interface Adapters to satisfy Fx
			func(s history.HistoryService) history.Recorder { return s },
			func(c *dummyjson.Client) sync.ProductFetcher { return c },
			func(c *dummyjson.Client) catalog.RemoteFetcher { return c },
			func(c *exchangerate.Client) sync.RateFetcher { return c },
			func(c *exchangerate.Client) sync.RateConverter { return c },

			// Initialize Controller
			history.NewHistoryController,
			sync.NewSyncController,
			catalog.NewProductController,
			cart.NewCartController,
			dashboard.NewDashboardController,

			// Initialize API Routes
			AsRoute(history.NewHistoryApi),
			AsRoute(sync.NewSyncApi),
			AsRoute(catalog.NewCatalogApi),
			AsRoute(cart.NewCartApi),
			AsRoute(dashboard.NewDashboardApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			InitializeSchema,
			RegisterAllRoutesWithAnnotation,
			StartScheduler,
			StartServer,
		),
	)

	app.Run()
}
