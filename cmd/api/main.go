package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/artesanos-backend/api/routes"
	"github.com/angelmondragon/artesanos-backend/internal/auth"
	"github.com/angelmondragon/artesanos-backend/internal/catalog"
	"github.com/angelmondragon/artesanos-backend/internal/dashboard"
	"github.com/angelmondragon/artesanos-backend/internal/favorites"
	"github.com/angelmondragon/artesanos-backend/internal/notifications"
	"github.com/angelmondragon/artesanos-backend/internal/orders"
	"github.com/angelmondragon/artesanos-backend/internal/products"
	"github.com/angelmondragon/artesanos-backend/internal/reviews"
	"github.com/angelmondragon/artesanos-backend/internal/sales"
	"github.com/angelmondragon/artesanos-backend/internal/stores"
	"github.com/angelmondragon/artesanos-backend/internal/users"
	"github.com/angelmondragon/artesanos-backend/pkg/auth/session"
	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	"github.com/angelmondragon/artesanos-backend/pkg/logger"
	"github.com/angelmondragon/artesanos-backend/pkg/metrics"
	"github.com/angelmondragon/artesanos-backend/pkg/migrate"
	"github.com/angelmondragon/artesanos-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	deps, err := buildServices(cfg, dbClient, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps.Config = cfg
	deps.Logger = logg
	deps.DB = dbClient
	deps.Cache = redisClient
	deps.Sessions = sessionManager
	deps.Gatherer = registry
	deps.Metrics = metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"sqlite": cfg.FeatureFlags.UseSQLite,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
		return
	case <-stop:
	}

	logg.Info(ctx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}

func buildServices(cfg *config.Config, dbClient *db.Client, sessionManager *session.Manager) (routes.Dependencies, error) {
	var deps routes.Dependencies
	var errs error

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		SessionConfig:  cfg.Session,
	})
	errs = multierr.Append(errs, err)
	deps.Auth = authService

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	errs = multierr.Append(errs, err)
	deps.Register = registerService

	catalogService, err := catalog.NewService(dbClient, cfg.Catalog)
	errs = multierr.Append(errs, err)
	deps.Catalog = catalogService

	storeService, err := stores.NewService(dbClient)
	errs = multierr.Append(errs, err)
	deps.Stores = storeService

	productService, err := products.NewService(dbClient)
	errs = multierr.Append(errs, err)
	deps.Products = productService

	favoriteService, err := favorites.NewService(dbClient)
	errs = multierr.Append(errs, err)
	deps.Favorites = favoriteService

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()), notifications.NewRepository(dbClient.DB()), dbClient)
	errs = multierr.Append(errs, err)
	deps.Orders = orderService

	reviewService, err := reviews.NewService(reviews.ServiceParams{DB: dbClient, Rules: cfg.Reviews})
	errs = multierr.Append(errs, err)
	deps.Reviews = reviewService

	saleService, err := sales.NewService(dbClient)
	errs = multierr.Append(errs, err)
	deps.Sales = saleService

	dashboardService, err := dashboard.NewService(dbClient)
	errs = multierr.Append(errs, err)
	deps.Dashboard = dashboardService

	notificationService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	errs = multierr.Append(errs, err)
	deps.Notifications = notificationService

	return deps, errs
}
