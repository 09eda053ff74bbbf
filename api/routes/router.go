package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/artesanos-backend/api/controllers"
	"github.com/angelmondragon/artesanos-backend/api/middleware"
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
	"github.com/angelmondragon/artesanos-backend/pkg/auth/session"
	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/db"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	"github.com/angelmondragon/artesanos-backend/pkg/logger"
	"github.com/angelmondragon/artesanos-backend/pkg/metrics"
	"github.com/angelmondragon/artesanos-backend/pkg/redis"
)

// Cache is the Redis surface the HTTP layer needs: rate-limit counters,
// idempotency records and the readiness ping.
type Cache interface {
	redis.IdempotencyStore
	redis.Pinger
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Cache    Cache
	Sessions session.Checker
	Gatherer prometheus.Gatherer
	Metrics  *metrics.HTTPMetrics

	Auth          auth.Service
	Register      auth.RegisterService
	Catalog       catalog.Service
	Stores        stores.Service
	Products      products.Service
	Favorites     favorites.Service
	Orders        orders.Service
	Reviews       reviews.Service
	Sales         sales.Service
	Dashboard     dashboard.Service
	Notifications notifications.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	// A nil Cache must stay a nil interface so the middleware can skip itself.
	var idempotencyStore redis.IdempotencyStore
	var limiter interface {
		IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	}
	var cachePinger redis.Pinger
	if deps.Cache != nil {
		idempotencyStore = deps.Cache
		limiter = deps.Cache
		cachePinger = deps.Cache
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
		middleware.Session(cfg.Session, deps.Sessions, logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		0,
	)
	loginLimit := middleware.AuthRateLimit(loginPolicy, limiter, logg)
	registerLimit := middleware.AuthRateLimit(registerPolicy, limiter, logg)

	idempotent := middleware.Idempotency(idempotencyStore, middleware.DefaultIdempotencyTTL, logg)
	purchaseIdempotent := middleware.Idempotency(idempotencyStore, middleware.PurchaseIdempotencyTTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.DB, cachePinger, logg))
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	// Seller accounts.
	r.With(registerLimit).Post("/registro/", controllers.AuthRegister(deps.Register, enums.RoleArtisan, cfg.Session, logg))
	r.With(loginLimit).Post("/login/", controllers.AuthLogin(deps.Auth, enums.RoleArtisan, cfg.Session, logg))
	r.Post("/logout/", controllers.AuthLogout(deps.Auth, enums.RoleArtisan, cfg.Session, logg))

	r.Route("/compradores", func(r chi.Router) {
		r.Get("/", controllers.Catalog(deps.Catalog, logg))
		r.Get("/product/{productID}/", controllers.ProductDetail(deps.Catalog, logg))

		r.With(registerLimit).Post("/registro/", controllers.AuthRegister(deps.Register, enums.RoleBuyer, cfg.Session, logg))
		r.With(loginLimit).Post("/login/", controllers.AuthLogin(deps.Auth, enums.RoleBuyer, cfg.Session, logg))
		r.Post("/logout/", controllers.AuthLogout(deps.Auth, enums.RoleBuyer, cfg.Session, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin(cfg.Session.BuyerLoginURL))

			r.With(idempotent).Post("/product/{productID}/review/", controllers.AddReview(deps.Reviews, logg))
			r.Post("/product/{productID}/favorite/", controllers.ToggleFavorite(deps.Favorites, logg))
			r.With(purchaseIdempotent).Post("/product/{productID}/order/", controllers.CreateOrder(deps.Orders, logg))
			r.Get("/favorites/", controllers.ListFavorites(deps.Favorites, logg))
			r.Get("/orders/", controllers.BuyerOrders(deps.Orders, logg))

			r.Get("/notifications/", controllers.ListNotifications(deps.Notifications, logg))
			r.Post("/notifications/read-all/", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
			r.Post("/notifications/{notificationID}/read/", controllers.MarkNotificationRead(deps.Notifications, logg))
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin(cfg.Session.LoginPath))

		r.Get("/simular_venta/{productID}/", controllers.ProductDetail(deps.Catalog, logg))
		r.With(idempotent).Post("/simular_venta/{productID}/", controllers.SimulateSale(deps.Sales, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleArtisan, logg))

			r.Get("/crear_tienda/", controllers.StoreForm(deps.Stores, logg))
			r.Post("/crear_tienda/", controllers.StoreCreate(deps.Stores, logg))
			r.Get("/crear_producto/", controllers.ProductForm(deps.Stores, logg))
			r.Post("/crear_producto/", controllers.ProductCreate(deps.Products, logg))
			r.Get("/editar_producto/{productID}/", controllers.OwnedProduct(deps.Products, logg))
			r.Post("/editar_producto/{productID}/", controllers.ProductUpdate(deps.Products, logg))
			r.Get("/eliminar_producto/{productID}/", controllers.OwnedProduct(deps.Products, logg))
			r.Post("/eliminar_producto/{productID}/", controllers.ProductDelete(deps.Products, logg))

			r.Route("/mi_tienda", func(r chi.Router) {
				r.Get("/", controllers.Dashboard(deps.Dashboard, logg))
				r.Get("/orders/", controllers.SellerOrders(deps.Orders, logg))
				r.With(idempotent).Post("/orders/{orderID}/decision/", controllers.OrderDecision(deps.Orders, logg))
				r.Post("/reviews/{reviewID}/respond/", controllers.RespondReview(deps.Reviews, logg))
			})
		})
	})

	return r
}
