package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/demo-018/indiveg-hub/api/controllers"
	"github.com/demo-018/indiveg-hub/api/middleware"
	"github.com/demo-018/indiveg-hub/pkg/auth"
	"github.com/demo-018/indiveg-hub/pkg/auth/session"
	"github.com/demo-018/indiveg-hub/pkg/config"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/metrics"
	"github.com/demo-018/indiveg-hub/pkg/redis"
)

type Deps struct {
	Config   *config.Config
	Log      *logger.Logger
	Redis    *redis.Client
	Tokens   *auth.TokenIssuer
	Sessions *session.Manager
	Metrics  *metrics.Metrics

	Health        *controllers.HealthController
	Auth          *controllers.AuthController
	Catalog       *controllers.CatalogController
	Cart          *controllers.CartController
	Orders        *controllers.OrdersController
	Profile       *controllers.ProfileController
	Notifications *controllers.NotificationsController
}

func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(deps.Log))
	r.Use(middleware.Metrics(deps.Metrics))

	r.Get("/healthz", deps.Health.Liveness)
	r.Get("/readyz", deps.Health.Readiness)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	authenticate := middleware.Authenticate(deps.Tokens, deps.Sessions)
	adminOnly := middleware.RequireRole(enums.RoleAdmin)
	idempotent := middleware.Idempotency(deps.Redis, deps.Log)
	loginThrottle := middleware.AuthRateLimit(deps.Redis, deps.Config.AuthRateLimit, deps.Log)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginThrottle)
			r.Post("/auth/login", deps.Auth.Login)
			r.Post("/auth/otp", deps.Auth.RequestOTP)
		})
		r.Post("/auth/refresh", deps.Auth.Refresh)

		r.Get("/categories", deps.Catalog.ListCategories)
		r.Get("/products", deps.Catalog.ListProducts)
		r.Get("/products/featured", deps.Catalog.Featured)
		r.Get("/products/by-name/{name}", deps.Catalog.GetProductByName)
		r.Get("/products/{productId}", deps.Catalog.GetProduct)
		r.Get("/products/{productId}/related", deps.Catalog.Related)
		r.Get("/products/{productId}/reviews", deps.Catalog.Reviews)
		r.Get("/checkout/delivery-options", deps.Orders.DeliveryOptions)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/auth/me", deps.Auth.Me)
			r.Post("/auth/logout", deps.Auth.Logout)

			r.Get("/profile", deps.Profile.Get)
			r.Get("/profile/addresses", deps.Profile.ListAddresses)
			r.Post("/profile/addresses", deps.Profile.AddAddress)
			r.Put("/profile/addresses/{addressId}", deps.Profile.UpdateAddress)
			r.Delete("/profile/addresses/{addressId}", deps.Profile.RemoveAddress)
			r.Put("/profile/addresses/{addressId}/default", deps.Profile.SetDefaultAddress)

			r.Get("/cart", deps.Cart.Get)
			r.Post("/cart/items", deps.Cart.Add)
			r.Put("/cart/items/{productId}", deps.Cart.UpdateQuantity)
			r.Delete("/cart/items/{productId}", deps.Cart.Remove)
			r.Delete("/cart", deps.Cart.Clear)

			r.Get("/orders", deps.Orders.List)
			r.Get("/orders/{orderId}", deps.Orders.Get)
			r.With(idempotent).Post("/checkout", deps.Orders.Checkout)
			r.With(idempotent).Post("/orders/{orderId}/cancel", deps.Orders.Cancel)

			r.Get("/notifications", deps.Notifications.List)
			r.Put("/notifications/{notificationId}/read", deps.Notifications.MarkRead)
			r.Put("/notifications/read-all", deps.Notifications.MarkAllRead)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Put("/admin/orders/{orderId}/status", deps.Orders.UpdateStatus)
			})
		})
	})

	return r
}
