package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/demo-018/indiveg-hub/api/controllers"
	"github.com/demo-018/indiveg-hub/api/routes"
	"github.com/demo-018/indiveg-hub/internal/auth"
	"github.com/demo-018/indiveg-hub/internal/cart"
	"github.com/demo-018/indiveg-hub/internal/catalog"
	"github.com/demo-018/indiveg-hub/internal/notifications"
	"github.com/demo-018/indiveg-hub/internal/orders"
	"github.com/demo-018/indiveg-hub/internal/seed"
	"github.com/demo-018/indiveg-hub/internal/users"
	pkgauth "github.com/demo-018/indiveg-hub/pkg/auth"
	"github.com/demo-018/indiveg-hub/pkg/auth/session"
	"github.com/demo-018/indiveg-hub/pkg/config"
	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/metrics"
	"github.com/demo-018/indiveg-hub/pkg/migrate"
	"github.com/demo-018/indiveg-hub/pkg/redis"
	"github.com/demo-018/indiveg-hub/pkg/security"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.IsDevelopment(),
	})
	ctx := context.Background()

	client, err := openDatabase(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "open database", err)
		return err
	}
	defer func() { _ = client.Close() }()

	rdb := redis.New(cfg.Redis)
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx); err != nil {
		log.Error(ctx, "connect redis", err)
		return err
	}

	hasher := security.NewHasher(cfg.Password)
	if cfg.Demo.Seed {
		seeder, err := seed.New(client, hasher, log)
		if err != nil {
			return err
		}
		if err := seeder.Run(ctx); err != nil {
			log.Error(ctx, "seed demo data", err)
			return err
		}
	}

	tokens := pkgauth.NewTokenIssuer(cfg.JWT)
	sessions, err := session.NewManager(rdb, cfg.JWT.SessionTTL)
	if err != nil {
		return err
	}
	m := metrics.New(cfg.App.Name)

	catalogRepo, err := catalog.NewRepo(client)
	if err != nil {
		return err
	}
	catalogSvc, err := catalog.NewService(catalogRepo)
	if err != nil {
		return err
	}

	usersRepo, err := users.NewRepo(client)
	if err != nil {
		return err
	}
	usersSvc, err := users.NewService(usersRepo)
	if err != nil {
		return err
	}

	cartStore, err := cart.NewStore(rdb, log)
	if err != nil {
		return err
	}
	cartSvc, err := cart.NewService(cartStore, catalogSvc)
	if err != nil {
		return err
	}

	authSvc, err := auth.NewService(usersRepo, hasher, tokens, sessions, rdb, cartSvc, cfg.Demo, log)
	if err != nil {
		return err
	}

	notificationsRepo, err := notifications.NewRepo(client)
	if err != nil {
		return err
	}
	notificationsSvc, err := notifications.NewService(notificationsRepo)
	if err != nil {
		return err
	}

	ordersRepo, err := orders.NewRepo(client)
	if err != nil {
		return err
	}
	ordersSvc, err := orders.NewService(ordersRepo, cartSvc, usersSvc, notificationsSvc, m, cfg.Checkout, log)
	if err != nil {
		return err
	}

	handler := routes.New(routes.Deps{
		Config:        cfg,
		Log:           log,
		Redis:         rdb,
		Tokens:        tokens,
		Sessions:      sessions,
		Metrics:       m,
		Health:        controllers.NewHealthController(client, rdb, log),
		Auth:          controllers.NewAuthController(authSvc),
		Catalog:       controllers.NewCatalogController(catalogSvc),
		Cart:          controllers.NewCartController(cartSvc),
		Orders:        controllers.NewOrdersController(ordersSvc),
		Profile:       controllers.NewProfileController(usersSvc),
		Notifications: controllers.NewNotificationsController(notificationsSvc),
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(log.WithField(ctx, "addr", server.Addr), "server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error(ctx, "server failed", err)
		return err
	case sig := <-stop:
		log.Info(log.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "graceful shutdown", err)
		return err
	}
	return nil
}

// openDatabase picks the configured backend: Postgres with goose
// migrations for real deployments, shared in-memory SQLite with its
// own bundled schema for the demo.
func openDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*db.Client, error) {
	if cfg.Features.UseSQLite {
		client, err := db.NewSQLite(cfg.App.Name)
		if err != nil {
			return nil, err
		}
		log.Info(ctx, "using in-memory sqlite database")
		return client, nil
	}

	client, err := db.NewPostgres(cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Features.AutoMigrate {
		if err := migrate.Run(ctx, client.Gorm()); err != nil {
			return nil, err
		}
		log.Info(ctx, "database migrations applied")
	}
	return client, nil
}
