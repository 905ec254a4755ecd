// Seeds a Postgres database with the demo fixtures. The API server
// seeds SQLite automatically; this binary exists for Postgres setups.
package main

import (
	"context"
	"os"

	"github.com/demo-018/indiveg-hub/internal/seed"
	"github.com/demo-018/indiveg-hub/pkg/config"
	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/migrate"
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
		ServiceName: cfg.App.Name + "-seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})
	ctx := context.Background()

	client, err := db.NewPostgres(cfg.DB)
	if err != nil {
		log.Error(ctx, "open database", err)
		return err
	}
	defer func() { _ = client.Close() }()

	if err := migrate.Run(ctx, client.Gorm()); err != nil {
		log.Error(ctx, "apply migrations", err)
		return err
	}

	seeder, err := seed.New(client, security.NewHasher(cfg.Password), log)
	if err != nil {
		return err
	}
	if err := seeder.Run(ctx); err != nil {
		log.Error(ctx, "seed demo data", err)
		return err
	}

	log.Info(ctx, "seed complete")
	return nil
}
