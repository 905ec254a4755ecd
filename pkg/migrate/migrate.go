package migrate

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	migrationfs "github.com/demo-018/indiveg-hub/db"
)

// Run applies pending goose migrations against a Postgres database.
// SQLite deployments use GORM auto-migration instead.
func Run(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}

	goose.SetBaseFS(migrationfs.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
