package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	schema "github.com/demo-018/indiveg-hub/db"
	"github.com/demo-018/indiveg-hub/pkg/config"
)

type Client struct {
	gorm *gorm.DB
}

// NewPostgres connects over the pgx stdlib driver.
func NewPostgres(cfg config.DB) (*Client, error) {
	return open(postgres.New(postgres.Config{DSN: cfg.DSN()}))
}

// NewSQLite opens a shared in-memory database, used for local demo
// runs and for repository tests. Array and jsonb columns have no
// SQLite equivalent, so the schema is applied from DDL written for it
// rather than auto-migrated from the models.
func NewSQLite(name string) (*Client, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	client, err := open(sqlite.Open(dsn))
	if err != nil {
		return nil, err
	}
	if err := client.gorm.Exec(schema.SQLiteSchema).Error; err != nil {
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return client, nil
}

func open(dialector gorm.Dialector) (*Client, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &Client{gorm: gdb}, nil
}

func (c *Client) Gorm() *gorm.DB {
	return c.gorm
}

func (c *Client) WithContext(ctx context.Context) *gorm.DB {
	return c.gorm.WithContext(ctx)
}

// Transaction runs fn inside a database transaction, rolling back on error.
func (c *Client) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return c.gorm.WithContext(ctx).Transaction(fn)
}

func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (c *Client) Close() error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql db: %w", err)
	}
	return sqlDB.Close()
}
