package redis

import (
	"context"
	"fmt"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/demo-018/indiveg-hub/pkg/config"
)

const namespace = "veg"

// Nil is re-exported so callers can test for missing keys without
// importing the driver directly.
const Nil = goredis.Nil

// Cmdable is the slice of the driver surface the client depends on.
// Tests substitute an in-memory implementation via NewFromClient.
type Cmdable interface {
	Ping(ctx context.Context) *goredis.StatusCmd
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) *goredis.BoolCmd
	Incr(ctx context.Context, key string) *goredis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

type Client struct {
	store Cmdable
}

func New(cfg config.Redis) *Client {
	return &Client{
		store: goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewFromClient wraps an existing driver-compatible store.
func NewFromClient(store Cmdable) *Client {
	return &Client{store: store}
}

func SessionKey(userID string) string {
	return fmt.Sprintf("%s:session:%s", namespace, userID)
}

func CartKey(userID string) string {
	return fmt.Sprintf("%s:cart:%s", namespace, userID)
}

func RefreshKey(token string) string {
	return fmt.Sprintf("%s:refresh:%s", namespace, token)
}

func OTPKey(mobile string) string {
	return fmt.Sprintf("%s:otp:%s", namespace, mobile)
}

func IdempotencyKey(userID, route, key string) string {
	return fmt.Sprintf("%s:idem:%s:%s:%s", namespace, userID, route, key)
}

func RateLimitKey(scope, subject string, window time.Time) string {
	return fmt.Sprintf("%s:rl:%s:%s:%d", namespace, scope, subject, window.Unix())
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.store.Get(ctx, key).Result()
}

func (c *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.store.Set(ctx, key, value, ttl).Err()
}

func (c *Client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.store.SetNX(ctx, key, value, ttl).Result()
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.store.Del(ctx, keys...).Err()
}

// IncrWithTTL bumps a counter and stamps the expiry on first use.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := c.store.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl > 0 && count == 1 {
		if err := c.store.Expire(ctx, key, ttl).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
