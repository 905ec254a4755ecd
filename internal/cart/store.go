package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/redis"
)

// Entry is one cart line as persisted. Carts are small, so the whole
// cart is stored as a single JSON snapshot per user.
type Entry struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
}

type Store struct {
	redis *redis.Client
	log   *logger.Logger
}

func NewStore(rdb *redis.Client, log *logger.Logger) (*Store, error) {
	if rdb == nil || log == nil {
		return nil, errors.New("cart store: redis client and logger are required")
	}
	return &Store{redis: rdb, log: log}, nil
}

// Load returns the saved cart. A missing key and an unreadable
// snapshot both yield an empty cart; corruption is logged, not fatal.
func (s *Store) Load(ctx context.Context, userID string) ([]Entry, error) {
	raw, err := s.redis.Get(ctx, redis.CartKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "load cart")
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warn(s.log.WithUserID(ctx, userID), "discarding unreadable cart snapshot")
		return nil, nil
	}
	return entries, nil
}

func (s *Store) Save(ctx context.Context, userID string, entries []Entry) error {
	if len(entries) == 0 {
		return s.Clear(ctx, userID)
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.redis.Set(ctx, redis.CartKey(userID), string(raw), 0); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, redis.CartKey(userID)); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "clear cart")
	}
	return nil
}
