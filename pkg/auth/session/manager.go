package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/pkg/redis"
)

// ErrNotFound reports a refresh token or session that Redis no longer
// holds; callers translate it to an auth failure.
var ErrNotFound = errors.New("session: not found")

// Manager tracks active logins in Redis. A token that survives in the
// client while its Redis session expires is treated as logged out.
// Each session carries one opaque refresh token, rotated on every
// redemption.
type Manager struct {
	redis *redis.Client
	ttl   time.Duration
}

type record struct {
	LoggedInAt   time.Time `json:"logged_in_at"`
	Mobile       string    `json:"mobile"`
	RefreshToken string    `json:"refresh_token"`
}

func NewManager(rdb *redis.Client, ttl time.Duration) (*Manager, error) {
	if rdb == nil {
		return nil, errors.New("session: redis client is required")
	}
	return &Manager{redis: rdb, ttl: ttl}, nil
}

// Establish opens a session and returns its refresh token.
func (m *Manager) Establish(ctx context.Context, userID, mobile string) (string, error) {
	refresh := uuid.NewString()
	raw, err := json.Marshal(record{
		LoggedInAt:   time.Now().UTC(),
		Mobile:       mobile,
		RefreshToken: refresh,
	})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := m.redis.Set(ctx, redis.SessionKey(userID), string(raw), m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if err := m.redis.Set(ctx, redis.RefreshKey(refresh), userID, m.ttl); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return refresh, nil
}

// Has reports whether the user holds a live session. A record that no
// longer parses is dropped and treated as logged out rather than
// trusted.
func (m *Manager) Has(ctx context.Context, userID string) (bool, error) {
	raw, err := m.redis.Get(ctx, redis.SessionKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("load session: %w", err)
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		_ = m.redis.Del(ctx, redis.SessionKey(userID))
		return false, nil
	}
	return true, nil
}

// Redeem exchanges a refresh token for the session it belongs to,
// rotating the token. The spent token is invalid afterwards.
func (m *Manager) Redeem(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := m.redis.Get(ctx, redis.RefreshKey(refreshToken))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", ErrNotFound
		}
		return "", "", fmt.Errorf("load refresh token: %w", err)
	}

	rec, err := m.load(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if rec.RefreshToken != refreshToken {
		// A newer login already rotated the token.
		_ = m.redis.Del(ctx, redis.RefreshKey(refreshToken))
		return "", "", ErrNotFound
	}

	if err := m.redis.Del(ctx, redis.RefreshKey(refreshToken)); err != nil {
		return "", "", fmt.Errorf("rotate refresh token: %w", err)
	}
	next, err := m.Establish(ctx, userID, rec.Mobile)
	if err != nil {
		return "", "", err
	}
	return userID, next, nil
}

func (m *Manager) Destroy(ctx context.Context, userID string) error {
	rec, err := m.load(ctx, userID)
	if err == nil && rec.RefreshToken != "" {
		_ = m.redis.Del(ctx, redis.RefreshKey(rec.RefreshToken))
	}
	if err := m.redis.Del(ctx, redis.SessionKey(userID)); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (m *Manager) load(ctx context.Context, userID string) (*record, error) {
	raw, err := m.redis.Get(ctx, redis.SessionKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &rec, nil
}
