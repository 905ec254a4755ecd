package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/demo-018/indiveg-hub/api/responses"
	"github.com/demo-018/indiveg-hub/pkg/config"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/redis"
)

// AuthRateLimit throttles credential endpoints with fixed windows per
// client IP and per mobile, so a spray against one mobile and a spray
// from one address both hit a wall.
func AuthRateLimit(rdb *redis.Client, cfg config.AuthRateLimit, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			window := time.Now().UTC().Truncate(cfg.Window)

			ip := clientIP(r)
			count, err := rdb.IncrWithTTL(r.Context(), redis.RateLimitKey("auth-ip", ip, window), cfg.Window)
			if err != nil {
				// Redis being down should not lock everyone out.
				log.Error(r.Context(), "auth rate limit unavailable", err)
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(cfg.MaxPerIP) {
				responses.Error(w, apperrors.New(apperrors.CodeRateLimit, "too many attempts, try again later"))
				return
			}

			if mobile := peekMobile(r); mobile != "" {
				count, err := rdb.IncrWithTTL(r.Context(), redis.RateLimitKey("auth-mobile", mobile, window), cfg.Window)
				if err == nil && count > int64(cfg.MaxPerUser) {
					responses.Error(w, apperrors.New(apperrors.CodeRateLimit, "too many attempts for this mobile"))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// peekMobile reads the mobile out of the body without consuming it.
// Only the first 64KB is inspected; the unread remainder is stitched
// back so the handler still sees the body in full.
func peekMobile(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return ""
	}
	rest := r.Body
	r.Body = replayBody{
		Reader: io.MultiReader(bytes.NewReader(raw), rest),
		Closer: rest,
	}

	var probe struct {
		Mobile string `json:"mobile"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ""
	}
	return probe.Mobile
}

type replayBody struct {
	io.Reader
	io.Closer
}
