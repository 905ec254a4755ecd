package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/demo-018/indiveg-hub/api/responses"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/logger"
	"github.com/demo-018/indiveg-hub/pkg/redis"
)

const (
	idempotencyHeader  = "Idempotency-Key"
	idempotencyTTL     = 24 * time.Hour
	idempotencyPending = `{"state":"pending"}`
)

type storedResponse struct {
	State  string `json:"state"`
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
}

type responseRecorder struct {
	chimiddleware.WrapResponseWriter
	body []byte
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	r.body = append(r.body, p...)
	return r.WrapResponseWriter.Write(p)
}

// Idempotency makes checkout and cancel safe to retry: the first
// request with a key executes and its response is stored; retries with
// the same key replay the stored response, and a retry racing the
// original is rejected rather than run twice.
func Idempotency(rdb *redis.Client, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(idempotencyHeader)
			if key == "" {
				responses.Error(w, apperrors.New(apperrors.CodeValidation, "Idempotency-Key header is required"))
				return
			}
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
				return
			}

			redisKey := redis.IdempotencyKey(identity.UserID.String(), r.URL.Path, key)

			acquired, err := rdb.SetNX(r.Context(), redisKey, idempotencyPending, idempotencyTTL)
			if err != nil {
				responses.Error(w, apperrors.Wrap(apperrors.CodeDependency, err, "idempotency store unavailable"))
				return
			}

			if !acquired {
				raw, err := rdb.Get(r.Context(), redisKey)
				if err != nil {
					responses.Error(w, apperrors.Wrap(apperrors.CodeDependency, err, "idempotency store unavailable"))
					return
				}
				var stored storedResponse
				if json.Unmarshal([]byte(raw), &stored) == nil && stored.State == "done" {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(stored.Status)
					_, _ = w.Write([]byte(stored.Body))
					return
				}
				responses.Error(w, apperrors.New(apperrors.CodeIdempotency, "request with this key is still in flight"))
				return
			}

			recorder := &responseRecorder{
				WrapResponseWriter: chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor),
			}
			next.ServeHTTP(recorder, r)

			// Only successful outcomes are pinned; a failed attempt may
			// be retried with the same key.
			if recorder.Status() >= 200 && recorder.Status() < 300 {
				raw, err := json.Marshal(storedResponse{
					State:  "done",
					Status: recorder.Status(),
					Body:   string(recorder.body),
				})
				if err == nil {
					err = rdb.Set(r.Context(), redisKey, string(raw), idempotencyTTL)
				}
				if err != nil {
					log.Error(r.Context(), "store idempotent response", err)
				}
			} else if err := rdb.Del(r.Context(), redisKey); err != nil {
				log.Error(r.Context(), "release idempotency key", err)
			}
		})
	}
}
