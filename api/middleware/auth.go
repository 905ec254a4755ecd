package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/api/responses"
	"github.com/demo-018/indiveg-hub/pkg/auth"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type sessionChecker interface {
	Has(ctx context.Context, userID string) (bool, error)
}

// Authenticate requires a bearer token backed by a live Redis session.
// A valid token whose session has expired is rejected, which is what
// makes logout effective immediately.
func Authenticate(tokens *auth.TokenIssuer, sessions sessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "missing bearer token"))
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "invalid token"))
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "invalid token subject"))
				return
			}

			active, err := sessions.Has(r.Context(), claims.UserID)
			if err != nil {
				responses.Error(w, err)
				return
			}
			if !active {
				responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "session expired"))
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: userID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole guards admin-only routes.
func RequireRole(role enums.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				responses.Error(w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
				return
			}
			if identity.Role != role {
				responses.Error(w, apperrors.New(apperrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
