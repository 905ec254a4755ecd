package middleware

import (
	"fmt"
	"net/http"

	"github.com/demo-018/indiveg-hub/api/responses"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/logger"
)

// Recoverer turns panics into 500 responses instead of dropped
// connections.
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(r.Context(), "panic recovered", err)
					responses.Error(w, apperrors.New(apperrors.CodeInternal, "internal error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
