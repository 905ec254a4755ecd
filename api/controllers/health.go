package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/demo-018/indiveg-hub/api/responses"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db    pinger
	redis pinger
	log   *logger.Logger
}

func NewHealthController(db, redis pinger, log *logger.Logger) *HealthController {
	return &HealthController{db: db, redis: redis, log: log}
}

func (c *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	responses.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness checks every backing store and reports all failures at
// once rather than the first one.
func (c *HealthController) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var errs error
	if err := c.db.Ping(ctx); err != nil {
		errs = multierr.Append(errs, apperrors.Wrap(apperrors.CodeDependency, err, "database unreachable"))
	}
	if err := c.redis.Ping(ctx); err != nil {
		errs = multierr.Append(errs, apperrors.Wrap(apperrors.CodeDependency, err, "redis unreachable"))
	}

	if errs != nil {
		c.log.Error(r.Context(), "readiness check failed", errs)
		responses.Error(w, apperrors.Wrap(apperrors.CodeDependency, errs, "service not ready"))
		return
	}
	responses.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
