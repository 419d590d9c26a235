package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/lumenarts/gallery-api/api/responses"
	"github.com/lumenarts/gallery-api/pkg/config"
	"github.com/lumenarts/gallery-api/pkg/db"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/logger"
	"github.com/lumenarts/gallery-api/pkg/types"
)

const healthTimeout = 2 * time.Second

// Health pings the database and, when configured, redis. Any failing check
// turns the response into a 503.
func Health(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		checks := map[string]string{}
		var failed error

		if database == nil {
			checks["database"] = "missing"
			failed = pkgerrors.New(pkgerrors.CodeDependency, "database not configured")
		} else if err := database.Ping(ctx); err != nil {
			checks["database"] = "error"
			failed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping failed")
		} else {
			checks["database"] = "ok"
		}

		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["redis"] = "error"
				if failed == nil {
					failed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping failed")
				}
			} else {
				checks["redis"] = "ok"
			}
		}

		if failed != nil {
			typed := pkgerrors.As(failed).WithDetails(map[string]any{"checks": checks})
			responses.WriteError(r.Context(), logg, w, typed)
			return
		}

		w.Header().Set("X-Gallery-Env", cfg.App.Env)
		responses.WriteSuccess(w, types.Payload{"status": "ok", "checks": checks})
	}
}
