package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/luisherrera/shopdesk-backend/api/responses"
	"github.com/luisherrera/shopdesk-backend/pkg/config"
	"github.com/luisherrera/shopdesk-backend/pkg/db"
	pkgerrors "github.com/luisherrera/shopdesk-backend/pkg/errors"
	"github.com/luisherrera/shopdesk-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopDesk-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasource behind the records layer. In offline mode
// the only dependency is the local cache file; redisPinger is nil there.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisPinger db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopDesk-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if redisPinger != nil {
			if err := redisPinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
