package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/cafe-companion/api/responses"
	"github.com/angelmondragon/cafe-companion/pkg/config"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
)

// Pinger is anything readiness depends on.
type Pinger interface {
	Ping(context.Context) error
}

// SessionCounter reports how many storefront sessions are in memory.
type SessionCounter interface {
	Len() int
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cafe-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings Redis when it is configured. A nil pinger means the
// idempotency store is disabled and readiness only reports session count.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient Pinger, sessions SessionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cafe-Env", cfg.App.Env)

		checks := map[string]string{"redis": "disabled"}
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable").
					WithDetails(map[string]string{"redis": "down"}))
				return
			}
			checks["redis"] = "ok"
		}

		count := 0
		if sessions != nil {
			count = sessions.Len()
		}
		responses.WriteSuccess(w, map[string]any{
			"status":   "ready",
			"checks":   checks,
			"sessions": count,
		})
	}
}
