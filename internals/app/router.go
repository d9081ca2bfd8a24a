package app

import (
	"context"
	"net/http"
	middle "statusboard/internals/middleware"
	"statusboard/internals/modules/badge"
	"statusboard/internals/modules/incident"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/timeline"
	"statusboard/internals/modules/webhook"
	"statusboard/pkg/apperror"
	"statusboard/pkg/metrics"
	"statusboard/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middle.Logger(c.Logger))
	r.Use(middle.Metrics(metrics.HTTPRecorder{}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(c.Config.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.Config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	r.Mount("/webhook", webhook.Routes(c.webhookHandler, c.rateLimiter.Handle, c.webhookAuth.Handle))
	r.Mount("/incident", incident.Routes(c.incidentHandler, c.rateLimiter.Handle, c.webhookAuth.Handle))
	r.Mount("/day-rollup", timeline.Routes(c.timelineHandler))
	r.Mount("/badge", badge.Routes(c.badgeHandler))

	// admin routes need a valid token carrying the admin role
	r.Mount("/admin", monitor.Routes(c.monitorHandler, func(next http.Handler) http.Handler {
		return c.authMW.Handle(middle.AllowAdmin(next))
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthz(c))

	return r
}

type healthResponse struct {
	Monitors int    `json:"monitors"`
	Store    string `json:"store"`
}

// GET /healthz
func healthz(c *Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op string = "handler.app.healthz"
		reqID := middleware.GetReqID(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			c.Logger.Error().Err(err).Str("op", op).Msg("health check failed")
			utils.FromAppError(w, reqID, apperror.New(apperror.Dependency, op, err).WithMessage("dependency unavailable"))
			return
		}

		utils.WriteJSON(w, http.StatusOK, reqID, utils.ServiceHealthy, healthResponse{
			Monitors: len(c.Catalog.Current().All()),
			Store:    c.Config.Store.Driver,
		})
	}
}
