package webhook

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the webhook endpoints. Both run behind the rate limiter and
// the API key check, in that order.
func Routes(h *Handler, rateLimit, auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(rateLimit, auth)

	r.Post("/status", h.StoreStatus)
	r.Get("/status", h.GetStatus)

	return r
}

/*
- POST: /webhook/status -> store one minute of status for a monitor
	req auth : Authorization: Bearer <api key>
	body : StatusPayload {tag, status, latency?, type?, timestampInSeconds?}
	resp : StoreResult

- GET: /webhook/status?tag= -> latest status of a monitor
	req auth : Authorization: Bearer <api key>
	resp : StatusView {status, uptime, last_updated}
*/
