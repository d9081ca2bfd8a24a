package incident

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the incident endpoints. Creation runs behind the rate
// limiter and then the API key check, so rejected keys are throttled too.
func Routes(h *Handler, rateLimit, auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(rateLimit, auth).Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/comments", h.Comments)

	return r
}

/*
- POST: /incident -> open an incident as a tracker issue
	req auth : Authorization: Bearer <api key>
	body : Payload {title, body, tags, labels, impact, isMaintenance, isIdentified, isResolved, startDatetime, endDatetime}
	resp : Incident

- GET: /incident/{id} -> incident mapped from the tracker issue
	resp : Incident

- GET: /incident/{id}/comments -> issue comments rendered to HTML
	resp : []Comment {body, created_at, updated_at, html_url}
*/
