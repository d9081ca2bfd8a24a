package badge

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{tag}", h.Status)
	r.Get("/{tag}/uptime", h.Uptime)

	return r
}

/*
- GET: /badge/{tag} -> current status badge
	query : labelColor, color, style
	resp : image/svg+xml

- GET: /badge/{tag}/uptime -> today's uptime badge
	query : labelColor, style
	resp : image/svg+xml
*/
