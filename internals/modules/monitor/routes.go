package monitor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, adminMW func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(adminMW).Post("/reload", h.Reload)

	return r
}

/*
- POST: /admin/reload -> re-read monitors from the config file
	req auth : admin bearer token (JWT)
	body : nil
	resp : ReloadResponse
*/
