package timeline

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.DayRollup)

	return r
}

/*
- POST: /day-rollup -> gap-filled timeline of the current day
	body : RollupRequest {monitor, localTz}
	resp : map of minute timestamp -> Entry
*/
