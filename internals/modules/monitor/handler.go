package monitor

import (
	"context"
	"net/http"
	"statusboard/pkg/apperror"
	"statusboard/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Preparer gets storage ready for a monitor, e.g. creating an empty day-file.
type Preparer interface {
	Ensure(ctx context.Context, m Monitor) error
}

type Handler struct {
	catalog  *Catalog
	load     Loader
	preparer Preparer
	logger   *zerolog.Logger
}

func NewHandler(catalog *Catalog, load Loader, preparer Preparer, logger *zerolog.Logger) *Handler {
	return &Handler{
		catalog:  catalog,
		load:     load,
		preparer: preparer,
		logger:   logger,
	}
}

type ReloadResponse struct {
	Monitors []Monitor `json:"monitors"`
}

// POST /admin/reload
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	const op string = "handler.monitor.reload"
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	reg, err := h.catalog.Reload(ctx, func(ctx context.Context) ([]Monitor, error) {
		monitors, err := h.load(ctx)
		if err != nil {
			return nil, err
		}
		for _, m := range monitors {
			if err := h.preparer.Ensure(ctx, m); err != nil {
				return nil, err
			}
		}
		return monitors, nil
	})
	if err != nil {
		h.logger.Error().Err(err).Str("op", op).Msg("monitor reload failed")
		utils.FromAppError(w, reqID, apperror.Invalid(op, "reload failed: "+err.Error()))
		return
	}

	h.logger.Info().Int("monitors", len(reg.All())).Msg("monitor registry reloaded")
	utils.WriteJSON(w, http.StatusOK, reqID, utils.MonitorsReloaded, ReloadResponse{Monitors: reg.All()})
}
