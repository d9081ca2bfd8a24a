package timeline

import (
	"encoding/json"
	"net/http"
	"statusboard/internals/modules/monitor"
	"statusboard/pkg/apperror"
	"statusboard/pkg/utils"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Handler struct {
	engine    *Engine
	catalog   *monitor.Catalog
	validator *validator.Validate
	logger    *zerolog.Logger
}

func NewHandler(engine *Engine, catalog *monitor.Catalog, validator *validator.Validate, logger *zerolog.Logger) *Handler {
	return &Handler{
		engine:    engine,
		catalog:   catalog,
		validator: validator,
		logger:    logger,
	}
}

// POST /day-rollup
func (h *Handler) DayRollup(w http.ResponseWriter, r *http.Request) {
	const op string = "handler.timeline.day_rollup"
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req RollupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "monitor is required")
		return
	}

	loc, err := loadLocation(req.LocalTz)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid localTz")
		return
	}

	m, err := h.catalog.Resolve(op, req.Monitor)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	entries, err := h.engine.BuildDayTimeline(ctx, m, loc)
	if err != nil {
		h.logger.Error().Err(err).Str("op", op).Str("tag", m.Tag).Msg("day rollup failed")
		utils.FromAppError(w, reqID, err)
		return
	}

	resp := make(RollupResponse, len(entries))
	for _, e := range entries {
		resp[e.Timestamp] = e
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.TimelineBuilt, resp)
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
