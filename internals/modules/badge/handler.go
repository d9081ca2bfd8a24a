package badge

import (
	"net/http"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/status"
	"statusboard/internals/modules/timeline"
	"statusboard/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// UptimeAccent is the fill of uptime badges regardless of status.
const UptimeAccent = "#0079FF"

type Handler struct {
	catalog *monitor.Catalog
	store   timeline.DayReader
	engine  *timeline.Engine
	loc     *time.Location
	logger  *zerolog.Logger
}

func NewHandler(catalog *monitor.Catalog, store timeline.DayReader, engine *timeline.Engine, loc *time.Location, logger *zerolog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		store:   store,
		engine:  engine,
		loc:     loc,
		logger:  logger,
	}
}

// GET /badge/{tag}
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	const op string = "handler.badge.status"
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	m, err := h.catalog.Resolve(op, chi.URLParam(r, "tag"))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	day, err := h.store.ReadDay(ctx, m)
	if err != nil {
		h.logger.Error().Err(err).Str("op", op).Str("tag", m.Tag).Msg("read day failed")
		utils.FromAppError(w, reqID, err)
		return
	}

	current := status.NoData
	if _, rec, ok := day.Latest(); ok {
		current = rec.Status
	}

	q := r.URL.Query()
	writeSVG(w, Render(Options{
		Label:      displayName(m),
		Message:    current.String(),
		Color:      NormalizeColor(q.Get("color"), current.Color()),
		LabelColor: q.Get("labelColor"),
		Style:      ParseStyle(q.Get("style")),
	}))
}

// GET /badge/{tag}/uptime
func (h *Handler) Uptime(w http.ResponseWriter, r *http.Request) {
	const op string = "handler.badge.uptime"
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	m, err := h.catalog.Resolve(op, chi.URLParam(r, "tag"))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	entries, err := h.engine.BuildDayTimeline(ctx, m, h.loc)
	if err != nil {
		h.logger.Error().Err(err).Str("op", op).Str("tag", m.Tag).Msg("build timeline failed")
		utils.FromAppError(w, reqID, err)
		return
	}

	q := r.URL.Query()
	writeSVG(w, Render(Options{
		Label:      displayName(m),
		Message:    timeline.Summarize(entries).Uptime + "%",
		Color:      UptimeAccent,
		LabelColor: q.Get("labelColor"),
		Style:      ParseStyle(q.Get("style")),
	}))
}

func displayName(m monitor.Monitor) string {
	if m.Name != "" {
		return m.Name
	}
	return m.Tag
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}
