package incident

import (
	"encoding/json"
	"net/http"
	"statusboard/pkg/apperror"
	"statusboard/pkg/utils"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 256 << 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// POST /incident
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req Payload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid request body")
		return
	}

	inc, err := h.service.CreateIncident(ctx, req)
	if err != nil {
		// tracker failures on create are a client visible 400
		if apperror.IsKind(err, apperror.Dependency) {
			utils.WriteError(w, http.StatusBadRequest, reqID, apperror.Dependency, githubErrorMessage)
			return
		}
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.IncidentCreated, inc)
}

// GET /incident/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	number, ok := incidentNumber(w, r)
	if !ok {
		return
	}

	inc, err := h.service.GetIncident(ctx, number)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.IncidentRetrieved, inc)
}

// GET /incident/{id}/comments
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	number, ok := incidentNumber(w, r)
	if !ok {
		return
	}

	comments, err := h.service.GetCommentsForIssue(ctx, number)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.CommentsRetrieved, comments)
}

func incidentNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || n <= 0 {
		reqID := middleware.GetReqID(r.Context())
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid incident id")
		return 0, false
	}
	return n, true
}
