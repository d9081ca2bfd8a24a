package webhook

import (
	"encoding/json"
	"net/http"
	"statusboard/pkg/apperror"
	"statusboard/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 64 << 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// POST /webhook/status
func (h *Handler) StoreStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req StatusPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		res := StoreResult{Status: http.StatusBadRequest, Error: "invalid request body"}
		utils.WriteErrorWithData(w, res.Status, reqID, apperror.InvalidInput, res.Error, res)
		return
	}

	// failures echo the StoreResult so callers see the embedded status code
	res := h.service.StoreStatus(ctx, req)
	if res.Status != http.StatusOK {
		utils.WriteErrorWithData(w, res.Status, reqID, kindFor(res.Status), res.Error, res)
		return
	}

	utils.WriteJSON(w, res.Status, reqID, utils.StatusStored, res)
}

// GET /webhook/status?tag=
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	view, err := h.service.GetStatusByTag(ctx, r.URL.Query().Get("tag"))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.StatusRetrieved, view)
}

func kindFor(code int) apperror.Kind {
	switch {
	case code == http.StatusBadRequest:
		return apperror.InvalidInput
	case code == http.StatusGatewayTimeout:
		return apperror.RequestTimeout
	default:
		return apperror.Internal
	}
}
