package handlers

import (
	"label-batch-service/internal/api/dto"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/platform/obs"
	"label-batch-service/internal/ports"
	"net/http"

	"go.uber.org/zap"
)

// LabelHandler exposes read-only label request retrieval endpoints.
type LabelHandler struct {
	Repo ports.LabelRepository
}

func (h *LabelHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	reqs, err := h.Repo.ListLabels(r.Context())
	if err != nil {
		obs.Logger().Error("list labels failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLabelsResponse{Labels: make([]*labels.Request, 0, len(reqs))}
	res.Labels = append(res.Labels, reqs...)
	writeJSON(w, r, http.StatusOK, res)
}
