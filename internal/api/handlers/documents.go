package handlers

import (
	"label-batch-service/internal/api/dto"
	"label-batch-service/internal/platform/obs"
	"label-batch-service/internal/ports"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// DocumentHandler serves batch documents saved by earlier builds.
type DocumentHandler struct {
	Store ports.DocumentStore
}

// Get returns the documents named by one or more batch_id query parameters,
// in the order requested. A parameter may also hold a comma separated list.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var ids []string
	for _, v := range r.URL.Query()["batch_id"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		writeError(w, r, http.StatusBadRequest, "batch_id is required")
		return
	}

	docs, err := h.Store.GetDocuments(r.Context(), ids)
	if err != nil {
		obs.Logger().Error("get documents failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.GetDocumentsResponse{Documents: make([]dto.DocumentResponse, 0, len(docs))}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		d, ok := docs[id]
		if !ok {
			res.Missing = append(res.Missing, id)
			continue
		}
		res.Documents = append(res.Documents, dto.DocumentResponse{
			BatchID:      d.BatchID,
			PackageCount: d.PackageCount,
			XML:          d.XML,
			CreatedAt:    d.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
