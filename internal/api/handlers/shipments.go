package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"label-batch-service/internal/api/dto"
	"label-batch-service/internal/domain"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/platform/obs"
	"label-batch-service/internal/ports"
	"label-batch-service/internal/services"
	"net/http"

	"go.uber.org/zap"
)

type ShipmentHandler struct {
	Repo     ports.LabelRepository
	Store    ports.DocumentStore
	NewDoc   domain.DocumentFactory
	Defaults labels.Request
}

// Build batches the requested labels and returns one XML document per batch.
// Labels whose options contradict each other are a client error (422).
func (h *ShipmentHandler) Build(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ShipmentRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	defaults := h.Defaults
	svcReq := services.BuildShipmentRequest{
		Labels: req.Labels,
		Save:   req.Save,
	}
	if req.Defaults != nil {
		svcReq.Defaults = append(svcReq.Defaults, req.Defaults)
	}
	svcReq.Defaults = append(svcReq.Defaults, &defaults)

	docs, err := services.BuildShipment(r.Context(), svcReq, h.Repo, h.Store, h.NewDoc)
	if err != nil {
		if status, msg, ok := clientError(err); ok {
			writeError(w, r, status, msg)
			return
		}
		obs.Logger().Error("build shipment failed", zap.String("req_id", obs.RequestID(r.Context())), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ShipmentResponse{Batches: make([]dto.BatchResponse, 0, len(docs))}
	for _, d := range docs {
		res.Batches = append(res.Batches, dto.BatchResponse{
			BatchID:      d.BatchID,
			PackageCount: d.PackageCount,
			References:   d.References,
			XML:          d.XML,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// clientError maps errors caused by the request body to a status.
func clientError(err error) (int, string, bool) {
	var (
		conflict    *domain.OptionConflict
		invalid     *domain.ValidationError
		inversion   *domain.InversionError
		unsupported *domain.UnsupportedOptionTypeError
		label       *services.LabelError
	)
	switch {
	case errors.As(err, &conflict):
		return http.StatusUnprocessableEntity, err.Error(), true
	case errors.As(err, &invalid), errors.As(err, &inversion):
		return http.StatusBadRequest, err.Error(), true
	case errors.As(err, &unsupported):
		return 0, "", false
	case errors.As(err, &label):
		// Missing recipient, unknown flag names and similar.
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}
