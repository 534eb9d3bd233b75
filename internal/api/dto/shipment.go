package dto

import "label-batch-service/internal/labels"

type ShipmentRequest struct {
	// Inline labels; when empty the stored labels are used.
	Labels []*labels.Request `json:"labels"`
	// Per-request defaults. They win over the server defaults.
	Defaults *labels.Request `json:"defaults"`
	Save     bool            `json:"save"`
}

type BatchResponse struct {
	BatchID      string   `json:"batch_id"`
	PackageCount int      `json:"package_count"`
	References   []string `json:"references"`
	XML          string   `json:"xml"`
}

type ShipmentResponse struct {
	Batches []BatchResponse `json:"batches"`
}
