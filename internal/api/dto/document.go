package dto

import "time"

type DocumentResponse struct {
	BatchID      string    `json:"batch_id"`
	PackageCount int       `json:"package_count"`
	XML          string    `json:"xml"`
	CreatedAt    time.Time `json:"created_at"`
}

type GetDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	// Requested IDs with no stored document.
	Missing []string `json:"missing,omitempty"`
}
