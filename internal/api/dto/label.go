package dto

import "label-batch-service/internal/labels"

type ListLabelsResponse struct {
	Labels []*labels.Request `json:"labels"`
}
