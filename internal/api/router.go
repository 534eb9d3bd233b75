package api

import (
	"label-batch-service/internal/api/handlers"
	"label-batch-service/internal/domain"
	"label-batch-service/internal/labels"
	"label-batch-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.LabelRepository,
	store ports.DocumentStore,
	newDoc domain.DocumentFactory,
	defaults labels.Request,
) http.Handler {
	mux := http.NewServeMux()

	labelHandler := &handlers.LabelHandler{Repo: repo}
	shipmentHandler := &handlers.ShipmentHandler{
		Repo:     repo,
		Store:    store,
		NewDoc:   newDoc,
		Defaults: defaults,
	}
	documentHandler := &handlers.DocumentHandler{Store: store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/labels", labelHandler.List)
	mux.HandleFunc("/shipments", shipmentHandler.Build)
	mux.HandleFunc("/documents", documentHandler.Get)

	return requestIDMiddleware(loggingMiddleware(mux))
}
