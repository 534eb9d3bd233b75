package handlers

import (
	"label-batch-service/internal/catalog"
	"net/http"
)

// Health is the liveness check. It also reports how many named options the
// catalog loaded, which is zero only if initialisation went wrong.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"options": len(catalog.Names()),
	})
}
