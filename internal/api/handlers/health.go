package handlers

import (
	"net/http"
	"time"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	res := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	}
	writeJSON(w, r, http.StatusOK, res)
}
