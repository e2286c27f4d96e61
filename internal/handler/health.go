package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coinquest/engine/internal/storage"
)

// HealthHandler returns a health check endpoint that probes the blob store.
func HealthHandler(blobs storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, err := blobs.Get(r.Context(), "health_probe")
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
		})
	}
}
