package handlers

import (
	"net/http"

	"flashtube-backend/internal/models"
)

const Version = "1.0.0"

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Version: Version})
}
