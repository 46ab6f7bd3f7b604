package handlers

import (
	"encoding/json"
	"net/http"

	"flashtube-backend/internal/models"
)

type TranscriptHandler struct {
	transcripts TranscriptProvider
}

func NewTranscriptHandler(transcripts TranscriptProvider) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

// Fetch returns the assembled transcript for a video URL without
// running AI generation.
func (h *TranscriptHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req models.TranscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"url": "url is required"}, r))
		return
	}

	result, err := h.transcripts.GetTranscript(r.Context(), req.URL, req.Language, req.PreserveFormatting)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
