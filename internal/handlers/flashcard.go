package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"flashtube-backend/internal/models"
	"flashtube-backend/internal/services"
)

const maxSubjectFocusLen = 100

// TranscriptProvider yields an assembled transcript for a video URL.
type TranscriptProvider interface {
	GetTranscript(ctx context.Context, url, language string, preserveFormatting bool) (*models.TranscriptResult, error)
}

// CardGenerator turns a transcript into validated flashcards.
type CardGenerator interface {
	GenerateFlashcards(ctx context.Context, transcript string, req models.FlashcardRequest, videoTitle string) ([]models.Flashcard, error)
}

type FlashcardHandler struct {
	transcripts TranscriptProvider
	generator   CardGenerator
}

func NewFlashcardHandler(transcripts TranscriptProvider, generator CardGenerator) *FlashcardHandler {
	return &FlashcardHandler{transcripts: transcripts, generator: generator}
}

// Generate runs the full pipeline for one request: URL validation,
// transcript fetch, AI generation, set assembly.
func (h *FlashcardHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.FlashcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	applyRequestDefaults(&req)
	if fields := validateFlashcardRequest(req); len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fields, r))
		return
	}

	transcript, err := h.transcripts.GetTranscript(r.Context(), req.YouTubeURL, req.Language, req.PreserveFormatting)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	cards, err := h.generator.GenerateFlashcards(r.Context(), transcript.FullText, req, transcript.VideoTitle)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	set := models.FlashcardSet{
		ID:               uuid.New(),
		VideoURL:         transcript.VideoURL,
		VideoTitle:       transcript.VideoTitle,
		VideoID:          transcript.VideoID,
		ChannelName:      transcript.ChannelName,
		Flashcards:       cards,
		CreatedAt:        time.Now().UTC(),
		TranscriptLength: len(transcript.FullText),
		Language:         transcript.Language,
	}
	if transcript.Duration > 0 {
		d := int(transcript.Duration)
		set.Duration = &d
	}

	writeJSON(w, http.StatusOK, set)
}

func applyRequestDefaults(req *models.FlashcardRequest) {
	if req.NumCards == 0 {
		req.NumCards = 10
	}
	if req.DifficultyLevel == "" {
		req.DifficultyLevel = "mixed"
	}
	if req.Language == "" {
		req.Language = "en"
	}
}

func validateFlashcardRequest(req models.FlashcardRequest) map[string]string {
	fields := make(map[string]string)

	if req.YouTubeURL == "" {
		fields["youtube_url"] = "youtube_url is required"
	} else if services.ExtractVideoID(req.YouTubeURL) == "" {
		fields["youtube_url"] = "not a recognizable YouTube URL"
	}

	if req.NumCards < 1 || req.NumCards > 50 {
		fields["num_cards"] = "num_cards must be between 1 and 50"
	}

	switch req.DifficultyLevel {
	case "easy", "medium", "hard", "mixed":
	default:
		fields["difficulty_level"] = "difficulty_level must be easy, medium, hard or mixed"
	}

	if req.SubjectFocus != nil && len(*req.SubjectFocus) > maxSubjectFocusLen {
		fields["subject_focus"] = "subject_focus must be at most 100 characters"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
