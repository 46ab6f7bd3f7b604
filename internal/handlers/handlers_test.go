package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flashtube-backend/internal/models"
	"flashtube-backend/internal/services"
)

type fakeTranscripts struct {
	result *models.TranscriptResult
	err    error
	calls  int
}

func (f *fakeTranscripts) GetTranscript(ctx context.Context, url, language string, preserveFormatting bool) (*models.TranscriptResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeGenerator struct {
	cards []models.Flashcard
	err   error
	calls int
}

func (f *fakeGenerator) GenerateFlashcards(ctx context.Context, transcript string, req models.FlashcardRequest, videoTitle string) ([]models.Flashcard, error) {
	f.calls++
	return f.cards, f.err
}

func sampleTranscript() *models.TranscriptResult {
	return &models.TranscriptResult{
		VideoID:    "abc12345678",
		VideoTitle: "Intro to Go",
		VideoURL:   "https://www.youtube.com/watch?v=abc12345678",
		Language:   "en",
		FullText:   "hello world again",
		Duration:   125.5,
		WordCount:  3,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestGenerate_Success(t *testing.T) {
	transcripts := &fakeTranscripts{result: sampleTranscript()}
	generator := &fakeGenerator{cards: []models.Flashcard{
		{Question: "What is Go known for?", Answer: "Simplicity", Difficulty: "easy", Topic: "Go"},
	}}
	h := NewFlashcardHandler(transcripts, generator)

	rr := postJSON(t, h.Generate, "/api/v1/flashcards/generate", models.FlashcardRequest{
		YouTubeURL: "https://youtu.be/abc12345678",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var set models.FlashcardSet
	if err := json.NewDecoder(rr.Body).Decode(&set); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if set.VideoID != "abc12345678" {
		t.Errorf("VideoID = %q", set.VideoID)
	}
	if set.VideoTitle != "Intro to Go" {
		t.Errorf("VideoTitle = %q", set.VideoTitle)
	}
	if len(set.Flashcards) != 1 {
		t.Errorf("got %d flashcards", len(set.Flashcards))
	}
	if set.TranscriptLength != len("hello world again") {
		t.Errorf("TranscriptLength = %d", set.TranscriptLength)
	}
	if set.Duration == nil || *set.Duration != 125 {
		t.Errorf("Duration = %v", set.Duration)
	}
}

func TestGenerate_InvalidBody(t *testing.T) {
	h := NewFlashcardHandler(&fakeTranscripts{}, &fakeGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/flashcards/generate", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestGenerate_Validation(t *testing.T) {
	focus := strings.Repeat("x", 101)
	tests := []struct {
		name      string
		req       models.FlashcardRequest
		wantField string
	}{
		{"missing url", models.FlashcardRequest{}, "youtube_url"},
		{"bad url", models.FlashcardRequest{YouTubeURL: "https://vimeo.com/12345"}, "youtube_url"},
		{"too many cards", models.FlashcardRequest{YouTubeURL: "https://youtu.be/abc12345678", NumCards: 51}, "num_cards"},
		{"negative cards", models.FlashcardRequest{YouTubeURL: "https://youtu.be/abc12345678", NumCards: -1}, "num_cards"},
		{"bad difficulty", models.FlashcardRequest{YouTubeURL: "https://youtu.be/abc12345678", DifficultyLevel: "brutal"}, "difficulty_level"},
		{"long focus", models.FlashcardRequest{YouTubeURL: "https://youtu.be/abc12345678", SubjectFocus: &focus}, "subject_focus"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			transcripts := &fakeTranscripts{result: sampleTranscript()}
			h := NewFlashcardHandler(transcripts, &fakeGenerator{})

			rr := postJSON(t, h.Generate, "/api/v1/flashcards/generate", tc.req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			resp := decodeError(t, rr)
			if resp.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q", resp.Error.Code)
			}
			if _, ok := resp.Error.Fields[tc.wantField]; !ok {
				t.Errorf("missing field %q in %v", tc.wantField, resp.Error.Fields)
			}
			if transcripts.calls != 0 {
				t.Errorf("transcript fetch attempted on invalid request")
			}
		})
	}
}

func TestGenerate_NoCaptions(t *testing.T) {
	transcripts := &fakeTranscripts{err: &services.NoCaptionsError{VideoID: "abc12345678"}}
	generator := &fakeGenerator{}
	h := NewFlashcardHandler(transcripts, generator)

	rr := postJSON(t, h.Generate, "/api/v1/flashcards/generate", models.FlashcardRequest{
		YouTubeURL: "https://youtu.be/abc12345678",
	})

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Code != "NO_CAPTIONS" {
		t.Errorf("code = %q", resp.Error.Code)
	}
	if generator.calls != 0 {
		t.Errorf("AI generation attempted after caption failure")
	}
}

func TestGenerate_AIFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"invalid response", &services.InvalidAIResponseError{Message: "not json"}, "INVALID_AI_RESPONSE"},
		{"generation error", &services.GenerationError{Message: "quota exceeded"}, "GENERATION_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewFlashcardHandler(&fakeTranscripts{result: sampleTranscript()}, &fakeGenerator{err: tc.err})

			rr := postJSON(t, h.Generate, "/api/v1/flashcards/generate", models.FlashcardRequest{
				YouTubeURL: "https://youtu.be/abc12345678",
			})

			if rr.Code != http.StatusBadGateway {
				t.Fatalf("status = %d, want 502", rr.Code)
			}
			if resp := decodeError(t, rr); resp.Error.Code != tc.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tc.wantCode)
			}
		})
	}
}

func TestTranscriptFetch_Success(t *testing.T) {
	h := NewTranscriptHandler(&fakeTranscripts{result: sampleTranscript()})

	rr := postJSON(t, h.Fetch, "/api/v1/transcript", models.TranscriptRequest{
		URL: "https://youtu.be/abc12345678",
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var result models.TranscriptResult
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.FullText != "hello world again" {
		t.Errorf("FullText = %q", result.FullText)
	}
}

func TestTranscriptFetch_MissingURL(t *testing.T) {
	transcripts := &fakeTranscripts{}
	h := NewTranscriptHandler(transcripts)

	rr := postJSON(t, h.Fetch, "/api/v1/transcript", models.TranscriptRequest{})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if transcripts.calls != 0 {
		t.Errorf("transcript fetch attempted without URL")
	}
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	Health(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp models.HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestRequestIDEchoedInErrors(t *testing.T) {
	h := NewFlashcardHandler(&fakeTranscripts{}, &fakeGenerator{})

	jsonBody, _ := json.Marshal(models.FlashcardRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/flashcards/generate", bytes.NewReader(jsonBody))
	req.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if resp := decodeError(t, rr); resp.Error.RequestID != "req-42" {
		t.Errorf("RequestID = %q", resp.Error.RequestID)
	}
}
