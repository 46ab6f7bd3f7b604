package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"flashtube-backend/internal/models"
)

func sampleSet() models.FlashcardSet {
	return models.FlashcardSet{
		ID:         uuid.New(),
		VideoURL:   "https://www.youtube.com/watch?v=abc12345678",
		VideoTitle: "Intro to Go",
		VideoID:    "abc12345678",
		Language:   "en",
		Flashcards: []models.Flashcard{
			{ID: uuid.New(), Question: "What is a goroutine?", Answer: "A lightweight thread", Difficulty: "easy", Topic: "Concurrency"},
			{ID: uuid.New(), Question: "What does the select statement do?", Answer: "Waits on multiple channels", Difficulty: "hard", Topic: "Concurrency"},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet()

	path, err := WriteJSON(dir, set, "the full transcript text")
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if filepath.Base(path) != "flashcards_abc12345678.json" {
		t.Errorf("file name = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}
	if artifact.VideoID != "abc12345678" {
		t.Errorf("VideoID = %q", artifact.VideoID)
	}
	if len(artifact.Flashcards) != 2 {
		t.Errorf("got %d flashcards", len(artifact.Flashcards))
	}
	if artifact.TranscriptPreview != "the full transcript text" {
		t.Errorf("TranscriptPreview = %q", artifact.TranscriptPreview)
	}
}

func TestWriteJSON_PreviewTruncated(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("a", 600)

	path, err := WriteJSON(dir, sampleSet(), long)
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, _ := os.ReadFile(path)
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(artifact.TranscriptPreview) != 500 {
		t.Errorf("preview length = %d, want 500", len(artifact.TranscriptPreview))
	}
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet()

	path, err := WriteHTML(dir, set, "transcript body text")
	if err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	if filepath.Base(path) != "summary_abc12345678.html" {
		t.Errorf("file name = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read html: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"Intro to Go",
		"What is a goroutine?",
		"Question 1:",
		"Question 2:",
		`class="difficulty easy"`,
		`class="difficulty hard"`,
		"transcript body text",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestWriteHTML_EscapesContent(t *testing.T) {
	dir := t.TempDir()
	set := sampleSet()
	set.Flashcards[0].Question = "What does <script> mean in HTML docs?"

	path, err := WriteHTML(dir, set, "text")
	if err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "<script>") {
		t.Errorf("question was not HTML-escaped")
	}
}
