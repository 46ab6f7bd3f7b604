package models

import (
	"time"

	"github.com/google/uuid"
)

// FlashcardRequest is the inbound contract for flashcard generation.
type FlashcardRequest struct {
	YouTubeURL         string  `json:"youtube_url"`
	NumCards           int     `json:"num_cards"`
	DifficultyLevel    string  `json:"difficulty_level"` // "easy" | "medium" | "hard" | "mixed"
	SubjectFocus       *string `json:"subject_focus,omitempty"`
	Language           string  `json:"language"`
	PreserveFormatting bool    `json:"preserve_formatting"`
}

// Flashcard is a single validated question/answer study unit. Instances
// are built only by the generator's validation pass and never mutated
// afterward.
type Flashcard struct {
	ID          uuid.UUID `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Difficulty  string    `json:"difficulty"` // "easy" | "medium" | "hard"
	Topic       string    `json:"topic"`
	Explanation *string   `json:"explanation,omitempty"`
}

// FlashcardSet is the complete response for one generation request.
type FlashcardSet struct {
	ID               uuid.UUID   `json:"id"`
	VideoURL         string      `json:"video_url"`
	VideoTitle       string      `json:"video_title"`
	VideoID          string      `json:"video_id"`
	ChannelName      *string     `json:"channel_name,omitempty"`
	Duration         *int        `json:"duration,omitempty"` // seconds
	Flashcards       []Flashcard `json:"flashcards"`
	CreatedAt        time.Time   `json:"created_at"`
	TranscriptLength int         `json:"transcript_length"`
	Language         string      `json:"language"`
}
