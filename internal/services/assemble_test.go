package services

import (
	"strings"
	"testing"

	"flashtube-backend/internal/models"
)

func TestAssembleTranscript_JoinSeparator(t *testing.T) {
	segments := []models.CaptionSegment{
		{Text: "hello", Start: 0, Duration: 1.5},
		{Text: "world", Start: 1.5, Duration: 2},
	}

	got := AssembleTranscript(segments, false)
	if got.FullText != "hello world" {
		t.Errorf("space join: got %q", got.FullText)
	}

	got = AssembleTranscript(segments, true)
	if got.FullText != "hello\nworld" {
		t.Errorf("newline join: got %q", got.FullText)
	}
}

func TestAssembleTranscript_Duration(t *testing.T) {
	tests := []struct {
		name     string
		segments []models.CaptionSegment
		want     float64
	}{
		{"empty", nil, 0},
		{
			"single segment",
			[]models.CaptionSegment{{Text: "a", Start: 3, Duration: 2}},
			5,
		},
		{
			"max end time wins, not last segment",
			[]models.CaptionSegment{
				{Text: "a", Start: 0, Duration: 10},
				{Text: "b", Start: 4, Duration: 2},
			},
			10,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AssembleTranscript(tc.segments, false)
			if got.Duration != tc.want {
				t.Errorf("Duration = %v, want %v", got.Duration, tc.want)
			}
		})
	}
}

func TestAssembleTranscript_WordCount(t *testing.T) {
	segments := []models.CaptionSegment{
		{Text: "one two", Start: 0, Duration: 1},
		{Text: "three", Start: 1, Duration: 1},
	}

	got := AssembleTranscript(segments, true)
	if want := len(strings.Fields(got.FullText)); got.WordCount != want {
		t.Errorf("WordCount = %d, want %d", got.WordCount, want)
	}
	if got.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", got.WordCount)
	}
}

func TestCleanTranscript(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "hello   world\n\tagain", "hello world again"},
		{"strips bracket annotations", "intro [Music] outro", "intro  outro"},
		{"strips paren annotations", "he said (laughs) stop", "he said  stop"},
		{"trims ends", "  padded  ", "padded"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanTranscript(tc.input); got != tc.want {
				t.Errorf("CleanTranscript(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
