package services

import (
	"regexp"
	"strings"

	"flashtube-backend/internal/models"
)

// AssembledTranscript is the text-level aggregate of a segment sequence.
type AssembledTranscript struct {
	FullText  string
	Duration  float64
	WordCount int
}

// AssembleTranscript joins segment texts in order, with newlines when
// preserveFormatting is set and single spaces otherwise. Duration is the
// maximum segment end time (0 for no segments). No per-segment trimming
// happens here; CleanTranscript is a separate opt-in step.
func AssembleTranscript(segments []models.CaptionSegment, preserveFormatting bool) AssembledTranscript {
	sep := " "
	if preserveFormatting {
		sep = "\n"
	}

	parts := make([]string, len(segments))
	var duration float64
	for i, seg := range segments {
		parts[i] = seg.Text
		if end := seg.Start + seg.Duration; end > duration {
			duration = end
		}
	}

	fullText := strings.Join(parts, sep)

	return AssembledTranscript{
		FullText:  fullText,
		Duration:  duration,
		WordCount: len(strings.Fields(fullText)),
	}
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	bracketRe    = regexp.MustCompile(`\[.*?\]`)
	parenRe      = regexp.MustCompile(`\(.*?\)`)
)

// CleanTranscript normalizes transcript text for downstream processing:
// collapses whitespace runs, strips [Music]/(laughs)-style annotations,
// and trims the ends.
func CleanTranscript(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = bracketRe.ReplaceAllString(text, "")
	text = parenRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
