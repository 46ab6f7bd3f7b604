package models

// CaptionSegment is one timed chunk of caption text, ordered by start
// time as delivered by the source and never mutated after fetch.
type CaptionSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`    // seconds
	Duration float64 `json:"duration"` // seconds
}

// CaptionTrack is the raw output of a successful caption fetch.
// IsGenerated is nil when the winning strategy cannot tell whether the
// track is auto-generated.
type CaptionTrack struct {
	Segments    []CaptionSegment
	Language    string
	IsGenerated *bool
}

// VideoMetadata holds whatever the watch page or fallback client could
// determine about a video. Only VideoID, VideoTitle and VideoURL are
// guaranteed.
type VideoMetadata struct {
	VideoID         string
	VideoTitle      string
	VideoURL        string
	ChannelName     *string
	Description     *string
	DurationSeconds int
}

// TranscriptRequest is the inbound contract of the transcript endpoint.
type TranscriptRequest struct {
	URL                string `json:"url"`
	Language           string `json:"language"`
	PreserveFormatting bool   `json:"preserve_formatting"`
}

// TranscriptResult is the assembled transcript plus metadata for one
// video. Duration is max(start+duration) over segments, 0 when there
// are none; FullText is exactly the segments' texts joined in order.
type TranscriptResult struct {
	VideoID     string           `json:"video_id"`
	VideoTitle  string           `json:"video_title"`
	VideoURL    string           `json:"video_url"`
	ChannelName *string          `json:"channel_name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Language    string           `json:"language"`
	IsGenerated *bool            `json:"is_generated,omitempty"`
	Segments    []CaptionSegment `json:"segments"`
	FullText    string           `json:"full_text"`
	Duration    float64          `json:"duration"`
	WordCount   int              `json:"word_count"`
}
