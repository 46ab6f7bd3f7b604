package services

import (
	"context"
	"errors"
	"testing"

	"flashtube-backend/internal/models"
)

type fakeCaptionSource struct {
	track *models.CaptionTrack
	err   error
	calls int
}

func (f *fakeCaptionSource) GetTranscript(ctx context.Context, videoID, language string) (*models.CaptionTrack, error) {
	f.calls++
	return f.track, f.err
}

type fakeMetadataSource struct {
	meta models.VideoMetadata
}

func (f *fakeMetadataSource) GetVideoMetadata(ctx context.Context, videoID string) models.VideoMetadata {
	f.meta.VideoID = videoID
	f.meta.VideoURL = WatchURL(videoID)
	return f.meta
}

func TestTranscriptService_Success(t *testing.T) {
	generated := true
	channel := "Gopher Academy"
	captions := &fakeCaptionSource{
		track: &models.CaptionTrack{
			Segments: []models.CaptionSegment{
				{Text: "hello world", Start: 0, Duration: 2},
				{Text: "again", Start: 2, Duration: 3},
			},
			Language:    "en",
			IsGenerated: &generated,
		},
	}
	svc := NewTranscriptService(captions, &fakeMetadataSource{
		meta: models.VideoMetadata{VideoTitle: "Intro to Go", ChannelName: &channel},
	}, nil, 0)

	result, err := svc.GetTranscript(context.Background(), "https://youtu.be/abc12345678", "en", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.VideoID != "abc12345678" {
		t.Errorf("VideoID = %q", result.VideoID)
	}
	if result.FullText != "hello world again" {
		t.Errorf("FullText = %q", result.FullText)
	}
	if result.Duration != 5 {
		t.Errorf("Duration = %v, want 5", result.Duration)
	}
	if result.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", result.WordCount)
	}
	if result.VideoTitle != "Intro to Go" {
		t.Errorf("VideoTitle = %q", result.VideoTitle)
	}
	if result.IsGenerated == nil || !*result.IsGenerated {
		t.Error("IsGenerated should be carried from the caption track")
	}
}

func TestTranscriptService_InvalidURL(t *testing.T) {
	captions := &fakeCaptionSource{err: errors.New("should not be reached")}
	svc := NewTranscriptService(captions, &fakeMetadataSource{}, nil, 0)

	_, err := svc.GetTranscript(context.Background(), "https://example.com/nope", "en", false)

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if captions.calls != 0 {
		t.Error("caption fetch must not run for an invalid URL")
	}
}

func TestTranscriptService_NoCaptionsPropagates(t *testing.T) {
	captions := &fakeCaptionSource{err: &NoCaptionsError{VideoID: "abc12345678"}}
	svc := NewTranscriptService(captions, &fakeMetadataSource{}, nil, 0)

	_, err := svc.GetTranscript(context.Background(), "abc12345678", "en", false)

	var noCaptions *NoCaptionsError
	if !errors.As(err, &noCaptions) {
		t.Fatalf("expected NoCaptionsError, got %T: %v", err, err)
	}
}

func TestTranscriptService_PreserveFormatting(t *testing.T) {
	captions := &fakeCaptionSource{
		track: &models.CaptionTrack{
			Segments: []models.CaptionSegment{
				{Text: "line one", Start: 0, Duration: 1},
				{Text: "line two", Start: 1, Duration: 1},
			},
			Language: "en",
		},
	}
	svc := NewTranscriptService(captions, &fakeMetadataSource{}, nil, 0)

	result, err := svc.GetTranscript(context.Background(), "abc12345678", "en", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FullText != "line one\nline two" {
		t.Errorf("FullText = %q, want newline join", result.FullText)
	}
}
