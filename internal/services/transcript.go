package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"flashtube-backend/internal/models"
)

type captionSource interface {
	GetTranscript(ctx context.Context, videoID, language string) (*models.CaptionTrack, error)
}

type metadataSource interface {
	GetVideoMetadata(ctx context.Context, videoID string) models.VideoMetadata
}

// TranscriptService runs the full transcript pipeline for one request:
// video ID extraction, metadata scan, caption fallback chain, assembly.
// Each call produces a fresh result graph; nothing is shared between
// requests except the pooled clients underneath.
type TranscriptService struct {
	captions captionSource
	metadata metadataSource
	cache    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewTranscriptService(captions captionSource, metadata metadataSource, cache *redis.Client, cacheTTL time.Duration) *TranscriptService {
	return &TranscriptService{
		captions: captions,
		metadata: metadata,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetTranscript fetches and assembles the transcript for a video URL.
// Returns ValidationError for an unparseable URL and NoCaptionsError
// when the caption chain is exhausted; metadata problems never fail the
// call.
func (s *TranscriptService) GetTranscript(ctx context.Context, url, language string, preserveFormatting bool) (*models.TranscriptResult, error) {
	videoID := ExtractVideoID(url)
	if videoID == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"youtube_url": "could not extract video ID from URL",
		}}
	}
	if language == "" {
		language = "en"
	}

	cacheKey := fmt.Sprintf("transcript:%s:%s:%t", videoID, language, preserveFormatting)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	meta := s.metadata.GetVideoMetadata(ctx, videoID)

	track, err := s.captions.GetTranscript(ctx, videoID, language)
	if err != nil {
		return nil, err
	}

	assembled := AssembleTranscript(track.Segments, preserveFormatting)

	result := &models.TranscriptResult{
		VideoID:     videoID,
		VideoTitle:  meta.VideoTitle,
		VideoURL:    meta.VideoURL,
		ChannelName: meta.ChannelName,
		Description: meta.Description,
		Language:    track.Language,
		IsGenerated: track.IsGenerated,
		Segments:    track.Segments,
		FullText:    assembled.FullText,
		Duration:    assembled.Duration,
		WordCount:   assembled.WordCount,
	}

	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

func (s *TranscriptService) cacheGet(ctx context.Context, key string) *models.TranscriptResult {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var result models.TranscriptResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (s *TranscriptService) cacheSet(ctx context.Context, key string, result *models.TranscriptResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		log.Printf("transcript cache write failed: %v", err)
	}
}
