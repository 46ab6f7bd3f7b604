package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"

	"flashtube-backend/internal/models"
)

// transcriptAPI is the slice of the youtube-transcript-api client the
// fetcher needs; tests substitute a fake.
type transcriptAPI interface {
	FetchSegments(videoID string, languages []string) ([]models.CaptionSegment, error)
}

// apiTranscriptClient adapts the hightemp transcript API client to
// transcriptAPI.
type apiTranscriptClient struct {
	api *ytapi.YouTubeTranscriptApi
}

func (c *apiTranscriptClient) FetchSegments(videoID string, languages []string) ([]models.CaptionSegment, error) {
	transcript, err := c.api.GetTranscript(videoID, languages)
	if err != nil {
		return nil, err
	}

	segments := make([]models.CaptionSegment, 0, len(transcript.Entries))
	for _, entry := range transcript.Entries {
		segments = append(segments, models.CaptionSegment{
			Text:     entry.Text,
			Start:    entry.Start,
			Duration: entry.Duration,
		})
	}
	return segments, nil
}

// captionPageClient is the watch-page surface used by the enumeration
// and scrape strategies.
type captionPageClient interface {
	ListCaptionTracks(ctx context.Context, videoID string) ([]CaptionTrackInfo, error)
	FetchTrackXML(ctx context.Context, baseURL string) ([]models.CaptionSegment, error)
	FetchTrackJSON3(ctx context.Context, baseURL string) ([]models.CaptionSegment, error)
}

// CaptionFetcher retrieves timed caption segments for a video by trying
// an ordered list of independent strategies until one yields a non-empty
// track. Strategy failures are swallowed and logged; only total
// exhaustion surfaces, as NoCaptionsError.
type CaptionFetcher struct {
	api   transcriptAPI
	pages captionPageClient
}

func NewCaptionFetcher(api transcriptAPI, pages captionPageClient) *CaptionFetcher {
	return &CaptionFetcher{api: api, pages: pages}
}

// DefaultCaptionFetcher builds a fetcher with the real transcript API
// client and the given watch-page client.
func DefaultCaptionFetcher(pages *WatchPageClient) *CaptionFetcher {
	return NewCaptionFetcher(&apiTranscriptClient{api: ytapi.NewYouTubeTranscriptApi()}, pages)
}

type captionStrategy struct {
	name string
	run  func(ctx context.Context, videoID, language string) (*models.CaptionTrack, error)
}

func (f *CaptionFetcher) strategies() []captionStrategy {
	return []captionStrategy{
		{"api-preferred-languages", f.apiPreferredLanguages},
		{"api-any-language", f.apiAnyLanguage},
		{"tracks-language-match", f.tracksLanguageMatch},
		{"tracks-first-available", f.tracksFirstAvailable},
		{"page-scrape-json3", f.pageScrapeJSON3},
	}
}

// GetTranscript runs the fallback chain for one video. The strategies
// run strictly in order, never concurrently; each is a network round
// trip and quota matters more than latency here.
func (f *CaptionFetcher) GetTranscript(ctx context.Context, videoID, language string) (*models.CaptionTrack, error) {
	if language == "" {
		language = "en"
	}

	for _, strategy := range f.strategies() {
		track, err := strategy.run(ctx, videoID, language)
		if err != nil {
			log.Printf("caption strategy %s failed for %s: %v", strategy.name, videoID, err)
			continue
		}
		if track == nil || len(track.Segments) == 0 {
			continue
		}
		return track, nil
	}

	return nil, &NoCaptionsError{VideoID: videoID}
}

// Strategy 1: direct fetch with a ranked language preference list.
// The API does not reveal whether the winning track was auto-generated,
// so IsGenerated stays unknown.
func (f *CaptionFetcher) apiPreferredLanguages(_ context.Context, videoID, language string) (*models.CaptionTrack, error) {
	segments, err := f.api.FetchSegments(videoID, []string{language, "en", "en-US", "en-GB"})
	if err != nil {
		return nil, err
	}
	return &models.CaptionTrack{Segments: segments, Language: language}, nil
}

// Strategy 2: direct fetch of whatever default track exists.
func (f *CaptionFetcher) apiAnyLanguage(_ context.Context, videoID, _ string) (*models.CaptionTrack, error) {
	segments, err := f.api.FetchSegments(videoID, nil)
	if err != nil {
		return nil, err
	}
	return &models.CaptionTrack{Segments: segments, Language: "auto"}, nil
}

// Strategy 3: enumerate all advertised tracks and fetch the first one
// whose language code starts with the requested prefix ("en" matches
// "en-US"). A track that fails to fetch does not abort the scan.
func (f *CaptionFetcher) tracksLanguageMatch(ctx context.Context, videoID, language string) (*models.CaptionTrack, error) {
	tracks, err := f.pages.ListCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	for _, track := range tracks {
		if !strings.HasPrefix(track.LanguageCode, language) {
			continue
		}
		segments, err := f.pages.FetchTrackXML(ctx, track.BaseURL)
		if err != nil {
			log.Printf("caption track %s fetch failed for %s: %v", track.LanguageCode, videoID, err)
			continue
		}
		return trackResult(track, segments), nil
	}

	return nil, fmt.Errorf("no caption track matches language %q", language)
}

// Strategy 4: no language match anywhere, take the first track that
// fetches successfully.
func (f *CaptionFetcher) tracksFirstAvailable(ctx context.Context, videoID, _ string) (*models.CaptionTrack, error) {
	tracks, err := f.pages.ListCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	for _, track := range tracks {
		segments, err := f.pages.FetchTrackXML(ctx, track.BaseURL)
		if err != nil {
			log.Printf("caption track %s fetch failed for %s: %v", track.LanguageCode, videoID, err)
			continue
		}
		return trackResult(track, segments), nil
	}

	return nil, fmt.Errorf("no caption track could be fetched")
}

// Strategy 5: last resort, re-request each track's caption data in json3
// event format. Depends on the same unversioned player-response shape as
// the enumeration; allowed to degrade to overall failure.
func (f *CaptionFetcher) pageScrapeJSON3(ctx context.Context, videoID, _ string) (*models.CaptionTrack, error) {
	tracks, err := f.pages.ListCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	for _, track := range tracks {
		segments, err := f.pages.FetchTrackJSON3(ctx, track.BaseURL)
		if err != nil {
			log.Printf("json3 fetch of track %s failed for %s: %v", track.LanguageCode, videoID, err)
			continue
		}
		return trackResult(track, segments), nil
	}

	return nil, fmt.Errorf("no caption track yielded json3 data")
}

func trackResult(track CaptionTrackInfo, segments []models.CaptionSegment) *models.CaptionTrack {
	generated := track.IsGenerated()
	return &models.CaptionTrack{
		Segments:    segments,
		Language:    track.LanguageCode,
		IsGenerated: &generated,
	}
}
