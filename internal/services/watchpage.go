package services

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"flashtube-backend/internal/models"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// WatchPageClient fetches public YouTube watch pages and the caption
// data reachable from them. It holds no per-request state, so a single
// instance is safe to share across requests.
type WatchPageClient struct {
	httpClient *http.Client
}

// NewWatchPageClient wraps the given HTTP client; pass nil for a default
// client with a 10 second timeout.
func NewWatchPageClient(httpClient *http.Client) *WatchPageClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &WatchPageClient{httpClient: httpClient}
}

// FetchPage downloads the watch page HTML for a video.
func (c *WatchPageClient) FetchPage(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, WatchURL(videoID), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch YouTube page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("YouTube page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read YouTube page: %w", err)
	}

	return string(body), nil
}

// CaptionTrackInfo is one selectable caption track advertised by the
// watch page's embedded player response.
type CaptionTrackInfo struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" when auto-generated
}

// IsGenerated reports whether the track is machine-generated.
func (t CaptionTrackInfo) IsGenerated() bool { return t.Kind == "asr" }

var playerResponseRe = regexp.MustCompile(`ytInitialPlayerResponse\s*=\s*(\{.+?\})\s*;`)

// ListCaptionTracks scrapes the ytInitialPlayerResponse blob out of the
// watch page and returns its advertised caption tracks. The blob is an
// unversioned internal shape; any mismatch degrades to an error the
// caller treats as "no tracks", never as a fatal condition.
func (c *WatchPageClient) ListCaptionTracks(ctx context.Context, videoID string) ([]CaptionTrackInfo, error) {
	page, err := c.FetchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return extractCaptionTracks(page)
}

func extractCaptionTracks(page string) ([]CaptionTrackInfo, error) {
	m := playerResponseRe.FindStringSubmatch(page)
	if m == nil {
		return nil, fmt.Errorf("no player response found in page")
	}

	var playerResponse struct {
		Captions struct {
			Renderer struct {
				CaptionTracks []CaptionTrackInfo `json:"captionTracks"`
			} `json:"playerCaptionsTracklistRenderer"`
		} `json:"captions"`
	}
	if err := json.Unmarshal([]byte(m[1]), &playerResponse); err != nil {
		return nil, fmt.Errorf("failed to parse player response: %w", err)
	}

	tracks := playerResponse.Captions.Renderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, fmt.Errorf("no caption tracks in player response")
	}

	return tracks, nil
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// FetchTrackXML downloads a caption track's default timedtext XML and
// converts it into segments.
func (c *WatchPageClient) FetchTrackXML(ctx context.Context, baseURL string) ([]models.CaptionSegment, error) {
	body, err := c.fetchCaptionData(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	var tt timedTextXML
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse captions XML: %w", err)
	}

	var segments []models.CaptionSegment
	for _, txt := range tt.Texts {
		text := strings.TrimSpace(html.UnescapeString(txt.Text))
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(txt.Start, 64)
		dur, _ := strconv.ParseFloat(txt.Dur, 64)
		segments = append(segments, models.CaptionSegment{
			Text:     text,
			Start:    start,
			Duration: dur,
		})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("captions XML empty")
	}

	return segments, nil
}

type timedTextJSON struct {
	Events []struct {
		TStartMs    int64 `json:"tStartMs"`
		DDurationMs int64 `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// FetchTrackJSON3 downloads a caption track in json3 event format
// (baseUrl + "&fmt=json3") and converts millisecond timestamps into
// second-based segments.
func (c *WatchPageClient) FetchTrackJSON3(ctx context.Context, baseURL string) ([]models.CaptionSegment, error) {
	body, err := c.fetchCaptionData(ctx, baseURL+"&fmt=json3")
	if err != nil {
		return nil, err
	}

	var tt timedTextJSON
	if err := json.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse json3 captions: %w", err)
	}

	var segments []models.CaptionSegment
	for _, event := range tt.Events {
		if len(event.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		segments = append(segments, models.CaptionSegment{
			Text:     text.String(),
			Start:    float64(event.TStartMs) / 1000,
			Duration: float64(event.DDurationMs) / 1000,
		})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("json3 captions empty")
	}

	return segments, nil
}

func (c *WatchPageClient) fetchCaptionData(ctx context.Context, captionURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read captions: %w", err)
	}

	return body, nil
}
