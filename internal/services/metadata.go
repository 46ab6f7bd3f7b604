package services

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"

	yt "github.com/kkdai/youtube/v2"

	"flashtube-backend/internal/models"
)

const maxDescriptionLen = 500

type pageFetcher interface {
	FetchPage(ctx context.Context, videoID string) (string, error)
}

// MetadataFetcher pulls a video's display title, channel name and
// description from its public watch page. It never fails hard: any
// fetch or parse problem degrades to placeholder metadata.
type MetadataFetcher struct {
	pages    pageFetcher
	ytClient *yt.Client // optional secondary source
}

func NewMetadataFetcher(pages pageFetcher, ytClient *yt.Client) *MetadataFetcher {
	return &MetadataFetcher{pages: pages, ytClient: ytClient}
}

var (
	titleTagRe   = regexp.MustCompile(`<title>(.*?)</title>`)
	authorMetaRe = regexp.MustCompile(`<meta name="author" content="(.*?)">`)
	descMetaRe   = regexp.MustCompile(`<meta name="description" content="(.*?)">`)
	lengthSecRe  = regexp.MustCompile(`"lengthSeconds":"(\d+)"`)
)

// GetVideoMetadata scans the watch page for known tags. When the page
// yields nothing usable it falls back to the youtube client, and when
// that fails too it returns "Unknown Title" rather than an error.
func (f *MetadataFetcher) GetVideoMetadata(ctx context.Context, videoID string) models.VideoMetadata {
	meta := models.VideoMetadata{
		VideoID:    videoID,
		VideoTitle: "Unknown Title",
		VideoURL:   WatchURL(videoID),
	}

	page, err := f.pages.FetchPage(ctx, videoID)
	if err != nil {
		log.Printf("metadata page fetch failed for %s: %v", videoID, err)
	} else {
		scanWatchPage(page, &meta)
	}

	if meta.VideoTitle == "Unknown Title" && f.ytClient != nil {
		f.fillFromClient(ctx, videoID, &meta)
	}

	return meta
}

func scanWatchPage(page string, meta *models.VideoMetadata) {
	if m := titleTagRe.FindStringSubmatch(page); m != nil {
		title := strings.TrimSuffix(m[1], " - YouTube")
		if title != "" {
			meta.VideoTitle = title
		}
	}

	if m := authorMetaRe.FindStringSubmatch(page); m != nil && m[1] != "" {
		channel := m[1]
		meta.ChannelName = &channel
	}

	if m := descMetaRe.FindStringSubmatch(page); m != nil && m[1] != "" {
		desc := m[1]
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen]
		}
		meta.Description = &desc
	}

	if m := lengthSecRe.FindStringSubmatch(page); m != nil {
		if seconds, err := strconv.Atoi(m[1]); err == nil {
			meta.DurationSeconds = seconds
		}
	}
}

func (f *MetadataFetcher) fillFromClient(ctx context.Context, videoID string, meta *models.VideoMetadata) {
	video, err := f.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		log.Printf("metadata client fallback failed for %s: %v", videoID, err)
		return
	}

	if video.Title != "" {
		meta.VideoTitle = video.Title
	}
	if meta.ChannelName == nil && video.Author != "" {
		author := video.Author
		meta.ChannelName = &author
	}
	if meta.Description == nil && video.Description != "" {
		desc := video.Description
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen]
		}
		meta.Description = &desc
	}
	if meta.DurationSeconds == 0 {
		meta.DurationSeconds = int(video.Duration.Seconds())
	}
}
