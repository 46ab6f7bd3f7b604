package services

import (
	"regexp"
	"strings"
)

var (
	shortLinkRe = regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`)
	watchRe     = regexp.MustCompile(`v=([0-9A-Za-z_-]{11})`)
	embedRe     = regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`)
	bareIDRe    = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
)

// ExtractVideoID pulls the 11-character video ID out of the URL shapes
// YouTube uses (youtu.be short links, watch?v=, embed) or accepts a bare
// ID. Returns "" when nothing matches; callers must treat that as a
// client-input error, not a retryable fault.
func ExtractVideoID(url string) string {
	if strings.Contains(url, "youtu.be") {
		if m := shortLinkRe.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}

	if strings.Contains(url, "youtube.com") && strings.Contains(url, "v=") {
		if m := watchRe.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}

	if strings.Contains(url, "embed/") {
		if m := embedRe.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}

	if bareIDRe.MatchString(url) {
		return url
	}

	return ""
}

// WatchURL builds the canonical watch-page URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
