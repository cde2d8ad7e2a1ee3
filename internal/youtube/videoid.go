// Package youtube talks to YouTube: video-id extraction from user URLs,
// transcript retrieval, preview search, and trending topics.
package youtube

import "regexp"

// Recognized URL forms: watch, short link, embed, /v/.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([^&\s]+)`),
	regexp.MustCompile(`(?:https?://)?youtu\.be/([^&\s?]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([^&\s?]+)`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/v/([^&\s?]+)`),
}

// ExtractVideoID returns the video identifier embedded in a YouTube URL, or
// "" when the URL matches no recognized form. Extraction is deterministic and
// never fails; an empty result is handled downstream as a fetch failure.
func ExtractVideoID(url string) string {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractVideoIDs returns the identifiers for every URL that yields one,
// preserving input order. URLs with no recognizable ID are skipped.
func ExtractVideoIDs(urls []string) []string {
	ids := make([]string, 0, len(urls))
	for _, url := range urls {
		if id := ExtractVideoID(url); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
