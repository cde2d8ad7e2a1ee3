package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Preview search uses the YouTube Data API v3: one search call for
// candidates, one videos call for durations, then a duration filter so
// shorts and multi-hour streams don't reach the pipeline.

const (
	defaultAPIBase = "https://www.googleapis.com/youtube/v3"

	// Duration bounds in seconds for previewed videos.
	minPreviewDuration = 60
	maxPreviewDuration = 3600
)

// VideoPreview is one search result shown to the user before processing.
type VideoPreview struct {
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Thumbnail string  `json:"thumbnail"`
	VideoID   string  `json:"video_id"`
	Duration  float64 `json:"duration"`
}

// PreviewClient searches YouTube for candidate videos on a topic.
type PreviewClient struct {
	apiKey     string
	apiBase    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewPreviewClient(apiKey string, logger *slog.Logger) *PreviewClient {
	return &PreviewClient{
		apiKey:     apiKey,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Search returns up to maxResults previews for the topic, filtered to
// videos between one minute and one hour long.
func (c *PreviewClient) Search(ctx context.Context, topic string, maxResults int) ([]VideoPreview, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("youtube search: missing API key")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	var search searchResponse
	params := url.Values{
		"part":              {"snippet"},
		"type":              {"video"},
		"order":             {"relevance"},
		"maxResults":        {strconv.Itoa(maxResults)},
		"safeSearch":        {"strict"},
		"relevanceLanguage": {"en"},
		"q":                 {strings.ToLower(topic)},
		"key":               {c.apiKey},
	}
	if err := c.getJSON(ctx, "/search", params, &search); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		return []VideoPreview{}, nil
	}

	var videos videosResponse
	params = url.Values{
		"part": {"contentDetails"},
		"id":   {strings.Join(ids, ",")},
		"key":  {c.apiKey},
	}
	if err := c.getJSON(ctx, "/videos", params, &videos); err != nil {
		return nil, fmt.Errorf("youtube video details: %w", err)
	}

	durations := make(map[string]float64, len(videos.Items))
	for _, item := range videos.Items {
		durations[item.ID] = parseISODuration(item.ContentDetails.Duration)
	}

	previews := make([]VideoPreview, 0, len(search.Items))
	for _, item := range search.Items {
		id := item.ID.VideoID
		duration, ok := durations[id]
		if !ok || duration <= minPreviewDuration || duration >= maxPreviewDuration {
			continue
		}
		previews = append(previews, VideoPreview{
			Title:     item.Snippet.Title,
			Link:      "https://www.youtube.com/watch?v=" + id,
			Thumbnail: item.Snippet.Thumbnails.High.URL,
			VideoID:   id,
			Duration:  duration,
		})
	}
	if len(previews) > maxResults {
		previews = previews[:maxResults]
	}
	return previews, nil
}

func (c *PreviewClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var isoDurationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts an ISO 8601 duration like "PT1H2M3S" to seconds.
// Unparseable input yields 0, which the duration filter then rejects.
func parseISODuration(s string) float64 {
	m := isoDurationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return float64(hours*3600 + minutes*60 + seconds)
}
