package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Transcript fetching scrapes the watch page for ytInitialPlayerResponse,
// picks a caption track, and downloads its timedtext XML. Works without an
// API key; videos without captions yield ErrNoTranscript.

// ErrNoTranscript is returned when a video has no usable caption track.
var ErrNoTranscript = errors.New("no transcript available")

const (
	watchURLPrefix       = "https://www.youtube.com/watch?v="
	playerResponseMarker = "ytInitialPlayerResponse = "
	maxWatchPageBytes    = 6 * 1024 * 1024
	maxTimedTextBytes    = 512 * 1024

	browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Segment is one timestamped span of transcript text.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type timedText struct {
	Lines []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Text  string  `xml:",chardata"`
	} `xml:"text"`
}

// TranscriptFetcher retrieves caption transcripts for single videos.
// One attempt per video; callers decide how a failure degrades.
type TranscriptFetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewTranscriptFetcher(logger *slog.Logger) *TranscriptFetcher {
	return &TranscriptFetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Fetch returns the ordered timestamped segments for one video.
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: empty video id", ErrNoTranscript)
	}

	track, err := f.findCaptionTrack(ctx, videoID)
	if err != nil {
		return nil, err
	}

	segments, err := f.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, ErrNoTranscript
	}
	return segments, nil
}

func (f *TranscriptFetcher) findCaptionTrack(ctx context.Context, videoID string) (*captionTrack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURLPrefix+videoID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	raw := extractJSONObject(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if player.Captions == nil {
		if player.PlayabilityStatus != nil && player.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoTranscript, player.PlayabilityStatus.Reason)
		}
		return nil, ErrNoTranscript
	}
	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, ErrNoTranscript
	}

	track := pickCaptionTrack(tracks)
	return &track, nil
}

// pickCaptionTrack prefers a manual English track, then auto-generated
// English, then whatever is first.
func pickCaptionTrack(tracks []captionTrack) captionTrack {
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

func (f *TranscriptFetcher) fetchTimedText(ctx context.Context, baseURL string) ([]Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextBytes))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

func parseTimedText(body []byte) ([]Segment, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{Text: text, Start: line.Start, Duration: line.Dur})
	}
	return segments, nil
}

// JoinSegments flattens a transcript into one text blob for summarization.
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// extractJSONObject returns the balanced JSON object at the start of data,
// or nil if none closes before the input ends.
func extractJSONObject(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i, c := range data {
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return data[:i+1]
				}
			}
		}
	}
	return nil
}
