package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"PT1H2M3S", 3723},
		{"PT15M", 900},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"P1DT2H", 0},
		{"garbage", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseISODuration(tt.in); got != tt.want {
			t.Errorf("parseISODuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSearch_FiltersByDuration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("q") != "space travel" {
				t.Errorf("q = %q, want lowercased topic", r.URL.Query().Get("q"))
			}
			w.Write([]byte(`{"items": [
				{"id": {"videoId": "short1"}, "snippet": {"title": "A Short", "thumbnails": {"high": {"url": "t1"}}}},
				{"id": {"videoId": "good1"}, "snippet": {"title": "Good One", "thumbnails": {"high": {"url": "t2"}}}},
				{"id": {"videoId": "long1"}, "snippet": {"title": "A Stream", "thumbnails": {"high": {"url": "t3"}}}}
			]}`))
		case "/videos":
			w.Write([]byte(`{"items": [
				{"id": "short1", "contentDetails": {"duration": "PT30S"}},
				{"id": "good1", "contentDetails": {"duration": "PT10M"}},
				{"id": "long1", "contentDetails": {"duration": "PT2H"}}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := NewPreviewClient("test-key", discardLogger())
	c.apiBase = server.URL

	previews, err := c.Search(context.Background(), "Space Travel", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(previews) != 1 {
		t.Fatalf("got %d previews, want 1 (duration filter)", len(previews))
	}
	p := previews[0]
	if p.VideoID != "good1" || p.Title != "Good One" {
		t.Errorf("preview = %+v", p)
	}
	if p.Link != "https://www.youtube.com/watch?v=good1" {
		t.Errorf("Link = %q", p.Link)
	}
	if p.Duration != 600 {
		t.Errorf("Duration = %v", p.Duration)
	}
}

func TestSearch_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	c := NewPreviewClient("test-key", discardLogger())
	c.apiBase = server.URL

	previews, err := c.Search(context.Background(), "nothing", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(previews) != 0 {
		t.Errorf("got %d previews, want 0", len(previews))
	}
}

func TestSearch_MissingAPIKey(t *testing.T) {
	c := NewPreviewClient("", discardLogger())
	if _, err := c.Search(context.Background(), "topic", 10); err == nil {
		t.Error("expected error without API key")
	}
}
