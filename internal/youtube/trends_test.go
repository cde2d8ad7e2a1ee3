package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTrending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trending/rss" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Daily Search Trends</title>
    <item><title>topic one</title></item>
    <item><title>topic two</title></item>
    <item><title></title></item>
    <item><title>topic three</title></item>
  </channel>
</rss>`)
	}))
	defer server.Close()

	c := NewTrendsClient()
	c.baseURL = server.URL

	topics, err := c.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(topics) != 3 {
		t.Fatalf("got %d topics, want 3 (empty title dropped)", len(topics))
	}
	if topics[0] != "topic one" || topics[2] != "topic three" {
		t.Errorf("topics = %v", topics)
	}
}

func TestTrending_CapsAtEight(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<rss><channel>`)
		for i := 0; i < 12; i++ {
			fmt.Fprintf(w, `<item><title>topic %d</title></item>`, i)
		}
		fmt.Fprint(w, `</channel></rss>`)
	}))
	defer server.Close()

	c := NewTrendsClient()
	c.baseURL = server.URL

	topics, err := c.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(topics) != maxTrendingTopics {
		t.Errorf("got %d topics, want %d", len(topics), maxTrendingTopics)
	}
}

func TestTrending_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewTrendsClient()
	c.baseURL = server.URL

	if _, err := c.Trending(context.Background()); err == nil {
		t.Error("expected error for 503 response")
	}
}
