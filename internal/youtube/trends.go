package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Trending topics come from the public Google Trends RSS feed.

const (
	defaultTrendsBase = "https://trends.google.com"
	trendsPath        = "/trending/rss?geo=US"
	maxTrendingTopics = 8
)

// TrendsClient fetches the current trending search topics.
type TrendsClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewTrendsClient() *TrendsClient {
	return &TrendsClient{
		baseURL:    defaultTrendsBase,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type trendsFeed struct {
	Channel struct {
		Items []struct {
			Title string `xml:"title"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Trending returns up to eight trending topic titles.
func (c *TrendsClient) Trending(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+trendsPath, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trends: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch trends: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, err
	}

	var feed trendsFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse trends feed: %w", err)
	}

	topics := make([]string, 0, maxTrendingTopics)
	for _, item := range feed.Channel.Items {
		if item.Title == "" {
			continue
		}
		topics = append(topics, item.Title)
		if len(topics) == maxTrendingTopics {
			break
		}
	}
	return topics, nil
}
