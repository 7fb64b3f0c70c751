// Package search queries the Serper news API for overseas AI coverage
// that the RSS feeds miss.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ainews/internal/logger"
	"ainews/internal/metrics"
	"ainews/internal/news"
	"ainews/internal/retry"
)

const serperNewsURL = "https://google.serper.dev/news"

type Client struct {
	apiKey     string
	httpClient *http.Client
	retryCfg   retry.RetryConfig
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		retryCfg:   retry.RetryConfig{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true},
	}
}

type newsRequest struct {
	Query    string `json:"q"`
	Country  string `json:"gl"`
	Language string `json:"hl"`
	Num      int    `json:"num"`
}

type newsResponse struct {
	News []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Source  string `json:"source"`
		Date    string `json:"date"`
	} `json:"news"`
}

// SearchNews runs one query and converts the hits to overseas news items.
func (c *Client) SearchNews(ctx context.Context, query string, num int) ([]news.Item, error) {
	if num <= 0 {
		num = 10
	}

	var resp newsResponse
	err := retry.WithRetry(ctx, c.retryCfg, func() error {
		return c.doRequest(ctx, newsRequest{Query: query, Country: "us", Language: "en", Num: num}, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("serper search %q: %w", query, err)
	}
	metrics.Global.IncrementSearchRequests()

	items := make([]news.Item, 0, len(resp.News))
	for _, hit := range resp.News {
		title := strings.TrimSpace(hit.Title)
		link := strings.TrimSpace(hit.Link)
		if title == "" || link == "" {
			continue
		}
		items = append(items, news.Item{
			Title:       title,
			URL:         link,
			Snippet:     strings.TrimSpace(hit.Snippet),
			Source:      hit.Source,
			PublishedAt: parseRelativeDate(hit.Date),
			Region:      news.RegionOverseas,
		})
	}

	logger.Debug("serper search done", "query", query, "hits", len(items))
	return items, nil
}

// SearchAll runs every query, deduplicating nothing: overlap between
// queries is handled later by the dedup engine.
func (c *Client) SearchAll(ctx context.Context, queries []string, numPerQuery int) []news.Item {
	var all []news.Item
	for _, q := range queries {
		items, err := c.SearchNews(ctx, q, numPerQuery)
		if err != nil {
			logger.Error("serper search failed", "query", q, "error", err)
			continue
		}
		all = append(all, items...)
	}
	return all
}

func (c *Client) doRequest(ctx context.Context, payload newsRequest, out *newsResponse) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperNewsURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("serper API status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// parseRelativeDate turns Serper-style dates ("2 hours ago", "1 day ago")
// into timestamps. Anything unparseable counts as now.
func parseRelativeDate(s string) time.Time {
	now := time.Now()
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return now
	}

	var n int
	var unit string
	if _, err := fmt.Sscanf(s, "%d %s", &n, &unit); err != nil {
		return now
	}

	switch {
	case strings.HasPrefix(unit, "minute"):
		return now.Add(-time.Duration(n) * time.Minute)
	case strings.HasPrefix(unit, "hour"):
		return now.Add(-time.Duration(n) * time.Hour)
	case strings.HasPrefix(unit, "day"):
		return now.Add(-time.Duration(n) * 24 * time.Hour)
	case strings.HasPrefix(unit, "week"):
		return now.Add(-time.Duration(n) * 7 * 24 * time.Hour)
	}
	return now
}

// DefaultQueries covers the beats a daily AI digest cares about.
func DefaultQueries() []string {
	return []string{
		"artificial intelligence news",
		"large language model release",
		"AI startup funding",
		"AI regulation policy",
	}
}
