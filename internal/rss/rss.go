// Package rss collects candidate items from the configured feeds.
package rss

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"ainews/internal/logger"
	"ainews/internal/metrics"
	"ainews/internal/news"
)

// Source is one named feed from sources.yaml.
type Source struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Region      string `yaml:"region"`      // domestic | overseas
	Credibility int    `yaml:"credibility"` // 0 uses the scorer default
	Limit       int    `yaml:"limit"`       // max items per fetch, 0 = all
}

type SourcesConfig struct {
	Sources []Source `yaml:"sources"`
	// Keywords an item must contain to count as AI news. Empty keeps everything.
	Keywords []string `yaml:"keywords"`
}

// LoadSources reads the feed list from a YAML file.
func LoadSources(path string) (*SourcesConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources config: %w", err)
	}
	defer f.Close()

	var cfg SourcesConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("sources config %s has no sources", path)
	}
	return &cfg, nil
}

// Fetcher downloads and filters the configured feeds.
type Fetcher struct {
	parser   *gofeed.Parser
	cfg      *SourcesConfig
	maxAge   time.Duration
	keywords []string
}

func NewFetcher(cfg *SourcesConfig, maxAge time.Duration) *Fetcher {
	return &Fetcher{
		parser:   gofeed.NewParser(),
		cfg:      cfg,
		maxAge:   maxAge,
		keywords: lowerAll(cfg.Keywords),
	}
}

// FetchAll downloads every feed, converts entries to news items and drops
// entries that are too old or off-keyword. A failing feed is logged and
// skipped so one dead source never kills the run.
func (f *Fetcher) FetchAll(ctx context.Context) []news.Item {
	var items []news.Item
	successCount := 0
	cutoff := time.Now().Add(-f.maxAge)

	for _, src := range f.cfg.Sources {
		feed, err := f.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			logger.Error("rss fetch failed", "source", src.Name, "error", err)
			metrics.Global.IncrementFeedErrors()
			continue
		}

		count := 0
		for _, entry := range feed.Items {
			if src.Limit > 0 && count >= src.Limit {
				break
			}
			item, ok := f.convert(src, entry, cutoff)
			if !ok {
				continue
			}
			items = append(items, item)
			count++
		}
		successCount++
		logger.Debug("rss feed loaded", "source", src.Name, "kept", count, "total", len(feed.Items))
	}

	logger.Info("rss fetch done", "feeds_ok", successCount, "feeds_total", len(f.cfg.Sources), "items", len(items))
	return items
}

func (f *Fetcher) convert(src Source, entry *gofeed.Item, cutoff time.Time) (news.Item, bool) {
	published := time.Now()
	if entry.PublishedParsed != nil {
		published = *entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		published = *entry.UpdatedParsed
	}
	if published.Before(cutoff) {
		return news.Item{}, false
	}

	item := news.Item{
		Title:       strings.TrimSpace(entry.Title),
		URL:         strings.TrimSpace(entry.Link),
		Snippet:     strings.TrimSpace(entry.Description),
		Source:      src.Name,
		PublishedAt: published,
		Region:      news.Region(src.Region),
	}
	if item.Title == "" || item.URL == "" {
		return news.Item{}, false
	}
	if !f.matchesKeywords(item) {
		return news.Item{}, false
	}
	return item, true
}

func (f *Fetcher) matchesKeywords(item news.Item) bool {
	if len(f.keywords) == 0 {
		return true
	}
	text := strings.ToLower(item.Title + " " + item.Snippet)
	for _, kw := range f.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CredibilityOverrides maps source names to configured credibility values,
// for feeding the scorer.
func (c *SourcesConfig) CredibilityOverrides() map[string]int {
	out := make(map[string]int)
	for _, src := range c.Sources {
		if src.Credibility > 0 {
			out[src.Name] = src.Credibility
		}
	}
	return out
}
