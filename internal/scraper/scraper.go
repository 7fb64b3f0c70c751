// Package scraper fetches full article bodies for items whose feed
// snippet is too thin to summarize.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ainews/internal/logger"
)

// ArticleContent is full article content
type ArticleContent struct {
	Title   string
	Content string
	URL     string
}

const maxContentChars = 4000

// ExtractFullArticle gets full text of article by URL
func ExtractFullArticle(ctx context.Context, url string) (*ArticleContent, error) {
	client := &http.Client{
		Timeout: 15 * time.Second,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ainews/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	content := extractContentBySource(doc, url)
	title := extractTitle(doc)

	if content == "" {
		return nil, fmt.Errorf("can't get content")
	}

	return &ArticleContent{
		Title:   title,
		Content: content,
		URL:     url,
	}, nil
}

// extractContentBySource picks selectors per news site
func extractContentBySource(doc *goquery.Document, url string) string {
	var selectors []string

	switch {
	case strings.Contains(url, "jiqizhixin.com"):
		selectors = []string{".article__content p", ".detail__content p", "article p"}
	case strings.Contains(url, "qbitai.com"):
		selectors = []string{".article-content p", ".single-content p", "article p"}
	case strings.Contains(url, "techcrunch.com"):
		selectors = []string{".entry-content p", ".article-content p", "article p"}
	case strings.Contains(url, "theverge.com"):
		selectors = []string{".duet--article--article-body-component p", ".c-entry-content p", "article p"}
	case strings.Contains(url, "venturebeat.com"):
		selectors = []string{".article-content p", ".entry-content p", "article p"}
	default:
		selectors = []string{
			"article p",
			".article p",
			".content p",
			".post-content p",
			".entry-content p",
			"main p",
			"#content p",
			"p",
		}
	}

	return cleanContent(extractParagraphs(doc, selectors))
}

func extractParagraphs(doc *goquery.Document, selectors []string) string {
	var paragraphs []string

	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
	}

	return strings.Join(paragraphs, "\n\n")
}

// extractTitle gets article title
func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		"h1",
		"title",
		".article-title",
		".headline",
		".entry-title",
	}

	for _, selector := range selectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}

	return ""
}

// cleanContent strips boilerplate lines and trims to a prompt-friendly size
func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	junkIndicators := []string{
		"cookie", "subscribe", "newsletter", "advertisement",
		"sign up", "log in", "follow us", "share this",
		"点击阅读原文", "关注我们", "扫码", "广告",
	}

	lines := strings.Split(content, "\n")
	var cleanLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			continue
		}
		lower := strings.ToLower(line)
		isJunk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				isJunk = true
				break
			}
		}
		if !isJunk {
			cleanLines = append(cleanLines, line)
		}
	}

	result := strings.Join(cleanLines, "\n\n")
	for strings.Contains(result, "  ") {
		result = strings.ReplaceAll(result, "  ", " ")
	}
	result = strings.TrimSpace(result)

	// Trim on a paragraph boundary so the summarizer never sees a cut sentence
	if len(result) > maxContentChars {
		paragraphs := strings.Split(result, "\n\n")
		var kept []string
		total := 0
		for _, p := range paragraphs {
			if total+len(p) > maxContentChars {
				break
			}
			kept = append(kept, p)
			total += len(p) + 2
		}
		if len(kept) > 0 {
			result = strings.Join(kept, "\n\n")
		} else {
			result = result[:maxContentChars]
		}
	}

	return result
}

// ExtractArticles fetches full content for the given URLs with a bounded
// worker pool. Failures are logged and skipped.
func ExtractArticles(ctx context.Context, urls []string, concurrency, maxArticles int) map[string]*ArticleContent {
	if concurrency <= 0 {
		concurrency = 4
	}
	if maxArticles > 0 && len(urls) > maxArticles {
		urls = urls[:maxArticles]
	}

	result := make(map[string]*ArticleContent)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			article, err := ExtractFullArticle(ctx, url)
			if err != nil {
				logger.Warn("scrape failed", "url", url, "error", err)
				return
			}
			if len(article.Content) < 100 {
				logger.Debug("scraped content too short", "url", url)
				return
			}

			mu.Lock()
			result[url] = article
			mu.Unlock()
		}(url)
	}

	wg.Wait()
	logger.Info("article extraction done", "requested", len(urls), "extracted", len(result))
	return result
}
