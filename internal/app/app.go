// Package app wires the pipeline together: collect candidates, select
// the digest, enrich it, publish it.
package app

import (
	"context"
	"fmt"
	"time"

	"ainews/internal/config"
	"ainews/internal/dedup"
	"ainews/internal/email"
	"ainews/internal/lexicon"
	"ainews/internal/logger"
	"ainews/internal/metrics"
	"ainews/internal/news"
	"ainews/internal/ratelimit"
	"ainews/internal/render"
	"ainews/internal/rss"
	"ainews/internal/scraper"
	"ainews/internal/score"
	"ainews/internal/search"
	"ainews/internal/selection"
	"ainews/internal/storage"
	"ainews/internal/summarize"
	"ainews/internal/telegram"
)

const (
	maxSearchRequests  = 10
	searchHitsPerQuery = 10
	thinSnippetLen     = 120
)

// Run executes one full digest cycle.
func Run() error {
	started := time.Now()
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	lex := loadLexicon(cfg)
	limiter := ratelimit.NewLimiter(cfg.MaxLLMRequests, maxSearchRequests)

	// Collect candidates
	sourcesCfg, err := rss.LoadSources(cfg.SourcesConfigPath)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}
	candidates := rss.NewFetcher(sourcesCfg, cfg.NewsMaxAge).FetchAll(ctx)
	candidates = append(candidates, collectSearchResults(ctx, cfg, limiter)...)
	metrics.Global.AddCandidates(len(candidates))

	if len(candidates) == 0 {
		logger.Warn("no candidates collected, nothing to publish")
		metrics.Global.SetLastRun()
		return nil
	}

	// Prior selections feed the cross-day duplicate check
	history := storage.NewHistoryFile(cfg.HistoryPath, 72*time.Hour)
	if err := history.Load(); err != nil {
		logger.Warn("history unavailable, continuing without it", "error", err)
	}
	prior := history.PriorItems()

	// Select
	engine := dedup.NewEngine(lex, dedup.Thresholds{
		Fingerprint:        cfg.FingerprintThreshold,
		Text:               cfg.TextThreshold,
		CrossEntityOverlap: cfg.CrossDayOverlap,
	})
	scorer := score.NewScorer(sourcesCfg.CredibilityOverrides())
	selector := selection.New(engine, scorer, selection.Options{ScoreFloors: cfg.ScoreFloors})

	selected, stats := selector.SelectTopNews(candidates, cfg.TargetCount, prior)
	metrics.Global.AddItemsSelected(len(selected))
	logger.Info("selection done",
		"candidates", stats.Candidates,
		"deduplicated", stats.Deduplicated,
		"rejected", stats.Rejected,
		"selected", stats.Selected,
		"avg_score", fmt.Sprintf("%.1f", stats.AverageScore),
		"shortfall", stats.Shortfall,
	)

	if len(selected) == 0 {
		logger.Warn("nothing selected today")
		metrics.Global.SetLastRun()
		return nil
	}

	// Enrich
	enrichThinItems(ctx, cfg, selected)
	summarizeSelection(ctx, cfg, limiter, selected)

	// Publish
	now := time.Now()
	htmlPath, err := render.WriteOutputs(cfg.OutputDir, selected, stats, now)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}
	logger.Info("newsletter written", "path", htmlPath)

	publish(cfg, selected, now)

	// Persist
	history.Append(selected)
	if err := history.Save(); err != nil {
		logger.Error("failed to save history", "error", err)
	}
	archiveSelection(cfg, selected)

	metrics.Global.RecordRunDuration(time.Since(started))
	metrics.Global.SetLastRun()
	return nil
}

func loadLexicon(cfg *config.Config) *lexicon.Lexicon {
	if cfg.LexiconPath == "" {
		return lexicon.Default()
	}
	lex, err := lexicon.LoadFile(cfg.LexiconPath)
	if err != nil {
		logger.Warn("lexicon file unavailable, using built-in vocabulary", "path", cfg.LexiconPath, "error", err)
		return lexicon.Default()
	}
	return lex
}

func collectSearchResults(ctx context.Context, cfg *config.Config, limiter *ratelimit.Limiter) []news.Item {
	if cfg.SerperAPIKey == "" {
		return nil
	}

	client := search.NewClient(cfg.SerperAPIKey, cfg.RequestTimeout)
	var items []news.Item
	for _, query := range search.DefaultQueries() {
		if err := limiter.UseSearch(); err != nil {
			logger.Warn("search budget exhausted", "error", err)
			break
		}
		hits, err := client.SearchNews(ctx, query, searchHitsPerQuery)
		if err != nil {
			logger.Error("search failed", "query", query, "error", err)
			continue
		}
		items = append(items, hits...)
	}
	return items
}

// enrichThinItems scrapes full article bodies for items whose snippet is
// too short to summarize well.
func enrichThinItems(ctx context.Context, cfg *config.Config, selected []news.ScoredItem) {
	var thin []string
	byURL := make(map[string]int)
	for i, s := range selected {
		if len(s.Item.Snippet) < thinSnippetLen {
			thin = append(thin, s.Item.URL)
			byURL[s.Item.URL] = i
		}
	}
	if len(thin) == 0 {
		return
	}

	articles := scraper.ExtractArticles(ctx, thin, cfg.ScrapeConcurrency, cfg.ScrapeMaxArticles)
	for url, article := range articles {
		if i, ok := byURL[url]; ok {
			selected[i].Item.Snippet = article.Content
		}
	}
}

func summarizeSelection(ctx context.Context, cfg *config.Config, limiter *ratelimit.Limiter, selected []news.ScoredItem) {
	client, err := summarize.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, limiter)
	if err != nil {
		logger.Error("summarizer unavailable, publishing snippets", "error", err)
		return
	}
	defer client.Close()

	items := make([]news.Item, len(selected))
	for i, s := range selected {
		items[i] = s.Item
	}
	items = client.Summarize(ctx, items)
	for i := range selected {
		selected[i].Item = items[i]
	}
}

func publish(cfg *config.Config, selected []news.ScoredItem, now time.Time) {
	if cfg.EmailTo != "" {
		html, err := render.Newsletter(selected, now)
		if err != nil {
			logger.Error("newsletter render failed", "error", err)
		} else {
			sender := email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
			subject := "AI 快讯 " + now.Format("2006-01-02")
			if err := sender.SendNewsletter(cfg.EmailTo, subject, html); err != nil {
				logger.Error("email delivery failed", "error", err)
			}
		}
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != "" {
		digest := render.Digest(selected, now)
		if err := telegram.SendDigest(cfg.TelegramToken, cfg.TelegramChatID, digest); err != nil {
			logger.Error("telegram delivery failed", "error", err)
		}
	}
}

func archiveSelection(cfg *config.Config, selected []news.ScoredItem) {
	if cfg.PostgresDSN == "" {
		return
	}

	archive, err := storage.NewArchive(cfg.PostgresDSN)
	if err != nil {
		logger.Error("archive unavailable", "error", err)
		return
	}
	defer archive.Close()

	if err := archive.ArchiveSelection(selected); err != nil {
		logger.Error("failed to archive selection", "error", err)
	}
	if err := archive.Cleanup(90 * 24 * time.Hour); err != nil {
		logger.Error("archive cleanup failed", "error", err)
	}
}
