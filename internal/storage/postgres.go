package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"ainews/internal/logger"
	"ainews/internal/news"
)

// Archive keeps every published digest item in PostgreSQL for long-term
// queries the JSON history file is too small for.
type Archive struct {
	db *sql.DB
}

func NewArchive(connectionString string) (*Archive, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	a := &Archive{db: db}
	if err := a.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("postgres archive connected")
	return a, nil
}

func (a *Archive) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS selected_news (
		id SERIAL PRIMARY KEY,
		hash VARCHAR(64) UNIQUE NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		summary TEXT,
		source VARCHAR(100),
		region VARCHAR(20),
		category VARCHAR(30),
		company VARCHAR(100),
		score INTEGER,
		published_at TIMESTAMP,
		selected_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_selected_news_hash ON selected_news(hash);
	CREATE INDEX IF NOT EXISTS idx_selected_news_selected_at ON selected_news(selected_at);
	CREATE INDEX IF NOT EXISTS idx_selected_news_category ON selected_news(category);
	`

	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// ArchiveSelection stores one digest. Re-archiving the same item only
// refreshes its timestamp.
func (a *Archive) ArchiveSelection(selected []news.ScoredItem) error {
	query := `
		INSERT INTO selected_news (hash, title, url, summary, source, region, category, company, score, published_at, selected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (hash) DO UPDATE SET selected_at = NOW()
	`

	for _, s := range selected {
		item := s.Item
		_, err := a.db.Exec(query,
			itemHash(item.Title, item.URL), item.Title, item.URL, item.Summary,
			item.Source, string(item.Region), string(item.EffectiveCategory()), item.Company,
			s.Breakdown.Total(), nullableTime(item.PublishedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to archive item %q: %w", item.Title, err)
		}
	}
	return nil
}

// RecentItems returns items archived within the window, newest first.
func (a *Archive) RecentItems(window time.Duration, limit int) ([]news.Item, error) {
	if limit <= 0 {
		limit = 100
	}
	cutoff := time.Now().Add(-window)

	rows, err := a.db.Query(`
		SELECT title, url, summary, source, region, category, company, COALESCE(published_at, selected_at)
		FROM selected_news
		WHERE selected_at > $1
		ORDER BY selected_at DESC
		LIMIT $2
	`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []news.Item
	for rows.Next() {
		var item news.Item
		var region, category string
		err := rows.Scan(&item.Title, &item.URL, &item.Summary, &item.Source, &region, &category, &item.Company, &item.PublishedAt)
		if err != nil {
			logger.Warn("error scanning archive row", "error", err)
			continue
		}
		item.Region = news.Region(region)
		item.Category = news.Category(category)
		items = append(items, item)
	}
	return items, rows.Err()
}

// CategoryCounts returns how many items each category got within the window.
func (a *Archive) CategoryCounts(window time.Duration) (map[string]int, error) {
	cutoff := time.Now().Add(-window)

	rows, err := a.db.Query(`
		SELECT category, COUNT(*)
		FROM selected_news
		WHERE selected_at > $1
		GROUP BY category
	`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			continue
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// Cleanup removes archive rows older than the retention window.
func (a *Archive) Cleanup(retention time.Duration) error {
	cutoff := time.Now().Add(-retention)

	result, err := a.db.Exec(`DELETE FROM selected_news WHERE selected_at < $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup: %w", err)
	}

	if rows, _ := result.RowsAffected(); rows > 0 {
		logger.Info("cleaned up old archive rows", "rows", rows)
	}
	return nil
}

func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// itemHash gives a stable key from normalized title plus domain, so the
// same story keeps one archive row across feed URL variants.
func itemHash(title, url string) string {
	normalizedTitle := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(title))), " ")

	h := sha256.New()
	h.Write([]byte(normalizedTitle + "|" + extractDomain(url)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func extractDomain(url string) string {
	if url == "" {
		return "unknown"
	}

	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "https://")

	parts := strings.Split(url, "/")
	if len(parts) == 0 {
		return "unknown"
	}

	domain := strings.TrimPrefix(parts[0], "www.")
	return strings.ToLower(domain)
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
