package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ainews/internal/news"
)

func scored(title, url string) news.ScoredItem {
	return news.ScoredItem{
		Item:      news.Item{Title: title, URL: url, Source: "x"},
		Score:     30,
		Breakdown: news.Breakdown{Substance: 15, Importance: 5, Timeliness: 5, Credibility: 5},
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	h := NewHistoryFile(path, 72*time.Hour)
	if err := h.Load(); err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}

	h.Append([]news.ScoredItem{scored("OpenAI launches GPT-5", "https://a.com/1")})
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewHistoryFile(path, 72*time.Hour)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	prior := reloaded.PriorItems()
	if len(prior) != 1 || prior[0].URL != "https://a.com/1" {
		t.Errorf("PriorItems = %+v, want the saved item", prior)
	}
}

func TestHistoryDropsExpired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	entries := []HistoryEntry{
		{Item: news.Item{Title: "old", URL: "https://a.com/1"}, SelectedAt: time.Now().Add(-100 * time.Hour)},
		{Item: news.Item{Title: "fresh", URL: "https://b.com/2"}, SelectedAt: time.Now().Add(-1 * time.Hour)},
	}
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	h := NewHistoryFile(path, 72*time.Hour)
	if err := h.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	prior := h.PriorItems()
	if len(prior) != 1 || prior[0].Title != "fresh" {
		t.Errorf("expired entry survived: %+v", prior)
	}
}

func TestHistoryCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	h := NewHistoryFile(path, 72*time.Hour)
	if err := h.Load(); err == nil {
		t.Error("corrupt file should return an error")
	}
	// The caller treats the error as best-effort; entries must stay empty.
	if len(h.PriorItems()) != 0 {
		t.Error("corrupt load must not leave entries behind")
	}
}

func TestItemHashStableAcrossURLVariants(t *testing.T) {
	a := itemHash("OpenAI Launches  GPT-5", "https://www.example.com/story?ref=rss")
	b := itemHash("openai launches gpt-5", "http://example.com/story")
	if a != b {
		t.Errorf("hash should normalize title and domain: %q vs %q", a, b)
	}

	c := itemHash("OpenAI launches GPT-5", "https://other.com/story")
	if a == c {
		t.Error("different domains must hash differently")
	}
}
