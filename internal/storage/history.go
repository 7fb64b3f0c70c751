// Package storage persists selected digests: a JSON history file that
// feeds the cross-day duplicate check, and an optional Postgres archive.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"ainews/internal/news"
)

// HistoryEntry is one archived digest item.
type HistoryEntry struct {
	Item       news.Item `json:"item"`
	Score      int       `json:"score"`
	SelectedAt time.Time `json:"selected_at"`
}

// HistoryFile keeps recently selected items in a JSON file. History is
// best-effort: a missing or corrupt file means an empty history, never
// a failed run.
type HistoryFile struct {
	filePath string
	maxAge   time.Duration
	entries  []HistoryEntry
	mu       sync.RWMutex
}

func NewHistoryFile(filePath string, maxAge time.Duration) *HistoryFile {
	if maxAge <= 0 {
		maxAge = 72 * time.Hour
	}
	return &HistoryFile{
		filePath: filePath,
		maxAge:   maxAge,
	}
}

// Load reads the history file, dropping expired entries. A missing file
// starts an empty history.
func (h *HistoryFile) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal history: %w", err)
	}

	cutoff := time.Now().Add(-h.maxAge)
	h.entries = h.entries[:0]
	for _, e := range entries {
		if e.SelectedAt.After(cutoff) {
			h.entries = append(h.entries, e)
		}
	}
	return nil
}

// Save writes the current history to disk.
func (h *HistoryFile) Save() error {
	h.mu.RLock()
	data, err := json.MarshalIndent(h.entries, "", "  ")
	h.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(h.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

// Append records today's selection.
func (h *HistoryFile) Append(selected []news.ScoredItem) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	for _, s := range selected {
		h.entries = append(h.entries, HistoryEntry{
			Item:       s.Item,
			Score:      s.Breakdown.Total(),
			SelectedAt: now,
		})
	}
}

// PriorItems returns the unexpired history as plain items, for the
// cross-day duplicate check.
func (h *HistoryFile) PriorItems() []news.Item {
	h.mu.RLock()
	defer h.mu.RUnlock()

	cutoff := time.Now().Add(-h.maxAge)
	items := make([]news.Item, 0, len(h.entries))
	for _, e := range h.entries {
		if e.SelectedAt.After(cutoff) {
			items = append(items, e.Item)
		}
	}
	return items
}

// Len reports how many entries are held, expired or not.
func (h *HistoryFile) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
