package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	CandidatesCollected  int64
	FeedErrors           int64
	DuplicatesFiltered   int64
	ItemsRejected        int64
	ItemsSelected        int64
	LLMRequests          int64
	LLMFailures          int64
	SearchRequests       int64
	EmailsSent           int64
	TelegramMessagesSent int64

	// Timings
	LastRunDuration    time.Duration
	AverageRunDuration time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddCandidates(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesCollected += int64(n)
}

func (m *Metrics) IncrementFeedErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedErrors++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementItemsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsRejected++
}

func (m *Metrics) AddItemsSelected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsSelected += int64(n)
}

func (m *Metrics) IncrementLLMRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LLMRequests++
}

func (m *Metrics) IncrementLLMFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LLMFailures++
}

func (m *Metrics) IncrementSearchRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchRequests++
}

func (m *Metrics) IncrementEmailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmailsSent++
}

func (m *Metrics) IncrementTelegramMessagesSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TelegramMessagesSent++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"candidates_collected":    m.CandidatesCollected,
		"feed_errors":             m.FeedErrors,
		"duplicates_filtered":     m.DuplicatesFiltered,
		"items_rejected":          m.ItemsRejected,
		"items_selected":          m.ItemsSelected,
		"llm_requests":            m.LLMRequests,
		"llm_failures":            m.LLMFailures,
		"search_requests":         m.SearchRequests,
		"emails_sent":             m.EmailsSent,
		"telegram_messages_sent":  m.TelegramMessagesSent,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
