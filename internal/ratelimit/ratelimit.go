package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"ainews/internal/logger"
)

// Limiter caps per-run usage of the paid providers. Limits of 0 mean
// unlimited. Counters reset daily.
type Limiter struct {
	mu          sync.Mutex
	llmCount    int
	searchCount int
	maxLLM      int
	maxSearch   int
	resetTime   time.Time
}

func NewLimiter(maxLLM, maxSearch int) *Limiter {
	return &Limiter{
		maxLLM:    maxLLM,
		maxSearch: maxSearch,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// CanUseLLM reports whether another LLM request fits the budget.
func (rl *Limiter) CanUseLLM() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxLLM > 0 && rl.llmCount >= rl.maxLLM {
		logger.Warn("LLM rate limit reached", "used", rl.llmCount, "limit", rl.maxLLM)
		return false
	}
	return true
}

// UseLLM increments the LLM counter.
func (rl *Limiter) UseLLM() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxLLM > 0 && rl.llmCount >= rl.maxLLM {
		return fmt.Errorf("llm rate limit exceeded")
	}
	rl.llmCount++
	return nil
}

// CanUseSearch reports whether another search request fits the budget.
func (rl *Limiter) CanUseSearch() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxSearch > 0 && rl.searchCount >= rl.maxSearch {
		logger.Warn("search rate limit reached", "used", rl.searchCount, "limit", rl.maxSearch)
		return false
	}
	return true
}

// UseSearch increments the search counter.
func (rl *Limiter) UseSearch() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if rl.maxSearch > 0 && rl.searchCount >= rl.maxSearch {
		return fmt.Errorf("search rate limit exceeded")
	}
	rl.searchCount++
	return nil
}

// GetStats returns current usage.
func (rl *Limiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"llm_used":     rl.llmCount,
		"llm_limit":    rl.maxLLM,
		"search_used":  rl.searchCount,
		"search_limit": rl.maxSearch,
		"reset_time":   rl.resetTime,
	}
}

func (rl *Limiter) checkReset() {
	if time.Now().After(rl.resetTime) {
		logger.Info("resetting rate limiter counters")
		rl.llmCount = 0
		rl.searchCount = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
