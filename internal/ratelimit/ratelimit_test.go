package ratelimit

import "testing"

func TestLLMBudget(t *testing.T) {
	rl := NewLimiter(2, 0)

	for i := 0; i < 2; i++ {
		if !rl.CanUseLLM() {
			t.Fatalf("request %d should fit the budget", i)
		}
		if err := rl.UseLLM(); err != nil {
			t.Fatalf("UseLLM: %v", err)
		}
	}

	if rl.CanUseLLM() {
		t.Error("budget exhausted, CanUseLLM should report false")
	}
	if err := rl.UseLLM(); err == nil {
		t.Error("UseLLM past the budget should fail")
	}
}

func TestZeroMeansUnlimited(t *testing.T) {
	rl := NewLimiter(0, 0)

	for i := 0; i < 100; i++ {
		if err := rl.UseLLM(); err != nil {
			t.Fatalf("UseLLM: %v", err)
		}
		if err := rl.UseSearch(); err != nil {
			t.Fatalf("UseSearch: %v", err)
		}
	}
}

func TestSearchBudgetIndependent(t *testing.T) {
	rl := NewLimiter(1, 1)

	if err := rl.UseSearch(); err != nil {
		t.Fatalf("UseSearch: %v", err)
	}
	if rl.CanUseSearch() {
		t.Error("search budget exhausted")
	}
	if !rl.CanUseLLM() {
		t.Error("LLM budget should be untouched")
	}
}

func TestGetStats(t *testing.T) {
	rl := NewLimiter(5, 3)
	_ = rl.UseLLM()
	_ = rl.UseLLM()
	_ = rl.UseSearch()

	stats := rl.GetStats()
	if stats["llm_used"] != 2 || stats["llm_limit"] != 5 {
		t.Errorf("llm stats = %v / %v", stats["llm_used"], stats["llm_limit"])
	}
	if stats["search_used"] != 1 || stats["search_limit"] != 3 {
		t.Errorf("search stats = %v / %v", stats["search_used"], stats["search_limit"])
	}
}
