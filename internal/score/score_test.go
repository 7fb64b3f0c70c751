package score

import (
	"testing"
	"time"

	"ainews/internal/news"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func fixedScorer() *Scorer {
	s := NewScorer(nil)
	s.Now = func() time.Time { return testNow }
	return s
}

func TestCompletedBeatsHedged(t *testing.T) {
	s := fixedScorer()

	published := testNow.Add(-3 * time.Hour)
	confirmed := news.Item{
		Title:       "OpenAI发布GPT-5",
		Snippet:     "OpenAI 已发布 GPT-5,官方基准测试准确率达 95%,现已上线。",
		Source:      "机器之心",
		PublishedAt: published,
	}
	rumored := news.Item{
		Title:       "OpenAI或将发布GPT-5",
		Snippet:     "据悉 OpenAI 计划发布 GPT-5,消息人士称时间未定。",
		Source:      "机器之心",
		PublishedAt: published,
	}

	a := s.Score(confirmed)
	b := s.Score(rumored)

	if a.Rejected || b.Rejected {
		t.Fatalf("neither item should be rejected: %+v %+v", a, b)
	}
	if a.Score <= b.Score {
		t.Errorf("confirmed launch (%d) should outscore rumor (%d)", a.Score, b.Score)
	}
}

func TestOffTopicRejection(t *testing.T) {
	s := fixedScorer()

	tests := []struct {
		name     string
		title    string
		rejected bool
	}{
		{"pure travel", "全球旅游业复苏,酒店预订火爆", true},
		{"travel with AI angle", "AI 如何改变旅游业的定价", false},
		{"sports", "Premier League football results roundup", true},
		{"plain ai story", "OpenAI launches GPT-5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(news.Item{Title: tt.title, Source: "x", PublishedAt: testNow})
			if got.Rejected != tt.rejected {
				t.Errorf("Rejected = %v, want %v (reason %q)", got.Rejected, tt.rejected, got.RejectReason)
			}
			if tt.rejected && got.RejectReason != news.RejectOffTopic {
				t.Errorf("reason = %q, want off-topic", got.RejectReason)
			}
		})
	}
}

func TestStockNoiseRejection(t *testing.T) {
	s := fixedScorer()

	noise := s.Score(news.Item{Title: "沪指收盘上涨,成交额放大", Source: "x", PublishedAt: testNow})
	if !noise.Rejected || noise.RejectReason != news.RejectStockNoise {
		t.Errorf("index chatter should be rejected as stock noise: %+v", noise)
	}

	company := s.Score(news.Item{Title: "英伟达股价收盘大涨,数据中心需求强劲", Source: "x", PublishedAt: testNow})
	if company.Rejected {
		t.Errorf("AI company stock move should survive: %+v", company)
	}
}

func TestTimelinessSteps(t *testing.T) {
	s := fixedScorer()

	tests := []struct {
		age  time.Duration
		want int
	}{
		{3 * time.Hour, 10},
		{8 * time.Hour, 8},
		{18 * time.Hour, 6},
		{30 * time.Hour, 4},
		{48 * time.Hour, 2},
	}

	for _, tt := range tests {
		got := s.timelinessScore(testNow.Add(-tt.age))
		if got != tt.want {
			t.Errorf("timeliness(age=%v) = %d, want %d", tt.age, got, tt.want)
		}
	}

	if got := s.timelinessScore(time.Time{}); got != 2 {
		t.Errorf("zero publish time should score 2, got %d", got)
	}
}

func TestCredibility(t *testing.T) {
	s := fixedScorer()

	if got := s.credibilityScore("机器之心"); got != 9 {
		t.Errorf("机器之心 credibility = %d, want 9", got)
	}
	if got := s.credibilityScore("Random Blog"); got != unknownSourceCredibility {
		t.Errorf("unknown source credibility = %d, want %d", got, unknownSourceCredibility)
	}

	custom := NewScorer(map[string]int{"My Feed": 3})
	if got := custom.credibilityScore("My Feed"); got != 3 {
		t.Errorf("override credibility = %d, want 3", got)
	}
}

func TestScoreMatchesBreakdown(t *testing.T) {
	s := fixedScorer()

	got := s.Score(news.Item{
		Title:       "Anthropic raises $2 billion in Series C funding",
		Snippet:     "Anthropic completed a $2 billion round at a reported valuation.",
		Source:      "TechCrunch",
		PublishedAt: testNow.Add(-2 * time.Hour),
	})

	if got.Score != got.Breakdown.Total() {
		t.Errorf("Score %d != Breakdown total %d", got.Score, got.Breakdown.Total())
	}
	if got.Breakdown.Substance < 0 || got.Breakdown.Substance > 40 {
		t.Errorf("substance out of range: %d", got.Breakdown.Substance)
	}
	if got.Breakdown.Importance < 0 || got.Breakdown.Importance > 30 {
		t.Errorf("importance out of range: %d", got.Breakdown.Importance)
	}
	if got.Breakdown.Importance == 0 {
		t.Error("big funding story should carry importance")
	}
}

func TestHedgesCannotGoNegative(t *testing.T) {
	s := fixedScorer()

	got := s.Score(news.Item{
		Title:       "Startup reportedly in talks, may raise round, sources say",
		Snippet:     "The company is considering options and is expected to decide later.",
		Source:      "x",
		PublishedAt: testNow,
	})
	if got.Breakdown.Substance < 0 {
		t.Errorf("substance must clamp at 0, got %d", got.Breakdown.Substance)
	}
	if got.Score != got.Breakdown.Total() {
		t.Errorf("Score %d != Breakdown total %d", got.Score, got.Breakdown.Total())
	}
}

func TestWordBoundaryKeywordMatching(t *testing.T) {
	// "ai" must not fire inside "said"; phrases match as substrings.
	if matchKeyword("he said so", "ai") {
		t.Error("ai matched inside said")
	}
	if !matchKeyword("the ai race", "ai") {
		t.Error("standalone ai should match")
	}
	if !matchKeyword("openai is in talks with investors", "in talks") {
		t.Error("phrase should match by substring")
	}
}
