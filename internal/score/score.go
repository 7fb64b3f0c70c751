// Package score rates an article's quality from independent signals:
// content substance, topical importance, recency and source credibility.
// Hard category filters reject off-topic and stock-ticker noise before any
// scoring happens.
package score

import (
	"regexp"
	"strings"
	"time"

	"ainews/internal/news"
)

// Off-topic categories that have no place in an AI digest unless the title
// also carries a tech qualifier.
var offTopicKeywords = []string{
	"旅游", "美食", "餐厅", "娱乐圈", "明星", "八卦", "体育", "足球", "篮球", "天气",
	"travel", "tourism", "dining", "restaurant", "recipe", "celebrity",
	"box office", "sports", "football", "basketball", "weather",
}

var aiQualifiers = []string{
	"ai", "人工智能", "大模型", "llm", "机器学习", "深度学习", "神经网络", "智能体",
	"machine learning", "deep learning", "artificial intelligence", "agent",
	"chatbot", "芯片", "算力",
}

// Market-index noise: index moves and open/close chatter, not company news.
var stockMarketKeywords = []string{
	"股指", "大盘", "收盘", "开盘", "涨停", "跌停", "指数", "港股", "a股", "沪指",
	"创业板", "stock market", "dow jones", "nasdaq composite", "s&p 500",
	"market open", "market close", "premarket", "futures slip", "futures rise",
}

var aiSectorCompanies = []string{
	"openai", "anthropic", "nvidia", "英伟达", "google", "deepmind", "meta",
	"microsoft", "百度", "阿里", "腾讯", "字节", "科大讯飞", "商汤", "deepseek",
	"amd", "intel", "tesla", "tsmc", "台积电",
}

// Substance signals.
var quantifiedFactPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s?\d+(\.\d+)?\s*(bn|billion|mn|million|k)?`),
	regexp.MustCompile(`\d+(\.\d+)?\s*(%|percent|个百分点)`),
	regexp.MustCompile(`\d+(\.\d+)?\s*[亿万]\s*(美元|美金|元|人民币)?`),
	regexp.MustCompile(`\d+(\.\d+)?\s*(billion|million|trillion)`),
	regexp.MustCompile(`\d+(\.\d+)?\s*[bmk]?\s*(参数|parameters|tokens|用户|users|gpus|downloads)`),
}

var completedActionKeywords = []string{
	"launched", "released", "shipped", "unveiled", "open-sourced", "open sourced",
	"completed", "acquired", "raised", "achieved", "signed", "deployed",
	"发布", "上线", "开源", "完成", "收购", "达成", "落地", "交付",
}

var hedgeKeywords = []string{
	"plans to", "may ", "might", "could", "reportedly", "rumored", "rumour",
	"sources say", "in talks", "considering", "expected to", "set to",
	"计划", "或将", "据悉", "传闻", "消息人士", "有望", "考虑", "拟",
}

var techDepthKeywords = []string{
	"paper", "arxiv", "repository", "github", "benchmark", "accuracy",
	"architecture", "dataset", "weights", "checkpoint", "inference", "latency",
	"论文", "基准", "评测", "准确率", "架构", "数据集", "权重", "推理",
}

// Importance signals.
var topTierCompanies = []string{
	"openai", "anthropic", "google", "deepmind", "meta", "microsoft", "nvidia",
	"英伟达", "apple", "amazon", "字节", "阿里", "腾讯", "百度", "华为", "deepseek",
	"智谱", "月之暗面",
}

var flagshipProducts = []string{
	"gpt-5", "gpt-4", "chatgpt", "claude", "gemini", "llama", "sora", "grok",
	"文心", "通义", "kimi", "豆包", "混元", "qwen",
}

var breakthroughKeywords = []string{
	"agi", "breakthrough", "突破", "开源", "open-source", "open source",
	"state-of-the-art", "sota", "首次", "首个", "first-ever", "milestone", "里程碑",
}

var fundingKeywords = []string{
	"融资", "funding", "raised", "raises", "投资", "round", "ipo", "估值", "valuation",
}

var largeCurrencyKeywords = []string{
	"亿", "billion", "million", "万美元", "千万", "b round", "mega",
}

// DefaultCredibility is the editorial trust weight per source. Unknown
// sources score 5.
var DefaultCredibility = map[string]int{
	"机器之心":          9,
	"量子位":             9,
	"36氪":                 7,
	"InfoQ":                 8,
	"雷锋网":             7,
	"AI科技评论":        7,
	"TechCrunch":            8,
	"The Verge":             7,
	"MIT Technology Review": 9,
	"Wired":                 7,
	"VentureBeat":           6,
	"Ars Technica":          7,
	"ZDNet":                 5,
	"Engadget":              5,
	"BBC Technology":        7,
	"ScienceDaily AI":       6,
}

const unknownSourceCredibility = 5

// Scorer computes quality scores. It is pure given its tables; Now is
// injectable so recency tests don't depend on the wall clock.
type Scorer struct {
	credibility map[string]int
	Now         func() time.Time
}

// NewScorer builds a scorer. A nil credibility map uses DefaultCredibility.
func NewScorer(credibility map[string]int) *Scorer {
	if credibility == nil {
		credibility = DefaultCredibility
	}
	return &Scorer{credibility: credibility, Now: time.Now}
}

// Score rates one item. Rejection filters run first and short-circuit: a
// rejected item carries no breakdown.
func (s *Scorer) Score(item news.Item) news.ScoredItem {
	scored := news.ScoredItem{Item: item}

	title := strings.ToLower(item.Title)
	if containsAny(title, offTopicKeywords) && !containsAny(title, aiQualifiers) {
		scored.Rejected = true
		scored.RejectReason = news.RejectOffTopic
		return scored
	}
	if containsAny(title, stockMarketKeywords) && !containsAny(title, aiSectorCompanies) {
		scored.Rejected = true
		scored.RejectReason = news.RejectStockNoise
		return scored
	}

	text := strings.ToLower(item.Text())
	scored.Breakdown = news.Breakdown{
		Substance:   substanceScore(text),
		Importance:  importanceScore(text),
		Timeliness:  s.timelinessScore(item.PublishedAt),
		Credibility: s.credibilityScore(item.Source),
	}
	scored.Score = scored.Breakdown.Total()
	return scored
}

func substanceScore(text string) int {
	score := 0

	facts := 0
	for _, re := range quantifiedFactPatterns {
		facts += len(re.FindAllString(text, -1))
	}
	score += clamp(facts*4, 0, 10)

	score += clamp(countMatches(text, completedActionKeywords)*4, 0, 12)
	score -= clamp(countMatches(text, hedgeKeywords)*5, 0, 15)
	score += clamp(countMatches(text, techDepthKeywords)*3, 0, 15)

	return clamp(score, 0, 40)
}

func importanceScore(text string) int {
	score := 0
	if containsAny(text, topTierCompanies) {
		score += 5
	}
	if containsAny(text, flagshipProducts) {
		score += 6
	}
	if containsAny(text, breakthroughKeywords) {
		score += 5
	}
	if containsAny(text, fundingKeywords) && containsAny(text, largeCurrencyKeywords) {
		score += 8
	}
	return clamp(score, 0, 30)
}

// timelinessScore is a step function of hours since publication.
func (s *Scorer) timelinessScore(published time.Time) int {
	if published.IsZero() {
		return 2
	}
	hours := s.Now().Sub(published).Hours()
	switch {
	case hours < 6:
		return 10
	case hours < 12:
		return 8
	case hours < 24:
		return 6
	case hours < 36:
		return 4
	default:
		return 2
	}
}

func (s *Scorer) credibilityScore(source string) int {
	if c, ok := s.credibility[source]; ok {
		return c
	}
	return unknownSourceCredibility
}

// containsAny mirrors the keyword matching used across the pipeline: short
// ASCII tokens need word boundaries (so "ai" doesn't fire inside "said"),
// phrases and longer words match by substring.
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if matchKeyword(text, k) {
			return true
		}
	}
	return false
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if matchKeyword(text, k) {
			n++
		}
	}
	return n
}

func matchKeyword(text, keyword string) bool {
	k := strings.ToLower(strings.TrimSpace(keyword))
	if k == "" {
		return false
	}
	if strings.Contains(k, " ") || len(k) > 3 || !isASCII(k) {
		return strings.Contains(text, k)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
	return re.MatchString(text)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
