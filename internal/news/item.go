package news

import (
	"strings"
	"time"
)

// Region tells which half of the digest an item belongs to. The pipeline
// keeps an approximate domestic/overseas balance when selecting.
type Region string

const (
	RegionDomestic Region = "domestic"
	RegionOverseas Region = "overseas"
)

// Category is one of the fixed section labels of the newsletter. The
// summarizer assigns one; InferCategory is the keyword fallback when it
// doesn't.
type Category string

const (
	CategoryProduct  Category = "product"  // product launches & updates
	CategoryResearch Category = "research" // technology & research
	CategoryFunding  Category = "funding"  // funding & M&A
	CategoryPolicy   Category = "policy"   // policy & regulation
)

// SectionOrder is the rendering order of newsletter sections.
var SectionOrder = []Category{CategoryProduct, CategoryResearch, CategoryFunding, CategoryPolicy}

// SectionTitle maps a category to its display heading.
var SectionTitle = map[Category]string{
	CategoryProduct:  "产品发布与更新",
	CategoryResearch: "技术与研究",
	CategoryFunding:  "投融资与并购",
	CategoryPolicy:   "政策与监管",
}

// SectionIcon maps a category to its heading emoji.
var SectionIcon = map[Category]string{
	CategoryProduct:  "🚀",
	CategoryResearch: "🧠",
	CategoryFunding:  "💰",
	CategoryPolicy:   "🏛️",
}

// Item is a single news article as it flows through the pipeline. Fetchers
// create it, the summarizer fills Summary/Category/Company, the core
// classifies and ranks it.
type Item struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Snippet     string    `json:"snippet,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Region      Region    `json:"region"`
	Category    Category  `json:"category,omitempty"`
	Company     string    `json:"company,omitempty"`
}

// Text returns title plus whichever description field is populated, for
// keyword matching.
func (it Item) Text() string {
	desc := it.Summary
	if desc == "" {
		desc = it.Snippet
	}
	if desc == "" {
		return it.Title
	}
	return it.Title + " " + desc
}

// EffectiveCategory returns the assigned category, falling back to the
// keyword heuristic.
func (it Item) EffectiveCategory() Category {
	if it.Category != "" {
		return it.Category
	}
	return InferCategory(it.Title)
}

// RejectReason explains why the scorer dropped an item.
type RejectReason string

const (
	RejectNone       RejectReason = ""
	RejectOffTopic   RejectReason = "off-topic"
	RejectStockNoise RejectReason = "stock-market noise"
)

// Breakdown holds the independent sub-scores of a quality score.
type Breakdown struct {
	Substance   int `json:"substance"`
	Importance  int `json:"importance"`
	Timeliness  int `json:"timeliness"`
	Credibility int `json:"credibility"`
}

// Total sums the sub-scores. Score is always reproducible from Breakdown.
func (b Breakdown) Total() int {
	return b.Substance + b.Importance + b.Timeliness + b.Credibility
}

// ScoredItem is an Item after quality scoring.
type ScoredItem struct {
	Item
	Score        int          `json:"score"`
	Breakdown    Breakdown    `json:"breakdown"`
	Rejected     bool         `json:"rejected,omitempty"`
	RejectReason RejectReason `json:"reject_reason,omitempty"`
}

var categoryKeywords = []struct {
	cat   Category
	words []string
}{
	{CategoryProduct, []string{"发布", "上线", "推出", "更新", "launch", "release", "rolls out", "unveil"}},
	{CategoryFunding, []string{"融资", "投资", "并购", "收购", "估值", "ipo", "fund", "invest", "acqui", "valuation"}},
	{CategoryPolicy, []string{"政策", "监管", "法规", "版权", "合规", "policy", "regulat", "antitrust", "copyright"}},
}

// InferCategory guesses a section from title keywords. Research is the
// default bucket, matching the summarizer prompt rules.
func InferCategory(title string) Category {
	t := strings.ToLower(title)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(t, w) {
				return ck.cat
			}
		}
	}
	return CategoryResearch
}

var knownCompanies = []string{
	"字节", "豆包", "百度", "阿里", "腾讯", "智谱", "月之暗面", "Kimi", "MiniMax", "稀宇",
	"OpenAI", "Google", "Meta", "Anthropic", "Microsoft", "Amazon", "Apple", "NVIDIA",
	"xAI", "Grok", "ChatGPT", "Claude", "Gemini", "Llama", "Perplexity", "Mistral",
	"Adobe", "Salesforce", "Oracle", "IBM", "Intel", "AMD", "Samsung", "Sony", "Tesla",
}

// ExtractCompany pulls the first known company name out of a title, used
// when the summarizer doesn't name one.
func ExtractCompany(title string) string {
	if title == "" {
		return ""
	}
	t := strings.ToLower(title)
	for _, c := range knownCompanies {
		if strings.Contains(t, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}

var timeLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses the timestamp formats feeds actually emit. Unparseable
// or empty input yields the current time so recency scoring still works.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now()
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}
