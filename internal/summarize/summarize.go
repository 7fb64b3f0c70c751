// Package summarize enriches selected items with an LLM: a Chinese
// two-sentence summary plus category, region and company labels. Every
// LLM answer is validated; anything malformed falls back to the keyword
// heuristics so a flaky model never blocks the digest.
package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ainews/internal/cache"
	"ainews/internal/logger"
	"ainews/internal/metrics"
	"ainews/internal/news"
	"ainews/internal/ratelimit"
)

const annotationTTL = 12 * time.Hour

type Client struct {
	client  *genai.Client
	model   string
	limiter *ratelimit.Limiter
	memo    *cache.Cache
}

func NewClient(ctx context.Context, apiKey, model string, limiter *ratelimit.Limiter) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: model, limiter: limiter, memo: cache.New()}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// annotation is what we ask the model to emit, one object per item.
type annotation struct {
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Region   string `json:"region"`
	Company  string `json:"company"`
}

// Summarize annotates every item in place. Items the model could not
// handle keep their snippet as summary and get heuristic labels.
func (c *Client) Summarize(ctx context.Context, items []news.Item) []news.Item {
	for i := range items {
		item := &items[i]
		if !c.limiter.CanUseLLM() {
			applyFallback(item)
			continue
		}
		if err := c.annotateOne(ctx, item); err != nil {
			logger.Error("summarize failed", "title", item.Title, "error", err)
			metrics.Global.IncrementLLMFailures()
			applyFallback(item)
		}
	}
	return items
}

func (c *Client) annotateOne(ctx context.Context, item *news.Item) error {
	key := c.memo.GenerateKey(item.Title, item.Snippet)
	if cached, ok := c.memo.Get(key); ok {
		if ann, ok := cached.(*annotation); ok {
			apply(item, ann)
			return nil
		}
	}

	if err := c.limiter.UseLLM(); err != nil {
		return err
	}
	metrics.Global.IncrementLLMRequests()

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(item)))
	if err != nil {
		return fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no response from Gemini")
	}

	raw := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	ann, err := parseAnnotation(raw)
	if err != nil {
		return err
	}
	c.memo.Set(key, ann, annotationTTL)
	apply(item, ann)
	return nil
}

func buildPrompt(item *news.Item) string {
	content := strings.Join(strings.Fields(item.Snippet), " ")
	maxChars := 4000
	if utf8.RuneCountInString(content) > maxChars {
		runes := []rune(content)
		content = string(runes[:maxChars])
	}

	return fmt.Sprintf(`你是一名 AI 行业新闻编辑。阅读下面的新闻并输出一个 JSON 对象。

新闻:
标题: %s
内容: %s
来源: %s

输出要求:
- summary: 两句以内的中文摘要,只保留事实,不要评论
- category: 只能是 product、research、funding、policy 之一
- region: 只能是 domestic(中国)或 overseas 之一
- company: 新闻主角公司名,没有则为空字符串

只输出 JSON,不要其他文字。`, item.Title, content, item.Source)
}

// parseAnnotation pulls the JSON object out of the model's reply, which
// sometimes arrives wrapped in a markdown code fence.
func parseAnnotation(raw string) (*annotation, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var ann annotation
	if err := json.Unmarshal([]byte(raw[start:end+1]), &ann); err != nil {
		return nil, fmt.Errorf("could not parse response: %w", err)
	}
	if strings.TrimSpace(ann.Summary) == "" {
		return nil, fmt.Errorf("response has empty summary")
	}
	return &ann, nil
}

func apply(item *news.Item, ann *annotation) {
	item.Summary = strings.TrimSpace(ann.Summary)

	switch news.Category(ann.Category) {
	case news.CategoryProduct, news.CategoryResearch, news.CategoryFunding, news.CategoryPolicy:
		item.Category = news.Category(ann.Category)
	default:
		item.Category = news.InferCategory(item.Text())
	}

	switch news.Region(ann.Region) {
	case news.RegionDomestic, news.RegionOverseas:
		item.Region = news.Region(ann.Region)
	}

	if company := strings.TrimSpace(ann.Company); company != "" {
		item.Company = company
	} else if item.Company == "" {
		item.Company = news.ExtractCompany(item.Text())
	}
}

// applyFallback labels an item without the LLM.
func applyFallback(item *news.Item) {
	if item.Summary == "" {
		item.Summary = item.Snippet
	}
	if item.Category == "" {
		item.Category = news.InferCategory(item.Text())
	}
	if item.Company == "" {
		item.Company = news.ExtractCompany(item.Text())
	}
}
