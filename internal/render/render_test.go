package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ainews/internal/news"
	"ainews/internal/selection"
)

var renderDate = time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

func scored(title, url, source string, cat news.Category, score int) news.ScoredItem {
	return news.ScoredItem{
		Item: news.Item{
			Title:    title,
			URL:      url,
			Source:   source,
			Summary:  title + "的摘要。",
			Category: cat,
		},
		Score:     score,
		Breakdown: news.Breakdown{Substance: score},
	}
}

func TestNewsletterGroupsByCategory(t *testing.T) {
	selected := []news.ScoredItem{
		scored("OpenAI 发布新模型", "https://a.com/1", "TechCrunch", news.CategoryProduct, 40),
		scored("蛋白质结构预测新进展", "https://b.com/2", "机器之心", news.CategoryResearch, 35),
		scored("某 AI 初创完成 B 轮融资", "https://c.com/3", "36氪", news.CategoryFunding, 30),
	}

	html, err := Newsletter(selected, renderDate)
	if err != nil {
		t.Fatalf("Newsletter: %v", err)
	}

	for _, want := range []string{
		"AI 快讯 · 2025-06-10",
		"产品发布与更新",
		"技术与研究",
		"投融资与并购",
		"https://a.com/1",
		"OpenAI 发布新模型",
		"评分 40",
		"共 3 条",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("newsletter missing %q", want)
		}
	}
	if strings.Contains(html, news.SectionTitle[news.CategoryPolicy]) {
		t.Error("empty policy section should be skipped")
	}
}

func TestNewsletterSectionOrder(t *testing.T) {
	selected := []news.ScoredItem{
		scored("监管新动向", "https://p.com/1", "InfoQ 中文", news.CategoryPolicy, 20),
		scored("新品上线", "https://q.com/2", "量子位", news.CategoryProduct, 25),
	}

	html, err := Newsletter(selected, renderDate)
	if err != nil {
		t.Fatal(err)
	}

	product := strings.Index(html, news.SectionTitle[news.CategoryProduct])
	policy := strings.Index(html, news.SectionTitle[news.CategoryPolicy])
	if product < 0 || policy < 0 || product > policy {
		t.Errorf("product section must precede policy: product=%d policy=%d", product, policy)
	}
}

func TestDigest(t *testing.T) {
	selected := []news.ScoredItem{
		scored("OpenAI 发布新模型", "https://a.com/1", "TechCrunch", news.CategoryProduct, 40),
	}

	text := Digest(selected, renderDate)
	if !strings.Contains(text, "<b>AI 快讯 · 2025-06-10</b>") {
		t.Errorf("digest header missing: %q", text)
	}
	if !strings.Contains(text, `<a href="https://a.com/1">OpenAI 发布新模型</a>`) {
		t.Errorf("digest link missing: %q", text)
	}
	if !strings.Contains(text, "(TechCrunch)") {
		t.Error("digest should name the source")
	}
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	selected := []news.ScoredItem{
		scored("新品上线", "https://q.com/2", "量子位", news.CategoryProduct, 25),
	}
	stats := selection.Stats{Candidates: 5, Selected: 1}

	htmlPath, err := WriteOutputs(dir, selected, stats, renderDate)
	if err != nil {
		t.Fatalf("WriteOutputs: %v", err)
	}
	if filepath.Base(htmlPath) != "newsletter-2025-06-10.html" {
		t.Errorf("newsletter path = %s", htmlPath)
	}

	data, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read newsletter: %v", err)
	}
	if !strings.Contains(string(data), "新品上线") {
		t.Error("newsletter file missing item title")
	}

	exportPath := filepath.Join(dir, "digest-2025-06-10.json")
	export, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read editor export: %v", err)
	}
	for _, want := range []string{`"date": "2025-06-10"`, `"title": "新品上线"`} {
		if !strings.Contains(string(export), want) {
			t.Errorf("editor export missing %q", want)
		}
	}
}
