package summarize

import (
	"testing"

	"ainews/internal/news"
)

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    annotation
		wantErr bool
	}{
		{
			name: "plain json",
			raw:  `{"summary": "OpenAI 发布新模型。", "category": "product", "region": "overseas", "company": "OpenAI"}`,
			want: annotation{Summary: "OpenAI 发布新模型。", Category: "product", Region: "overseas", Company: "OpenAI"},
		},
		{
			name: "fenced json",
			raw:  "```json\n{\"summary\": \"摘要内容。\", \"category\": \"research\"}\n```",
			want: annotation{Summary: "摘要内容。", Category: "research"},
		},
		{
			name: "surrounding prose",
			raw:  "好的，以下是结果：\n{\"summary\": \"摘要。\", \"category\": \"funding\"}\n希望有帮助。",
			want: annotation{Summary: "摘要。", Category: "funding"},
		},
		{
			name:    "no json object",
			raw:     "抱歉，我无法处理这条新闻。",
			wantErr: true,
		},
		{
			name:    "malformed json",
			raw:     `{"summary": "unterminated`,
			wantErr: true,
		},
		{
			name:    "empty summary",
			raw:     `{"summary": "  ", "category": "product"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnnotation(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAnnotation: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestApplyValidatesLabels(t *testing.T) {
	item := news.Item{Title: "OpenAI launches new model", Region: news.RegionOverseas}

	apply(&item, &annotation{Summary: "摘要。", Category: "weather", Region: "moon", Company: ""})

	if item.Summary != "摘要。" {
		t.Errorf("summary = %q", item.Summary)
	}
	if item.Category != news.CategoryProduct {
		t.Errorf("bad category must fall back to the heuristic, got %q", item.Category)
	}
	if item.Region != news.RegionOverseas {
		t.Errorf("bad region must keep the fetcher value, got %q", item.Region)
	}
	if item.Company != "OpenAI" {
		t.Errorf("company fallback = %q", item.Company)
	}
}

func TestApplyKeepsValidLabels(t *testing.T) {
	item := news.Item{Title: "some title", Region: news.RegionOverseas}

	apply(&item, &annotation{Summary: "摘要。", Category: "policy", Region: "domestic", Company: "字节跳动"})

	if item.Category != news.CategoryPolicy || item.Region != news.RegionDomestic || item.Company != "字节跳动" {
		t.Errorf("got %+v", item)
	}
}

func TestApplyFallback(t *testing.T) {
	item := news.Item{
		Title:   "字节跳动发布豆包大模型更新",
		Snippet: "模型能力升级，推理成本下降。",
	}

	applyFallback(&item)

	if item.Summary != item.Snippet {
		t.Errorf("summary = %q", item.Summary)
	}
	if item.Category != news.CategoryProduct {
		t.Errorf("category = %q", item.Category)
	}
	if item.Company != "字节" {
		t.Errorf("company = %q", item.Company)
	}
}
