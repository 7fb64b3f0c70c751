package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCleanContentStripsJunk(t *testing.T) {
	content := strings.Join([]string{
		"OpenAI 今天发布了新的推理模型，性能较上一代提升明显。",
		"Subscribe to our newsletter for more updates",
		"点击阅读原文查看完整报告",
		"扫码关注",
		"模型已经向所有付费用户开放，API 价格保持不变。",
	}, "\n")

	got := cleanContent(content)

	if strings.Contains(got, "newsletter") || strings.Contains(got, "点击阅读原文") || strings.Contains(got, "扫码") {
		t.Errorf("junk lines survived: %q", got)
	}
	for _, want := range []string{"推理模型", "API 价格保持不变"} {
		if !strings.Contains(got, want) {
			t.Errorf("article line dropped: %q missing from %q", want, got)
		}
	}
}

func TestCleanContentDropsShortLines(t *testing.T) {
	got := cleanContent("ok\n\nOpenAI 今天发布了新的推理模型，性能提升明显。")
	if strings.Contains(got, "ok") {
		t.Errorf("short fragment kept: %q", got)
	}
}

func TestCleanContentCollapsesSpaces(t *testing.T) {
	got := cleanContent("The  model   ships with a much longer context window today.")
	if strings.Contains(got, "  ") {
		t.Errorf("double spaces survived: %q", got)
	}
}

func TestCleanContentTrimsOnParagraphBoundary(t *testing.T) {
	para := strings.Repeat("x", 900)
	content := strings.Join([]string{para, para, para, para, para, para}, "\n")

	got := cleanContent(content)

	if len(got) > maxContentChars {
		t.Fatalf("content too long: %d", len(got))
	}
	for _, p := range strings.Split(got, "\n\n") {
		if len(p) != 900 {
			t.Errorf("trim cut inside a paragraph, len = %d", len(p))
		}
	}
}

func TestCleanContentEmpty(t *testing.T) {
	if got := cleanContent(""); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"h1 wins",
			`<html><head><title>Site | Article</title></head><body><h1>Real Headline</h1></body></html>`,
			"Real Headline",
		},
		{
			"title fallback",
			`<html><head><title>Only The Title</title></head><body><p>text</p></body></html>`,
			"Only The Title",
		},
		{
			"nothing",
			`<html><body><p>text</p></body></html>`,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTitle(docFrom(t, tt.html)); got != tt.want {
				t.Errorf("extractTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractParagraphs(t *testing.T) {
	html := `<html><body><article>
<p>short</p>
<p>This first paragraph is long enough to pass the length filter.</p>
<p>And a second substantial paragraph with actual article content.</p>
</article></body></html>`

	got := extractParagraphs(docFrom(t, html), []string{"article p"})

	if strings.Contains(got, "short") {
		t.Errorf("short paragraph kept: %q", got)
	}
	if !strings.Contains(got, "first paragraph") || !strings.Contains(got, "second substantial") {
		t.Errorf("paragraphs missing: %q", got)
	}
}

func TestExtractContentBySourceGenericFallback(t *testing.T) {
	html := `<html><body><main>
<p>The generic selector list has to find body text in unknown layouts.</p>
<p>It walks container selectors before falling back to bare paragraphs.</p>
<p>Three long paragraphs are enough for the extraction to stop early.</p>
</main></body></html>`

	got := extractContentBySource(docFrom(t, html), "https://unknown-site.example/post/1")

	if !strings.Contains(got, "generic selector list") {
		t.Errorf("content not extracted: %q", got)
	}
}
