// Package render turns a day's selection into the published artifacts:
// an HTML newsletter grouped by category, a plain-text digest for chat
// channels, and a JSON export for manual editing.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ainews/internal/news"
	"ainews/internal/selection"
)

type section struct {
	Title string
	Icon  string
	Items []news.ScoredItem
}

type newsletterData struct {
	Date     string
	Sections []section
	Count    int
}

var newsletterTmpl = template.Must(template.New("newsletter").Parse(`<!DOCTYPE html>
<html lang="zh">
<head>
<meta charset="UTF-8">
<title>AI 快讯 {{.Date}}</title>
<style>
body { font-family: -apple-system, "PingFang SC", "Microsoft YaHei", sans-serif; max-width: 680px; margin: 0 auto; padding: 24px; color: #1a1a1a; }
h1 { font-size: 22px; border-bottom: 2px solid #1a73e8; padding-bottom: 8px; }
h2 { font-size: 17px; margin-top: 28px; }
.item { margin: 14px 0; padding: 12px 16px; background: #f8f9fa; border-radius: 8px; }
.item a { color: #1a73e8; text-decoration: none; font-weight: 600; }
.summary { margin: 6px 0 0; font-size: 14px; line-height: 1.6; }
.meta { font-size: 12px; color: #70757a; margin-top: 4px; }
.footer { margin-top: 32px; font-size: 12px; color: #70757a; text-align: center; }
</style>
</head>
<body>
<h1>AI 快讯 · {{.Date}}</h1>
{{range .Sections}}<h2>{{.Icon}} {{.Title}}</h2>
{{range .Items}}<div class="item">
<a href="{{.Item.URL}}">{{.Item.Title}}</a>
{{if .Item.Summary}}<p class="summary">{{.Item.Summary}}</p>{{end}}
<div class="meta">{{.Item.Source}}{{if .Item.Company}} · {{.Item.Company}}{{end}} · 评分 {{.Breakdown.Total}}</div>
</div>
{{end}}{{end}}<div class="footer">共 {{.Count}} 条 · 自动生成</div>
</body>
</html>
`))

// Newsletter renders the HTML digest. Categories appear in fixed order;
// empty categories are skipped.
func Newsletter(selected []news.ScoredItem, date time.Time) (string, error) {
	data := newsletterData{
		Date:     date.Format("2006-01-02"),
		Sections: groupByCategory(selected),
		Count:    len(selected),
	}

	var buf bytes.Buffer
	if err := newsletterTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render newsletter: %w", err)
	}
	return buf.String(), nil
}

// Digest renders a plain-text version suitable for Telegram.
func Digest(selected []news.ScoredItem, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>AI 快讯 · %s</b>\n", date.Format("2006-01-02"))

	for _, sec := range groupByCategory(selected) {
		fmt.Fprintf(&b, "\n%s <b>%s</b>\n", sec.Icon, sec.Title)
		for _, s := range sec.Items {
			fmt.Fprintf(&b, "· <a href=\"%s\">%s</a> (%s)\n", s.Item.URL, s.Item.Title, s.Item.Source)
		}
	}
	return b.String()
}

func groupByCategory(selected []news.ScoredItem) []section {
	byCat := make(map[news.Category][]news.ScoredItem)
	for _, s := range selected {
		cat := s.Item.EffectiveCategory()
		byCat[cat] = append(byCat[cat], s)
	}

	var sections []section
	for _, cat := range news.SectionOrder {
		items := byCat[cat]
		if len(items) == 0 {
			continue
		}
		sections = append(sections, section{
			Title: news.SectionTitle[cat],
			Icon:  news.SectionIcon[cat],
			Items: items,
		})
	}
	return sections
}

// editorExport is the JSON document an editor can tweak before sending.
type editorExport struct {
	Date     string            `json:"date"`
	Stats    selection.Stats   `json:"stats"`
	Selected []news.ScoredItem `json:"selected"`
}

// WriteOutputs writes the newsletter HTML and the editor JSON into dir,
// named by date. Returns the newsletter path.
func WriteOutputs(dir string, selected []news.ScoredItem, stats selection.Stats, date time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	day := date.Format("2006-01-02")

	html, err := Newsletter(selected, date)
	if err != nil {
		return "", err
	}
	htmlPath := filepath.Join(dir, "newsletter-"+day+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("write newsletter: %w", err)
	}

	export := editorExport{Date: day, Stats: stats, Selected: selected}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal editor export: %w", err)
	}
	jsonPath := filepath.Join(dir, "digest-"+day+".json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return "", fmt.Errorf("write editor export: %w", err)
	}

	return htmlPath, nil
}
