package fingerprint

import (
	"math"
	"reflect"
	"testing"
)

func TestExtractEntitiesAndConcepts(t *testing.T) {
	ex := NewExtractor(nil)

	fp := ex.Extract("OpenAI hires John Doe")

	if !Has(fp.Entities, "openai") {
		t.Errorf("expected openai in entities, got %v", fp.Entities)
	}
	if !Has(fp.Entities, "john doe") {
		t.Errorf("expected john doe in entities, got %v", fp.Entities)
	}
	if !Has(fp.ActionConcepts, "hire") {
		t.Errorf("expected hire concept, got %v", fp.ActionConcepts)
	}
	if fp.CompositeKey == "" {
		t.Error("expected non-empty composite key")
	}
}

func TestExtractChineseText(t *testing.T) {
	ex := NewExtractor(nil)

	fp := ex.Extract("百度发布文心一言新版本")

	if !Has(fp.Entities, "百度") {
		t.Errorf("expected 百度 in entities, got %v", fp.Entities)
	}
	if !Has(fp.ActionConcepts, "release") {
		t.Errorf("expected release concept from 发布, got %v", fp.ActionConcepts)
	}
	if !Has(fp.Products, "文心一言") {
		t.Errorf("expected 文心一言 in products, got %v", fp.Products)
	}
}

func TestExtractWordBoundaries(t *testing.T) {
	ex := NewExtractor(nil)

	// "hire" must not fire inside "sapphire".
	fp := ex.Extract("Sapphire prices keep climbing")
	if Has(fp.ActionConcepts, "hire") {
		t.Errorf("hire matched inside sapphire: %v", fp.ActionsRaw)
	}
}

func TestExtractEmpty(t *testing.T) {
	ex := NewExtractor(nil)

	for _, text := range []string{"", "   "} {
		fp := ex.Extract(text)
		if len(fp.Entities) != 0 || len(fp.ActionConcepts) != 0 || fp.CompositeKey != "" {
			t.Errorf("Extract(%q) should be a zero fingerprint, got %+v", text, fp)
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	ex := NewExtractor(nil)
	text := "OpenAI and Microsoft expand partnership, raise funding for GPT-5"

	a := ex.Extract(text)
	b := ex.Extract(text)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("extraction not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
		{"partial", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"one empty", []string{"a"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if sym := Jaccard(tt.b, tt.a); math.Abs(got-sym) > 1e-9 {
				t.Errorf("Jaccard not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestCompareBounds(t *testing.T) {
	ex := NewExtractor(nil)

	a := ex.Extract("OpenAI hires John Doe")
	b := ex.Extract("John Doe joins OpenAI")
	c := ex.Extract("腾讯投资芯片初创公司")

	for _, pair := range [][2]Fingerprint{{a, b}, {a, c}, {b, c}, {a, a}} {
		s := Compare(pair[0], pair[1])
		if s.Overall < 0 || s.Overall > 1 {
			t.Errorf("Overall out of range: %v", s.Overall)
		}
	}

	same := Compare(a, a)
	if same.HashMatch != 1 {
		t.Errorf("identical fingerprints should hash-match, got %v", same.HashMatch)
	}
	if Compare(a, c).Overall >= Compare(a, b).Overall {
		t.Error("unrelated pair scored at least as high as paraphrase pair")
	}
}

func TestNGramCosine(t *testing.T) {
	if got := NGramCosine("OpenAI releases GPT-5", "OpenAI releases GPT-5", 2); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical texts should score 1, got %v", got)
	}
	if got := NGramCosine("abcdef", "uvwxyz", 2); got != 0 {
		t.Errorf("disjoint texts should score 0, got %v", got)
	}
	if got := NGramCosine("a", "abcdef", 2); got != 0 {
		t.Errorf("too-short text should score 0, got %v", got)
	}
	ab := NGramCosine("OpenAI hires John Doe", "John Doe joins OpenAI", 2)
	ba := NGramCosine("John Doe joins OpenAI", "OpenAI hires John Doe", 2)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("cosine not symmetric: %v vs %v", ab, ba)
	}
}
