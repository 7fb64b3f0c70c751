// Package fingerprint derives a cheap semantic summary of a headline — the
// named entities, action concepts and products it mentions — and compares
// two such summaries. The dedup engine uses it to recognize the same event
// reported with different wording.
package fingerprint

import (
	"regexp"
	"sort"
	"strings"

	"ainews/internal/lexicon"
)

// Fingerprint is the extracted semantic summary of one text. Slices behave
// as sets: deduplicated, membership is what matters.
type Fingerprint struct {
	Entities       []string
	ActionsRaw     []string
	ActionConcepts []string
	Products       []string
	TechTerms      []string
	FinancialTerms []string
	CompositeKey   string
}

// Has reports set membership in a fingerprint slice.
func Has(set []string, term string) bool {
	for _, s := range set {
		if s == term {
			return true
		}
	}
	return false
}

// Intersect returns the members of a present in b.
func Intersect(a, b []string) []string {
	var out []string
	for _, s := range a {
		if Has(b, s) {
			out = append(out, s)
		}
	}
	return out
}

type matcher struct {
	term string // normalized (lowercase) form recorded on match
	re   *regexp.Regexp
	sub  string // plain substring fallback for CJK terms
}

func (m matcher) match(lower string) bool {
	if m.re != nil {
		return m.re.MatchString(lower)
	}
	return strings.Contains(lower, m.sub)
}

// newMatcher builds a case-insensitive matcher for one vocabulary term.
// All-ASCII terms get word boundaries so "hire" doesn't fire inside
// "sapphire"; terms containing CJK match by substring since there are no
// word boundaries to anchor on.
func newMatcher(term string) matcher {
	low := strings.ToLower(strings.TrimSpace(term))
	ascii := true
	for _, r := range low {
		if r > 127 {
			ascii = false
			break
		}
	}
	if ascii {
		return matcher{term: low, re: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(low) + `\b`)}
	}
	return matcher{term: low, sub: low}
}

func buildMatchers(terms []string) []matcher {
	seen := make(map[string]struct{}, len(terms))
	out := make([]matcher, 0, len(terms))
	for _, t := range terms {
		low := strings.ToLower(strings.TrimSpace(t))
		if low == "" {
			continue
		}
		if _, dup := seen[low]; dup {
			continue
		}
		seen[low] = struct{}{}
		out = append(out, newMatcher(t))
	}
	return out
}

// Extractor matches text against a lexicon. It precompiles the term
// patterns once; Extract itself is pure and deterministic.
type Extractor struct {
	lex       *lexicon.Lexicon
	entities  []matcher // companies + persons
	products  []matcher
	actions   []matcher // surface verbs, Actions ∪ Synonyms keys
	tech      []matcher
	financial []matcher
}

// NewExtractor compiles matchers for the given lexicon. Nil falls back to
// the built-in default vocabulary.
func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	entityTerms := append(append([]string{}, lex.Companies...), lex.Persons...)

	actionTerms := append([]string{}, lex.Actions...)
	for surface := range lex.Synonyms {
		actionTerms = append(actionTerms, surface)
	}
	// Map iteration order is random; sort so extraction order is stable.
	sort.Strings(actionTerms)

	return &Extractor{
		lex:       lex,
		entities:  buildMatchers(entityTerms),
		products:  buildMatchers(lex.Products),
		actions:   buildMatchers(actionTerms),
		tech:      buildMatchers(lex.TechTerms),
		financial: buildMatchers(lex.FinancialTerms),
	}
}

func matchAll(lower string, ms []matcher) []string {
	var out []string
	for _, m := range ms {
		if m.match(lower) {
			out = append(out, m.term)
		}
	}
	return out
}

// Extract builds the fingerprint of a text. Empty input yields a zero
// fingerprint with an empty composite key.
func (e *Extractor) Extract(text string) Fingerprint {
	text = strings.TrimSpace(text)
	if text == "" {
		return Fingerprint{}
	}
	lower := strings.ToLower(text)

	fp := Fingerprint{
		Entities:       matchAll(lower, e.entities),
		ActionsRaw:     matchAll(lower, e.actions),
		Products:       matchAll(lower, e.products),
		TechTerms:      matchAll(lower, e.tech),
		FinancialTerms: matchAll(lower, e.financial),
	}

	for _, raw := range fp.ActionsRaw {
		if concept, ok := e.lex.Synonyms[raw]; ok && !Has(fp.ActionConcepts, concept) {
			fp.ActionConcepts = append(fp.ActionConcepts, concept)
		}
	}

	fp.CompositeKey = compositeKey(fp)
	return fp
}

// compositeKey joins the top 2 entities, top 2 action concepts and top 1
// product (each group sorted) into a fast equality pre-check key.
func compositeKey(fp Fingerprint) string {
	var parts []string
	parts = append(parts, topSorted(fp.Entities, 2)...)
	parts = append(parts, topSorted(fp.ActionConcepts, 2)...)
	parts = append(parts, topSorted(fp.Products, 1)...)
	return strings.Join(parts, "|")
}

func topSorted(set []string, n int) []string {
	if len(set) > n {
		set = set[:n]
	}
	out := append([]string{}, set...)
	sort.Strings(out)
	return out
}
