// Package dedup decides whether a candidate article reports an event that
// an already-accepted article covers. It layers cheap exact checks (URL,
// title) under semantic ones (shared entity+action, fingerprint similarity,
// raw text similarity) in a fixed precedence.
package dedup

import (
	"strings"
	"time"

	"ainews/internal/fingerprint"
	"ainews/internal/lexicon"
	"ainews/internal/news"
)

// Reason labels why a candidate was classified as a duplicate.
type Reason string

const (
	ReasonNone                 Reason = "no duplicate found"
	ReasonSameURL              Reason = "same URL"
	ReasonIdenticalTitle       Reason = "identical title"
	ReasonEntityAction         Reason = "entity and action match"
	ReasonFingerprint          Reason = "semantic fingerprint match"
	ReasonTextSimilarity       Reason = "high text similarity"
	ReasonContentEntityOverlap Reason = "content entity overlap"
)

// Verdict is the outcome of one duplicate check. Confidence is advisory:
// it ranks and explains matches but the boolean is the decision.
type Verdict struct {
	IsDuplicate bool
	Reason      Reason
	Confidence  float64
	Matched     *news.Item
}

// Thresholds are the tunable decision cutoffs. The defaults trace back to
// values that balanced recall against false positives on live batches;
// treat them as starting points, not constants.
type Thresholds struct {
	Fingerprint        float64 // composite fingerprint similarity (rule 4)
	Text               float64 // raw n-gram cosine (rule 5)
	CrossEntityOverlap float64 // cross-day entity Jaccard over title+summary
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Fingerprint: 0.5, Text: 0.7, CrossEntityOverlap: 0.75}
}

// Decision is one logged dedup verdict, kept for diagnostics only.
type Decision struct {
	Title       string
	MatchedWith string
	Reason      Reason
	Confidence  float64
	At          time.Time
}

const decisionLogCap = 1000

// Engine performs duplicate checks. It carries a fingerprint memo cache and
// a bounded decision log; both are conveniences, not part of the decision
// contract, and assume at most one concurrent caller. Use a fresh engine
// per run.
type Engine struct {
	thresholds Thresholds
	extractor  *fingerprint.Extractor

	cache     map[string]fingerprint.Fingerprint
	decisions []Decision
	checks    int
}

// NewEngine builds an engine with the given vocabulary and thresholds.
// A nil lexicon uses the built-in default.
func NewEngine(lex *lexicon.Lexicon, th Thresholds) *Engine {
	if th.Fingerprint <= 0 {
		th.Fingerprint = DefaultThresholds().Fingerprint
	}
	if th.Text <= 0 {
		th.Text = DefaultThresholds().Text
	}
	if th.CrossEntityOverlap <= 0 {
		th.CrossEntityOverlap = DefaultThresholds().CrossEntityOverlap
	}
	return &Engine{
		thresholds: th,
		extractor:  fingerprint.NewExtractor(lex),
		cache:      make(map[string]fingerprint.Fingerprint),
	}
}

func (e *Engine) fingerprintOf(text string) fingerprint.Fingerprint {
	if fp, ok := e.cache[text]; ok {
		return fp
	}
	fp := e.extractor.Extract(text)
	e.cache[text] = fp
	return fp
}

// CheckDuplicate classifies candidate against every prior item. Exact URL
// and title matches win outright; entity+action co-occurrence catches
// paraphrased reporting of the same event; among similarity matches the
// highest-scoring prior is reported, not the first. Inputs are never
// mutated; missing fields behave as empty and merely match less.
func (e *Engine) CheckDuplicate(candidate news.Item, prior []news.Item) Verdict {
	if candidate.Title == "" && candidate.URL == "" {
		return Verdict{Reason: ReasonNone, Confidence: 1}
	}

	candFP := e.fingerprintOf(candidate.Title)
	candTitle := strings.ToLower(strings.TrimSpace(candidate.Title))

	type simMatch struct {
		item   *news.Item
		score  float64
		reason Reason
	}
	var best *simMatch

	for i := range prior {
		p := &prior[i]

		if candidate.URL != "" && candidate.URL == p.URL {
			return e.conclude(candidate, p, Verdict{IsDuplicate: true, Reason: ReasonSameURL, Confidence: 1, Matched: p})
		}

		if candTitle != "" && candTitle == strings.ToLower(strings.TrimSpace(p.Title)) {
			return e.conclude(candidate, p, Verdict{IsDuplicate: true, Reason: ReasonIdenticalTitle, Confidence: 1, Matched: p})
		}

		priorFP := e.fingerprintOf(p.Title)

		if len(fingerprint.Intersect(candFP.Entities, priorFP.Entities)) > 0 &&
			len(fingerprint.Intersect(candFP.ActionConcepts, priorFP.ActionConcepts)) > 0 {
			return e.conclude(candidate, p, Verdict{IsDuplicate: true, Reason: ReasonEntityAction, Confidence: 0.9, Matched: p})
		}

		if sim := fingerprint.Compare(candFP, priorFP); sim.Overall >= e.thresholds.Fingerprint {
			if best == nil || sim.Overall > best.score {
				best = &simMatch{item: p, score: sim.Overall, reason: ReasonFingerprint}
			}
		}

		if txt := fingerprint.NGramCosine(candidate.Title, p.Title, 2); txt >= e.thresholds.Text {
			if best == nil || txt > best.score {
				best = &simMatch{item: p, score: txt, reason: ReasonTextSimilarity}
			}
		}
	}

	if best != nil {
		return e.conclude(candidate, best.item, Verdict{IsDuplicate: true, Reason: best.reason, Confidence: best.score, Matched: best.item})
	}

	e.checks++
	return Verdict{Reason: ReasonNone, Confidence: 1}
}

// CheckSemanticDuplicate is the cross-day variant: it compares entity sets
// over title plus summary. Summaries are longer and noisier than titles, so
// the bar is higher — a large entity overlap and at least two shared
// entities.
func (e *Engine) CheckSemanticDuplicate(candidate news.Item, prior []news.Item) Verdict {
	if v := e.CheckDuplicate(candidate, prior); v.IsDuplicate {
		return v
	}

	candFP := e.fingerprintOf(candidate.Text())
	for i := range prior {
		p := &prior[i]
		priorFP := e.fingerprintOf(p.Text())

		shared := fingerprint.Intersect(candFP.Entities, priorFP.Entities)
		overlap := fingerprint.Jaccard(candFP.Entities, priorFP.Entities)
		if overlap >= e.thresholds.CrossEntityOverlap && len(shared) >= 2 {
			return e.conclude(candidate, p, Verdict{IsDuplicate: true, Reason: ReasonContentEntityOverlap, Confidence: overlap, Matched: p})
		}
	}

	return Verdict{Reason: ReasonNone, Confidence: 1}
}

// DeduplicateBatch folds CheckDuplicate left to right over the input: each
// accepted item joins the prior set for the items after it.
func (e *Engine) DeduplicateBatch(items []news.Item) (unique, duplicates []news.Item) {
	for _, it := range items {
		if e.CheckDuplicate(it, unique).IsDuplicate {
			duplicates = append(duplicates, it)
		} else {
			unique = append(unique, it)
		}
	}
	return unique, duplicates
}

func (e *Engine) conclude(candidate news.Item, matched *news.Item, v Verdict) Verdict {
	e.checks++
	e.decisions = append(e.decisions, Decision{
		Title:       truncate(candidate.Title, 100),
		MatchedWith: truncate(matched.Title, 100),
		Reason:      v.Reason,
		Confidence:  v.Confidence,
		At:          time.Now(),
	})
	if len(e.decisions) > decisionLogCap {
		e.decisions = e.decisions[len(e.decisions)-decisionLogCap:]
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Report summarizes the decision log.
type Report struct {
	TotalChecks     int
	DuplicatesFound int
	ByReason        map[Reason]int
	Recent          []Decision
}

// GetReport builds the current diagnostics snapshot. The log only records
// duplicate verdicts, so DuplicatesFound equals its length.
func (e *Engine) GetReport() Report {
	r := Report{
		TotalChecks:     e.checks,
		DuplicatesFound: len(e.decisions),
		ByReason:        make(map[Reason]int),
	}
	for _, d := range e.decisions {
		r.ByReason[d.Reason]++
	}
	n := len(e.decisions)
	start := n - 20
	if start < 0 {
		start = 0
	}
	r.Recent = append(r.Recent, e.decisions[start:]...)
	return r
}
