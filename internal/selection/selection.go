// Package selection picks the final bounded digest from the scored,
// deduplicated candidate pool. A single greedy threshold either starves
// rare categories and regions or admits filler, so admission runs in
// passes: strict quality and diversity caps first, then progressively
// relaxed floors until the target count is met or candidates run out.
package selection

import (
	"fmt"
	"sort"

	"ainews/internal/dedup"
	"ainews/internal/logger"
	"ainews/internal/news"
	"ainews/internal/score"
)

// Options are the selector tunables. Zero values fall back to defaults.
type Options struct {
	ScoreFloors []int // strict floor first, then the relaxation ladder
	SourceCaps  []int // per-source cap per pass tier; 0 means unlimited
	CategoryCap int   // max items per category in capped passes
}

// DefaultOptions returns the standard admission schedule.
func DefaultOptions() Options {
	return Options{
		ScoreFloors: []int{25, 15, 10, 5, 0},
		SourceCaps:  []int{2, 3, 0},
		CategoryCap: 4,
	}
}

// Stats summarizes one selection run for diagnostics.
type Stats struct {
	Candidates   int
	Deduplicated int
	Rejected     int
	Selected     int
	AverageScore float64
	BySource     map[string]int
	ByRegion     map[news.Region]int
	ByCategory   map[news.Category]int
	Shortfall    bool // fewer survivors than the target
}

// Selector runs the dedup → score → admit pipeline over one batch.
type Selector struct {
	engine  *dedup.Engine
	scorer  *score.Scorer
	options Options
}

// New builds a selector around a dedup engine and scorer.
func New(engine *dedup.Engine, scorer *score.Scorer, opts Options) *Selector {
	def := DefaultOptions()
	if len(opts.ScoreFloors) == 0 {
		opts.ScoreFloors = def.ScoreFloors
	}
	if len(opts.SourceCaps) == 0 {
		opts.SourceCaps = def.SourceCaps
	}
	if opts.CategoryCap <= 0 {
		opts.CategoryCap = def.CategoryCap
	}
	return &Selector{engine: engine, scorer: scorer, options: opts}
}

// SelectTopNews produces the final digest list: deduplicated against prior
// published items and itself, scored, then admitted under quality floors,
// per-source and per-category caps and a hard regional balance that relaxes
// only when supply runs out. Output keeps descending score order. An empty
// result is a valid "nothing publishable" outcome, not an error.
func (s *Selector) SelectTopNews(candidates []news.Item, target int, prior []news.Item) ([]news.ScoredItem, Stats) {
	if target < 0 {
		panic(fmt.Sprintf("selection: negative target count %d", target))
	}

	stats := Stats{
		Candidates: len(candidates),
		BySource:   make(map[string]int),
		ByRegion:   make(map[news.Region]int),
		ByCategory: make(map[news.Category]int),
	}

	survivors := s.dedupAndScore(candidates, prior, &stats)

	// Stable sort keeps arrival order for equal scores.
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].Score > survivors[j].Score
	})

	var selected []news.ScoredItem
	if len(survivors) < target {
		// Supply is the binding constraint; no reason to filter further.
		selected = survivors
		stats.Shortfall = true
		logger.Warn("selection shortfall", "target", target, "available", len(survivors))
	} else {
		selected = s.admit(survivors, target)
		stats.Shortfall = len(selected) < target
	}

	total := 0
	for _, it := range selected {
		total += it.Score
		stats.BySource[it.Source]++
		stats.ByRegion[it.Region]++
		stats.ByCategory[it.EffectiveCategory()]++
	}
	stats.Selected = len(selected)
	if len(selected) > 0 {
		stats.AverageScore = float64(total) / float64(len(selected))
	}
	return selected, stats
}

// dedupAndScore drops duplicates and scorer-rejected candidates in arrival
// order. Prior-day items are checked before the same-day accepted set so
// cross-day matches log distinguishably.
func (s *Selector) dedupAndScore(candidates, prior []news.Item, stats *Stats) []news.ScoredItem {
	var survivors []news.ScoredItem
	var accepted []news.Item

	for _, cand := range candidates {
		if len(prior) > 0 {
			if v := s.engine.CheckSemanticDuplicate(cand, prior); v.IsDuplicate {
				stats.Deduplicated++
				logger.Debug("dropped cross-day duplicate", "title", cand.Title, "reason", string(v.Reason), "confidence", v.Confidence)
				continue
			}
		}
		if v := s.engine.CheckDuplicate(cand, accepted); v.IsDuplicate {
			stats.Deduplicated++
			logger.Debug("dropped duplicate", "title", cand.Title, "reason", string(v.Reason), "confidence", v.Confidence)
			continue
		}

		scored := s.scorer.Score(cand)
		if scored.Rejected {
			stats.Rejected++
			logger.Debug("rejected by scorer", "title", cand.Title, "reason", string(scored.RejectReason))
			continue
		}

		accepted = append(accepted, cand)
		survivors = append(survivors, scored)
	}
	return survivors
}

// admit scans the sorted pool in passes. Every floor is tried under the
// tight source cap before the cap loosens. The per-region cap of
// ceil(target/2) is hard across all passes: the digest would rather come up
// short than tilt to one region.
func (s *Selector) admit(sorted []news.ScoredItem, target int) []news.ScoredItem {
	regionCap := (target + 1) / 2

	picked := make([]bool, len(sorted))
	sourceCount := make(map[string]int)
	categoryCount := make(map[news.Category]int)
	regionCount := make(map[news.Region]int)
	var selected []news.ScoredItem

	admitPass := func(floor, sourceCap int) {
		for i := range sorted {
			if len(selected) >= target {
				return
			}
			it := sorted[i]
			if picked[i] || it.Score < floor {
				continue
			}
			if sourceCap > 0 && sourceCount[it.Source] >= sourceCap {
				continue
			}
			if categoryCount[it.EffectiveCategory()] >= s.options.CategoryCap {
				continue
			}
			if regionCount[it.Region] >= regionCap {
				continue
			}
			if it.URL != "" && hasURL(selected, it.URL) {
				continue
			}
			picked[i] = true
			selected = append(selected, it)
			sourceCount[it.Source]++
			categoryCount[it.EffectiveCategory()]++
			regionCount[it.Region]++
		}
	}

	for _, sourceCap := range s.options.SourceCaps {
		for _, floor := range s.options.ScoreFloors {
			admitPass(floor, sourceCap)
			if len(selected) >= target {
				return resort(selected)
			}
		}
	}
	return resort(selected)
}

// resort restores descending score order after multi-pass admission.
func resort(items []news.ScoredItem) []news.ScoredItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items
}

func hasURL(items []news.ScoredItem, url string) bool {
	for _, it := range items {
		if it.URL == url {
			return true
		}
	}
	return false
}
