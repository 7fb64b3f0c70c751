package fingerprint

import (
	"math"
	"strings"
	"unicode"
)

// Similarity is the weighted comparison of two fingerprints.
type Similarity struct {
	Overall        float64
	EntityJaccard  float64
	ActionJaccard  float64
	ProductJaccard float64
	HashMatch      float64
}

// Jaccard returns |A∩B| / |A∪B| over string sets. Two empty sets score 0,
// not 1: absence of terms carries no positive signal.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	union := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		union[s] = struct{}{}
	}
	for _, s := range b {
		union[s] = struct{}{}
	}
	inter := 0
	for _, s := range a {
		if Has(b, s) {
			inter++
		}
	}
	return float64(inter) / float64(len(union))
}

// Compare computes fingerprint similarity. Shared entities are the
// strongest duplicate signal, shared action concept second, shared product
// third; an equal non-empty composite key is a confirmatory boost.
func Compare(a, b Fingerprint) Similarity {
	s := Similarity{
		EntityJaccard:  Jaccard(a.Entities, b.Entities),
		ActionJaccard:  Jaccard(a.ActionConcepts, b.ActionConcepts),
		ProductJaccard: Jaccard(a.Products, b.Products),
	}
	if a.CompositeKey != "" && a.CompositeKey == b.CompositeKey {
		s.HashMatch = 1
	}
	s.Overall = 0.5*s.EntityJaccard + 0.25*s.ActionJaccard + 0.15*s.ProductJaccard + 0.10*s.HashMatch
	return s
}

// NGramCosine computes cosine similarity of character n-gram frequency
// vectors over normalized text (lowercase, letters/digits/CJK only).
// Returns 0 when either normalized text is shorter than n runes.
func NGramCosine(a, b string, n int) float64 {
	if n <= 0 {
		n = 2
	}
	ra := normalizeRunes(a)
	rb := normalizeRunes(b)
	if len(ra) < n || len(rb) < n {
		return 0
	}

	va := ngramCounts(ra, n)
	vb := ngramCounts(rb, n)

	var dot, magA, magB float64
	for g, ca := range va {
		magA += float64(ca * ca)
		if cb, ok := vb[g]; ok {
			dot += float64(ca * cb)
		}
	}
	for _, cb := range vb {
		magB += float64(cb * cb)
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

func normalizeRunes(s string) []rune {
	s = strings.ToLower(s)
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

func ngramCounts(runes []rune, n int) map[string]int {
	counts := make(map[string]int, len(runes))
	for i := 0; i+n <= len(runes); i++ {
		counts[string(runes[i:i+n])]++
	}
	return counts
}
