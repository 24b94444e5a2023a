// Package match scores canonical names against locale asset candidates and
// classifies the outcome. Scoring combines word-level token overlap
// (tolerant of reordering) with character-bigram overlap (which catches
// near-miss spellings the token method would score 0 on), plus a small
// bonus for substring containment, common when file stems embed extra
// qualifiers around the layer name.
package match

import (
	"sort"
	"strings"

	"github.com/framelate/framelate/canon"
	"github.com/framelate/framelate/catalog"
)

// Weights and thresholds of the combined score and the decision policy.
const (
	tokenWeight    = 0.55
	bigramWeight   = 0.45
	substringBonus = 0.08

	// MinConfidence is the minimum best score for a confident match.
	MinConfidence = 0.6
	// AmbiguityMargin is the minimum best-minus-second gap below which the
	// decision is ambiguous.
	AmbiguityMargin = 0.04
	// TopN is how many ranked candidates a decision carries for diagnostics.
	TopN = 3
)

// stopWords are generic words carrying no matching signal.
var stopWords = map[string]bool{
	"image":      true,
	"img":        true,
	"screenshot": true,
	"screen":     true,
	"copy":       true,
	"final":      true,
	"default":    true,
	"asset":      true,
	"picture":    true,
}

// ---------------------------------------------------------------------------
// Similarity scoring
// ---------------------------------------------------------------------------

// tokenSet splits a canonical string into its significant token set.
// Tokens shorter than 2 runes, purely numeric tokens, and stop words are
// discarded; duplicates collapse.
func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		if len([]rune(tok)) < 2 || stopWords[tok] || isNumeric(tok) {
			continue
		}
		set[tok] = true
	}
	return set
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// tokenDice is the Dice coefficient over the two significant token sets.
func tokenDice(a, b string) float64 {
	sa, sb := tokenSet(a), tokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	common := 0
	for tok := range sa {
		if sb[tok] {
			common++
		}
	}
	return 2 * float64(common) / float64(len(sa)+len(sb))
}

// bigramCounts decomposes a string into overlapping 2-rune windows.
// A single-rune string yields one degenerate "bigram" equal to itself.
func bigramCounts(s string) map[string]int {
	runes := []rune(s)
	counts := make(map[string]int)
	if len(runes) == 0 {
		return counts
	}
	if len(runes) == 1 {
		counts[string(runes)] = 1
		return counts
	}
	for i := 0; i+1 < len(runes); i++ {
		counts[string(runes[i:i+2])]++
	}
	return counts
}

// bigramDice is the Dice coefficient over bigram multisets, using
// min-count intersection normalized by both totals.
func bigramDice(a, b string) float64 {
	ca, cb := bigramCounts(a), bigramCounts(b)
	totalA, totalB := 0, 0
	for _, n := range ca {
		totalA += n
	}
	for _, n := range cb {
		totalB += n
	}
	if totalA == 0 || totalB == 0 {
		return 0
	}
	common := 0
	for bg, n := range ca {
		if m := cb[bg]; m < n {
			common += m
		} else {
			common += n
		}
	}
	return 2 * float64(common) / float64(totalA+totalB)
}

// Score computes the combined similarity of two canonical strings in [0,1].
// Exact equality short-circuits to 1.
func Score(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	score := tokenWeight*tokenDice(a, b) + bigramWeight*bigramDice(a, b)
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		score += substringBonus
	}
	if score > 1 {
		score = 1
	}
	return score
}

// ---------------------------------------------------------------------------
// Ranking and decision
// ---------------------------------------------------------------------------

// Status classifies a matching attempt.
type Status string

const (
	StatusMatched       Status = "matched"
	StatusAmbiguous     Status = "ambiguous"
	StatusLowConfidence Status = "low-confidence"
	StatusNoCandidate   Status = "no-candidate"
)

// Ranked is one scored candidate.
type Ranked struct {
	Entry catalog.Entry
	Score float64
}

// Decision is the outcome of matching one node name against one locale's
// candidate pool. Top always carries up to TopN ranked candidates for
// diagnostics, regardless of status.
type Decision struct {
	Status Status
	Best   *Ranked
	Second *Ranked
	Top    []Ranked
}

// Rank scores every candidate stem against the node's display name and
// classifies the outcome. The ambiguity check is evaluated independently
// of the confidence check and wins whenever the margin condition holds.
func Rank(nodeName string, candidates []catalog.Entry) Decision {
	name := canon.Name(nodeName)

	ranked := make([]Ranked, 0, len(candidates))
	for _, e := range candidates {
		ranked = append(ranked, Ranked{Entry: e, Score: Score(name, canon.Name(e.Stem))})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	top := ranked
	if len(top) > TopN {
		top = top[:TopN]
	}
	d := Decision{Top: append([]Ranked(nil), top...)}

	if len(ranked) == 0 {
		d.Status = StatusNoCandidate
		return d
	}
	d.Best = &ranked[0]
	if len(ranked) > 1 {
		d.Second = &ranked[1]
	}

	switch {
	case d.Best.Score < MinConfidence:
		d.Status = StatusLowConfidence
	case d.Second != nil && d.Best.Score-d.Second.Score < AmbiguityMargin:
		d.Status = StatusAmbiguous
	default:
		d.Status = StatusMatched
	}
	return d
}
