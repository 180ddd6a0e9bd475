// Package variant implements the query pipeline (C8): per-input
// orchestration across encoding, neighborhood search, scoring,
// confusable rescoring, variant-graph resolution, and ranking.
package variant

import (
	"fmt"

	"github.com/bastiangx/anahash/pkg/scoring"
)

// Bound resolves to an absolute integer budget, either given directly
// or as a ratio of a reference length - spec.md §3 lets several
// SearchParameters be specified as "abs or ratio of |input|".
type Bound struct {
	Abs     int
	Ratio   float64
	IsRatio bool
}

// Resolve returns the absolute bound for the given reference length,
// per spec.md §9's recommended policy of resolving ratios against
// max(|q|,|c|).
func (b Bound) Resolve(refLen int) int {
	if !b.IsRatio {
		return b.Abs
	}
	v := int(b.Ratio * float64(refLen))
	if v < 0 {
		v = 0
	}
	return v
}

// StopCriterion mirrors original_source/src/types.rs's StopCriterion.
type StopCriterion struct {
	Exhaustive    bool
	StopAtExact   bool
	ExactMinScore float64
}

// Params is the full set of recognized search parameters from
// spec.md §3's table.
type Params struct {
	MaxAnagramDistance     Bound
	MaxEditDistance        Bound
	MaxMatches             int
	ScoreThreshold         float64
	CutoffThreshold        float64
	Stop                   StopCriterion
	FreqWeight             float64
	ConfusablesBeforePrune bool
	SingleThread           bool
	Weights                scoring.Weights
}

// DefaultParams matches the defaults named across spec.md (max
// anagram/edit distance 3, max_matches 20, score_threshold 0.25,
// cutoff_threshold 2.0, exhaustive stop criterion) - these mirror
// original_source/src/types.rs's SearchParameters::default().
func DefaultParams() Params {
	return Params{
		MaxAnagramDistance: Bound{Abs: 3},
		MaxEditDistance:    Bound{Abs: 3},
		MaxMatches:         20,
		ScoreThreshold:     0.25,
		CutoffThreshold:    2.0,
		Stop:               StopCriterion{Exhaustive: true},
		FreqWeight:         0,
		Weights:            scoring.DefaultWeights(),
	}
}

// Hash renders the subset of Params that affects a query's result as
// a stable string, for use as the params component of the per-query
// cache fingerprint (spec.md §4.11).
func (p Params) Hash() string {
	return fmt.Sprintf("a%d:%v|e%d:%v|m%d|s%v|c%v|w%+v|f%v|x%+v|b%v",
		p.MaxAnagramDistance.Abs, p.MaxAnagramDistance,
		p.MaxEditDistance.Abs, p.MaxEditDistance,
		p.MaxMatches, p.ScoreThreshold, p.CutoffThreshold, p.Weights, p.FreqWeight,
		p.Stop, p.ConfusablesBeforePrune)
}

// Fingerprint combines the raw query text (not its encoded form) with
// the parameter hash to form a per-query cache key.
func Fingerprint(queryText string, p Params) string {
	return queryText + "\x1f" + p.Hash()
}
