package textsearch

import (
	"github.com/bastiangx/anahash/pkg/lm"
	"github.com/bastiangx/anahash/pkg/variant"
)

// Search runs the full text-search pipeline of spec.md §4.9: tokenize,
// enumerate n-gram segments, invoke the query pipeline per segment,
// and either return every segment match or consolidate to a single
// non-overlapping cover.
func Search(model *variant.Model, text string, tp Params, rules []ContextRule, lmModel lm.Model) (tokens []Token, matches []Match) {
	tokens, all := EnumerateSegments(model, text, tp.Query, maxOf(tp.MaxNgram, 1), rules)
	if !tp.ConsolidateMatches {
		return tokens, all
	}
	if lmModel == nil {
		lmModel = lm.NoOp{}
	}
	return tokens, Consolidate(tokens, all, lmModel, tp)
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
