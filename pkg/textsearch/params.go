package textsearch

import "github.com/bastiangx/anahash/pkg/variant"

// Params bundles the query-pipeline parameters (variant.Params) with
// the text-search-specific knobs named in spec.md §3/§4.9.
type Params struct {
	Query variant.Params

	MaxNgram           int
	MaxSeq             int
	ConsolidateMatches bool
	ContextWeight      float64
	VariantModelWeight float64
	LMWeight           float64
	ContextRulesWeight float64
	UnicodeOffsets     bool
}

// DefaultParams mirrors spec.md's named defaults (max_ngram=2,
// max_seq=250, lm_weight=1.0, variantmodel_weight=1.0).
func DefaultParams() Params {
	return Params{
		Query:              variant.DefaultParams(),
		MaxNgram:           2,
		MaxSeq:             250,
		ConsolidateMatches: true,
		VariantModelWeight: 1.0,
		LMWeight:           1.0,
	}
}
