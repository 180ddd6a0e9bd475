package textsearch

import (
	"strings"

	"github.com/bastiangx/anahash/pkg/variant"
)

// Match is a segment match: a span of tokens together with its ranked
// variants, per spec.md §4.9's "{(byte_begin, byte_end, token_span,
// variants)}".
type Match struct {
	Begin, End   int // byte offsets
	TokenBegin   int // token index, inclusive
	TokenEnd     int // token index, exclusive
	Text         string
	Variants     []variant.Match
	ContextScore float64
}

// EnumerateSegments tokenizes text and, for every contiguous n-gram of
// order 1..maxNgram, invokes the query pipeline. Segments with no
// variants above threshold are omitted.
func EnumerateSegments(model *variant.Model, text string, p variant.Params, maxNgram int, rules []ContextRule) ([]Token, []Match) {
	tokens := Tokenize(text)
	var matches []Match
	for n := 1; n <= maxNgram; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			span := tokens[i : i+n]
			segText := joinSpan(span)
			variants := model.FindVariants(segText, p)
			if len(variants) == 0 {
				continue
			}
			m := Match{
				Begin:      span[0].Begin,
				End:        span[len(span)-1].End,
				TokenBegin: i,
				TokenEnd:   i + n,
				Text:       segText,
				Variants:   variants,
			}
			m.ContextScore = scoreContext(tokens, i, i+n, rules)
			matches = append(matches, m)
		}
	}
	return tokens, matches
}

func joinSpan(span []Token) string {
	parts := make([]string, len(span))
	for i, t := range span {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// bestVariantScore returns the top variant's similarity, or 0 if the
// segment has none.
func (m Match) bestVariantScore() float64 {
	if len(m.Variants) == 0 {
		return 0
	}
	return m.Variants[0].Similarity
}
