package lm

import (
	"math"
	"strings"
)

// BOS and EOS are the sentinel tokens used in LM files per spec.md §6.
const (
	BOS = "<bos>"
	EOS = "<eos>"
)

// NgramModel is a simple maximum-likelihood n-gram model loaded from
// counts, satisfying the Model interface. Its estimation method is
// intentionally unsophisticated - spec.md §1 explicitly leaves LM
// internals unspecified; this exists so pkg/textsearch has a concrete
// collaborator to exercise and test against.
type NgramModel struct {
	counts map[string]int64
	totals map[int]int64 // total count observed per n-gram order
	order  int
}

// NewNgramModel creates an empty model with the given maximum order.
func NewNgramModel(order int) *NgramModel {
	return &NgramModel{
		counts: make(map[string]int64),
		totals: make(map[int]int64),
		order:  order,
	}
}

// Add records one ngram observation, tokens already split on spaces
// per spec.md §6's LM file format.
func (m *NgramModel) Add(tokens []string, count int64) {
	key := strings.Join(tokens, " ")
	m.counts[key] += count
	m.totals[len(tokens)] += count
	if len(tokens) > m.order {
		m.order = len(tokens)
	}
}

func (m *NgramModel) Order() int { return m.order }

// LogProb estimates log P(tokens) via a chain of conditional n-gram
// probabilities capped at Order(), backing off to unigram frequency
// when a higher-order context is unseen, and to a small floor
// probability when nothing matches (avoids -Inf on unseen text).
func (m *NgramModel) LogProb(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	padded := append([]string{BOS}, tokens...)
	padded = append(padded, EOS)

	total := 0.0
	for i := 1; i < len(padded); i++ {
		lo := i - m.order + 1
		if lo < 0 {
			lo = 0
		}
		total += math.Log(m.condProb(padded[lo : i+1]))
	}
	return total
}

func (m *NgramModel) condProb(ngram []string) float64 {
	for n := len(ngram); n >= 1; n-- {
		ctx := ngram[len(ngram)-n:]
		full := m.counts[strings.Join(ctx, " ")]
		if n == 1 {
			tot := m.totals[1]
			if tot == 0 {
				return 1e-8
			}
			if full == 0 {
				return 1e-8
			}
			return float64(full) / float64(tot)
		}
		prefix := m.counts[strings.Join(ctx[:n-1], " ")]
		if prefix > 0 && full > 0 {
			return float64(full) / float64(prefix)
		}
	}
	return 1e-8
}

// Perplexity returns exp(-avg log-prob per token), the standard LM
// quality measure, used by pkg/textsearch to rank candidate paths.
func (m *NgramModel) Perplexity(tokens []string) float64 {
	if len(tokens) == 0 {
		return 1
	}
	lp := m.LogProb(tokens)
	return math.Exp(-lp / float64(len(tokens)))
}
