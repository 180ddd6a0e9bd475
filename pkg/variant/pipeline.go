package variant

import (
	"sort"

	"github.com/bastiangx/anahash/pkg/alphabet"
	"github.com/bastiangx/anahash/pkg/anaindex"
	"github.com/bastiangx/anahash/pkg/confusable"
	"github.com/bastiangx/anahash/pkg/neighbor"
	"github.com/bastiangx/anahash/pkg/scoring"
	"github.com/bastiangx/anahash/pkg/vocab"
	"github.com/charmbracelet/log"
)

// Match is one ranked result of a query, shaped to feed spec.md §6's
// output formats directly.
type Match struct {
	EntryID    vocab.EntryID
	Text       string
	Similarity float64
	DistScore  float64
	FreqScore  float64
	Via        string
	Lexicons   []string
}

// Model is the read-only, post-build view shared across queries - the
// alphabet, vocabulary, index, and confusable list, plus a logger.
// Once built, nothing here is mutated by a query (spec.md §5).
type Model struct {
	Alphabet    *alphabet.Alphabet
	Primes      []int64
	Store       *vocab.Store
	Index       *anaindex.Index
	Confusables []confusable.Pattern
	Logger      *log.Logger
}

type scoredCandidate struct {
	id  vocab.EntryID
	res scoring.Result
}

// FindVariants runs the full per-input pipeline of spec.md §4.8.
func (m *Model) FindVariants(queryText string, p Params) []Match {
	encoded := m.Alphabet.Encode(queryText)
	qRunes := []rune(queryText)
	L := len(encoded)

	anagramBudget := p.MaxAnagramDistance.Resolve(L)
	editBudget := p.MaxEditDistance.Resolve(L)
	normWeights := p.Weights.Normalize()

	candidateIDs := neighbor.Search(queryText, encoded, m.Primes, m.Index, m.Store,
		neighbor.Params{MaxAnagramDistance: anagramBudget, StopAtExactMatch: p.Stop.StopAtExact},
		m.Logger)

	var scored []scoredCandidate
	for _, id := range candidateIDs {
		e, ok := m.Store.Entry(id)
		if !ok || e.Kind == vocab.KindLMOnly {
			continue
		}
		cRunes := []rune(e.Text)
		res := scoring.Score(qRunes, cRunes, normWeights)

		maxLen := len(qRunes)
		if len(cRunes) > maxLen {
			maxLen = len(cRunes)
		}
		localEditBudget := editBudget
		if p.MaxEditDistance.IsRatio {
			localEditBudget = p.MaxEditDistance.Resolve(maxLen)
		}
		if res.LD > localEditBudget {
			continue
		}

		script := confusable.Extract(qRunes, cRunes)
		if p.ConfusablesBeforePrune {
			scale := confusable.Rescore(script, m.Confusables)
			res.Similarity *= scale
			if res.Similarity < p.ScoreThreshold {
				continue
			}
		} else {
			if res.Similarity < p.ScoreThreshold {
				continue
			}
			scale := confusable.Rescore(script, m.Confusables)
			res.Similarity *= scale
		}
		scored = append(scored, scoredCandidate{id: id, res: res})
	}

	scored = applyCutoff(scored, p.CutoffThreshold)

	finalMatches := expandVariants(m.Store, scored)
	applyFrequencyScore(m.Store, finalMatches)

	matches := rank(finalMatches, p.FreqWeight)
	return truncate(matches, p.MaxMatches, p.FreqWeight)
}

func applyCutoff(scored []scoredCandidate, cutoff float64) []scoredCandidate {
	if cutoff <= 0 || len(scored) == 0 {
		return scored
	}
	best := 0.0
	for _, s := range scored {
		if s.res.Similarity > best {
			best = s.res.Similarity
		}
	}
	thresh := best / cutoff
	out := scored[:0:0]
	for _, s := range scored {
		if s.res.Similarity >= thresh {
			out = append(out, s)
		}
	}
	return out
}

func expandVariants(store *vocab.Store, scored []scoredCandidate) map[vocab.EntryID]*Match {
	out := map[vocab.EntryID]*Match{}
	for _, s := range scored {
		final, via, ok := store.Resolve(s.id)
		if !ok {
			continue
		}
		if m, exists := out[final.ID]; exists {
			if s.res.Similarity > m.Similarity {
				m.Similarity = s.res.Similarity
				m.DistScore = s.res.LDScore
				if via != "" {
					m.Via = via
				}
			}
		} else {
			out[final.ID] = &Match{
				EntryID:    final.ID,
				Text:       final.Text,
				Similarity: s.res.Similarity,
				DistScore:  s.res.LDScore,
				Via:        via,
				Lexicons:   tagsOf(final),
			}
		}
	}
	return out
}

func tagsOf(e *vocab.Entry) []string {
	tags := make([]string, 0, len(e.FreqByTag))
	for t := range e.FreqByTag {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// applyFrequencyScore fills in Match.FreqScore, normalized against the
// maximum summed-per-lexicon frequency across the final candidate set,
// per spec.md §4.8 step 7.
func applyFrequencyScore(store *vocab.Store, matches map[vocab.EntryID]*Match) {
	maxFreq := 0
	for id := range matches {
		if e, ok := store.Entry(id); ok {
			if f := e.Freq(); f > maxFreq {
				maxFreq = f
			}
		}
	}
	if maxFreq == 0 {
		return
	}
	for id, m := range matches {
		if e, ok := store.Entry(id); ok {
			m.FreqScore = float64(e.Freq()) / float64(maxFreq)
		}
	}
}

// rank sorts by the ranking key described in spec.md §4.8 step 7: pure
// similarity when freqWeight is 0, otherwise a blend of similarity and
// normalized frequency rank. Ties broken by entry id ascending so
// output is reproducible.
func rank(matches map[vocab.EntryID]*Match, freqWeight float64) []Match {
	list := make([]Match, 0, len(matches))
	for _, m := range matches {
		list = append(list, *m)
	}
	key := func(m Match) float64 {
		if freqWeight <= 0 {
			return m.Similarity
		}
		return (m.Similarity + freqWeight*m.FreqScore) / (1 + freqWeight)
	}
	sort.Slice(list, func(i, j int) bool {
		ki, kj := key(list[i]), key(list[j])
		if ki != kj {
			return ki > kj
		}
		return list[i].EntryID < list[j].EntryID
	})
	return list
}

// truncate keeps the top max matches, but never cuts in the middle of
// a tied ranking-key group - the last retained score's full tie group
// is kept in full, per original_source/src/lib.rs's score_and_rank
// truncation behavior (DESIGN.md's grounding ledger entry for
// pkg/variant).
func truncate(matches []Match, max int, freqWeight float64) []Match {
	if max <= 0 || len(matches) <= max {
		return matches
	}
	key := func(m Match) float64 {
		if freqWeight <= 0 {
			return m.Similarity
		}
		return (m.Similarity + freqWeight*m.FreqScore) / (1 + freqWeight)
	}
	cut := key(matches[max-1])
	end := max
	for end < len(matches) && key(matches[end]) == cut {
		end++
	}
	return matches[:end]
}
