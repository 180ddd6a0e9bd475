// Package neighbor implements neighborhood search (C5): given a query,
// produce the set of candidate vocabulary entries reachable within a
// bounded anagram distance, by combining exact lookup, deletion
// enumeration, and divisibility-based containment lookup for the
// symmetric insertion direction.
//
// Grounded closely on original_source/src/lib.rs's
// find_nearest_anahashes, including its per-depth AV bound pruning and
// exact-match short circuit (SPEC_FULL.md supplemented features #1, #2).
package neighbor

import (
	"sort"

	"github.com/bastiangx/anahash/pkg/anaindex"
	"github.com/bastiangx/anahash/pkg/anavalue"
	"github.com/bastiangx/anahash/pkg/vocab"
	"github.com/charmbracelet/log"
)

// scanLimit bounds the forward linear scan within a secondary-index
// bucket once a binary-search starting point is found, per spec.md
// §4.5's "bounded linear scan forward with early termination by AV
// magnitude" guidance.
const scanLimit = 4096

// Params controls the search.
type Params struct {
	MaxAnagramDistance int
	StopAtExactMatch   bool
}

// Search runs the neighborhood search for one query and returns the
// deduplicated candidate entry ids.
func Search(queryText string, encoded []int, primes []int64, idx *anaindex.Index, store *vocab.Store, p Params, logger *log.Logger) []vocab.EntryID {
	qav := anavalue.FromClasses(encoded, primes)
	L := len(encoded)
	candidates := map[vocab.EntryID]struct{}{}

	if ids, ok := idx.Lookup(qav); ok {
		for _, id := range ids {
			candidates[id] = struct{}{}
		}
		if p.StopAtExactMatch {
			for _, id := range ids {
				if e, ok := store.Entry(id); ok && e.Text == queryText {
					if logger != nil {
						logger.Debug("neighbor: exact match short-circuit", "text", queryText)
					}
					return idSlice(candidates)
				}
			}
		}
	}

	deletions := anavalue.EnumerateDeletions(encoded, primes, p.MaxAnagramDistance)
	if logger != nil {
		logger.Debug("neighbor: enumerated deletions", "count", len(deletions), "budget", p.MaxAnagramDistance)
	}

	for _, d := range deletions {
		// Step 2: pure deletions from query to candidate.
		if d.Deleted > 0 {
			if ids, ok := idx.Lookup(d.Remaining); ok {
				for _, id := range ids {
					candidates[id] = struct{}{}
				}
			}
		}

		// Step 3: insertion direction - candidates containing this
		// deletion-derived AV, at any length from lowLen up to
		// lowLen+budgetLeft.
		lowLen := L - d.Deleted
		budgetLeft := p.MaxAnagramDistance - d.Deleted
		if budgetLeft < 0 {
			continue
		}
		hiLen := lowLen + budgetLeft

		buckets := idx.BucketRange(lowLen, hiLen)
		for length, bucket := range buckets {
			insertions := length - lowLen
			if insertions < 0 || insertions > budgetLeft {
				continue
			}
			scanBucket(bucket, d.Remaining, budgetLeft, primes, idx, candidates)
		}
	}

	if logger != nil {
		logger.Debug("neighbor: candidates found", "count", len(candidates))
	}
	return idSlice(candidates)
}

// scanBucket binary-searches bucket for the first AV >= focus, then
// scans forward (at most scanLimit entries, stopping at the first AV
// too large to qualify) admitting any AV divisible by focus whose
// complement has at most budgetLeft prime factors.
func scanBucket(bucket []anavalue.AV, focus anavalue.AV, budgetLeft int, primes []int64, idx *anaindex.Index, candidates map[vocab.EntryID]struct{}) {
	pos := sort.Search(len(bucket), func(i int) bool {
		return anavalue.Cmp(bucket[i], focus) >= 0
	})
	end := pos + scanLimit
	if end > len(bucket) {
		end = len(bucket)
	}
	// An admissible AV is focus times at most budgetLeft class primes, so
	// none exceeds focus * largestPrime^budgetLeft; the sorted scan can
	// stop at the first AV above that.
	var upper anavalue.AV
	if len(primes) > 0 {
		upper = anavalue.Mul(focus, anavalue.FromClassCounts(map[int]int{len(primes) - 1: budgetLeft}, primes))
	}
	for i := pos; i < end; i++ {
		cand := bucket[i]
		if len(primes) > 0 && anavalue.Cmp(cand, upper) > 0 {
			break
		}
		if !anavalue.DivisibleBy(cand, focus) {
			continue
		}
		complement := anavalue.ExactDiv(cand, focus)
		if complement.IsOne() {
			if ids, ok := idx.Lookup(cand); ok {
				for _, id := range ids {
					candidates[id] = struct{}{}
				}
			}
			continue
		}
		if anavalue.PrimeFactorCount(complement, primes) > budgetLeft {
			continue
		}
		if ids, ok := idx.Lookup(cand); ok {
			for _, id := range ids {
				candidates[id] = struct{}{}
			}
		}
	}
}

func idSlice(m map[vocab.EntryID]struct{}) []vocab.EntryID {
	out := make([]vocab.EntryID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}
