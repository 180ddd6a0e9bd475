// Package anaindex implements the primary and secondary indices (C4)
// built once over a vocabulary store and thereafter read-only.
package anaindex

import (
	"sort"

	"github.com/bastiangx/anahash/pkg/anavalue"
	"github.com/bastiangx/anahash/pkg/vocab"
	"github.com/charmbracelet/log"
)

// Index holds the primary (AV -> entry ids) and secondary
// (char_len -> sorted AVs) structures. Immutable once Build returns;
// safe to share read-only across goroutines thereafter.
type Index struct {
	primary   map[string][]vocab.EntryID
	keyToAV   map[string]anavalue.AV
	secondary map[int][]anavalue.AV
}

// Build runs the two-phase construction described in spec.md §4.4:
// phase 1 computes AV/char_len for each Indexed or Transparent entry
// and appends to both structures; phase 2 sorts each secondary bucket
// ascending. Mirrors original_source/src/lib.rs's build() progress
// logging, routed through the supplied logger instead of eprintln!.
func Build(store *vocab.Store, logger *log.Logger) *Index {
	idx := &Index{
		primary:   make(map[string][]vocab.EntryID),
		keyToAV:   make(map[string]anavalue.AV),
		secondary: make(map[int][]anavalue.AV),
	}

	seen := map[int]bool{} // char_len buckets touched
	count := 0
	for _, e := range store.Iter() {
		if e.Kind == vocab.KindLMOnly {
			continue
		}
		key := e.AV.Key()
		idx.primary[key] = append(idx.primary[key], e.ID)
		idx.keyToAV[key] = e.AV
		if _, exists := seenAV(idx.secondary[e.CharLen], e.AV); !exists {
			idx.secondary[e.CharLen] = append(idx.secondary[e.CharLen], e.AV)
		}
		seen[e.CharLen] = true
		count++
	}

	for l := range idx.secondary {
		bucket := idx.secondary[l]
		sort.Slice(bucket, func(i, j int) bool { return anavalue.Cmp(bucket[i], bucket[j]) < 0 })
		idx.secondary[l] = bucket
	}

	if logger != nil {
		logger.Info("index built", "entries", count, "buckets", len(idx.secondary))
	}
	return idx
}

func seenAV(bucket []anavalue.AV, av anavalue.AV) (int, bool) {
	for i, b := range bucket {
		if anavalue.Eq(b, av) {
			return i, true
		}
	}
	return -1, false
}

// Lookup returns the entry ids sharing the given AV, if any.
func (idx *Index) Lookup(av anavalue.AV) ([]vocab.EntryID, bool) {
	ids, ok := idx.primary[av.Key()]
	return ids, ok
}

// Bucket returns the sorted AV slice for a given character length.
// The returned slice must not be mutated.
func (idx *Index) Bucket(charLen int) []anavalue.AV {
	return idx.secondary[charLen]
}

// BucketRange returns all (charLen, bucket) pairs for charLen in
// [lo, hi], used by the neighborhood search to scan insertion-direction
// candidates (spec.md §4.5 step 3).
func (idx *Index) BucketRange(lo, hi int) map[int][]anavalue.AV {
	out := make(map[int][]anavalue.AV)
	for l := lo; l <= hi; l++ {
		if b, ok := idx.secondary[l]; ok {
			out[l] = b
		}
	}
	return out
}

// CharLens returns the set of character lengths with a non-empty
// secondary bucket, ascending - used to walk the whole index (e.g. for
// a dump/inspection tool) without reaching into private fields.
func (idx *Index) CharLens() []int {
	lens := make([]int, 0, len(idx.secondary))
	for l := range idx.secondary {
		lens = append(lens, l)
	}
	sort.Ints(lens)
	return lens
}

// EntryCount returns the number of distinct entry ids indexed.
func (idx *Index) EntryCount() int {
	total := 0
	for _, ids := range idx.primary {
		total += len(ids)
	}
	return total
}
