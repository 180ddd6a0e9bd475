package neighbor

import (
	"testing"

	"github.com/bastiangx/anahash/pkg/alphabet"
	"github.com/bastiangx/anahash/pkg/anaindex"
	"github.com/bastiangx/anahash/pkg/anavalue"
	"github.com/bastiangx/anahash/pkg/vocab"
)

func buildFixture(t *testing.T) (*alphabet.Alphabet, []int64, *vocab.Store, *anaindex.Index) {
	t.Helper()
	classes := []alphabet.Class{
		{Symbols: []string{"a"}, Label: "a"},
		{Symbols: []string{"b"}, Label: "b"},
		{Symbols: []string{"c"}, Label: "c"},
		{Symbols: []string{"d"}, Label: "d"},
	}
	a := alphabet.New(classes)
	primes := anavalue.Primes(a.Size())
	store := vocab.NewStore(a, primes, vocab.FreqSum)
	store.Insert("abc", 10, "main", vocab.KindIndexed) // exact + anagram target
	store.Insert("bca", 5, "main", vocab.KindIndexed)  // anagram of abc
	store.Insert("abcd", 1, "main", vocab.KindIndexed) // one insertion away from abc
	store.Insert("ab", 1, "main", vocab.KindIndexed)   // one deletion away from abc
	store.Build()
	idx := anaindex.Build(store, nil)
	return a, primes, store, idx
}

func TestSearchFindsExactAndAnagram(t *testing.T) {
	a, primes, store, idx := buildFixture(t)
	encoded := a.Encode("abc")
	ids := Search("abc", encoded, primes, idx, store, Params{MaxAnagramDistance: 0}, nil)

	texts := textsOf(store, ids)
	if !texts["abc"] || !texts["bca"] {
		t.Errorf("Search(abc, budget=0) = %v, want abc and its anagram bca", texts)
	}
}

func TestSearchBudgetOneFindsInsertion(t *testing.T) {
	a, primes, store, idx := buildFixture(t)
	encoded := a.Encode("abc")
	ids := Search("abc", encoded, primes, idx, store, Params{MaxAnagramDistance: 1}, nil)

	texts := textsOf(store, ids)
	if !texts["abcd"] {
		t.Errorf("Search(abc, budget=1) = %v, want abcd within one insertion", texts)
	}
}

func TestSearchBudgetZeroExcludesFartherCandidates(t *testing.T) {
	a, primes, store, idx := buildFixture(t)
	encoded := a.Encode("abc")
	ids := Search("abc", encoded, primes, idx, store, Params{MaxAnagramDistance: 0}, nil)

	texts := textsOf(store, ids)
	if texts["abcd"] || texts["ab"] {
		t.Errorf("Search(abc, budget=0) = %v, should exclude distance>=1 candidates", texts)
	}
}

func TestSearchStopAtExactMatchShortCircuits(t *testing.T) {
	a, primes, store, idx := buildFixture(t)
	encoded := a.Encode("abc")
	ids := Search("abc", encoded, primes, idx, store, Params{MaxAnagramDistance: 1, StopAtExactMatch: true}, nil)

	texts := textsOf(store, ids)
	if len(texts) != 2 || !texts["abc"] || !texts["bca"] {
		t.Errorf("Search with StopAtExactMatch = %v, want only the exact-AV bucket {abc, bca}", texts)
	}
}

func textsOf(store *vocab.Store, ids []vocab.EntryID) map[string]bool {
	out := map[string]bool{}
	for _, id := range ids {
		if e, ok := store.Entry(id); ok {
			out[e.Text] = true
		}
	}
	return out
}
