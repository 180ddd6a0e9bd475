package vocab

import (
	"testing"

	"github.com/bastiangx/anahash/pkg/alphabet"
	"github.com/bastiangx/anahash/pkg/anavalue"
)

func newStore(t *testing.T, fh FreqHandling) *Store {
	t.Helper()
	classes := []alphabet.Class{
		{Symbols: []string{"a"}, Label: "a"},
		{Symbols: []string{"b"}, Label: "b"},
		{Symbols: []string{"c"}, Label: "c"},
	}
	a := alphabet.New(classes)
	primes := anavalue.Primes(a.Size())
	return NewStore(a, primes, fh)
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	s := newStore(t, FreqSum)
	id1, err := s.Insert("abc", 10, "main", KindIndexed)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	id2, err := s.Insert("cab", 5, "main", KindIndexed)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id1 != 0 || id2 != 1 {
		t.Errorf("ids = %d, %d, want 0, 1", id1, id2)
	}
}

func TestInsertMergesFreqSum(t *testing.T) {
	s := newStore(t, FreqSum)
	id1, _ := s.Insert("abc", 10, "main", KindIndexed)
	id2, _ := s.Insert("abc", 5, "main", KindIndexed)
	if id1 != id2 {
		t.Fatalf("re-inserting same text should return the same id")
	}
	e, _ := s.Entry(id1)
	if e.Freq() != 15 {
		t.Errorf("Freq() = %d, want 15 (summed)", e.Freq())
	}
}

func TestInsertMergesAcrossTags(t *testing.T) {
	s := newStore(t, FreqSum)
	id, _ := s.Insert("abc", 10, "main", KindIndexed)
	s.Insert("abc", 3, "extra", KindIndexed)
	e, _ := s.Entry(id)
	if e.Freq() != 13 {
		t.Errorf("Freq() = %d, want 13 (summed across tags)", e.Freq())
	}
}

func TestInsertAfterBuildFails(t *testing.T) {
	s := newStore(t, FreqSum)
	s.Build()
	if _, err := s.Insert("abc", 1, "main", KindIndexed); err == nil {
		t.Fatal("expected error inserting after Build()")
	}
}

func TestInsertEmptyTextRejected(t *testing.T) {
	s := newStore(t, FreqSum)
	if _, err := s.Insert("", 1, "main", KindIndexed); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestResolveDirectEntry(t *testing.T) {
	s := newStore(t, FreqSum)
	id, _ := s.Insert("abc", 1, "main", KindIndexed)
	final, via, ok := s.Resolve(id)
	if !ok || final.ID != id || via != "" {
		t.Errorf("Resolve(direct) = %v, %q, %v", final, via, ok)
	}
}

func TestResolveTransparentVariantAnnotatesVia(t *testing.T) {
	s := newStore(t, FreqSum)
	ref, _ := s.Insert("abc", 1, "main", KindIndexed)
	variant, _ := s.Insert("acb", 1, "errors", KindTransparent)
	if err := s.MarkVariant(variant, ref, 0.9); err != nil {
		t.Fatalf("MarkVariant: %v", err)
	}
	final, via, ok := s.Resolve(variant)
	if !ok || final.ID != ref || via != "acb" {
		t.Errorf("Resolve(transparent) = %v, via=%q, ok=%v, want ref/acb/true", final, via, ok)
	}
}

func TestResolveIndexedVariantNoVia(t *testing.T) {
	s := newStore(t, FreqSum)
	ref, _ := s.Insert("abc", 1, "main", KindIndexed)
	variant, _ := s.Insert("bac", 1, "variants", KindIndexed)
	s.MarkVariant(variant, ref, 0.9)
	_, via, ok := s.Resolve(variant)
	if !ok || via != "" {
		t.Errorf("Resolve(indexed variant) via=%q, want empty (only transparent annotates)", via)
	}
}

func TestMarkVariantUnknownRefFails(t *testing.T) {
	s := newStore(t, FreqSum)
	variant, _ := s.Insert("abc", 1, "main", KindIndexed)
	if err := s.MarkVariant(variant, EntryID(99), 1); err == nil {
		t.Fatal("expected error marking variant against unknown reference")
	}
}

func TestClusterSharesMembership(t *testing.T) {
	s := newStore(t, FreqSum)
	a, _ := s.Insert("abc", 1, "main", KindIndexed)
	b, _ := s.Insert("bac", 1, "main", KindIndexed)
	if err := s.Cluster(a, b); err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	members := s.ClusterMembers(a)
	if len(members) != 2 {
		t.Fatalf("ClusterMembers = %v, want 2 members", members)
	}
}
