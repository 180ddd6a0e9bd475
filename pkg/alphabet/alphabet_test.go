package alphabet

import (
	"reflect"
	"testing"
)

func lowercaseAlphabet() *Alphabet {
	classes := make([]Class, 0, 27)
	for c := 'a'; c <= 'z'; c++ {
		classes = append(classes, Class{Symbols: []string{string(c)}})
	}
	return New(classes)
}

func TestEncodeBasic(t *testing.T) {
	a := lowercaseAlphabet()
	got := a.Encode("cab")
	want := []int{2, 0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Encode(cab) = %v, want %v", got, want)
	}
}

func TestEncodeUnknownChar(t *testing.T) {
	a := lowercaseAlphabet()
	got := a.Encode("a1b")
	if len(got) != 3 {
		t.Fatalf("expected 3 classes, got %d (%v)", len(got), got)
	}
	if got[1] != a.UnknownIndex() {
		t.Fatalf("expected unknown class for '1', got %d", got[1])
	}
}

func TestEncodeLongestMatch(t *testing.T) {
	classes := []Class{
		{Symbols: []string{"ch"}},
		{Symbols: []string{"c"}},
		{Symbols: []string{"h"}},
	}
	a := New(classes)
	got := a.Encode("ch")
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected greedy longest match for 'ch' -> class 0, got %v", got)
	}
}

func TestEncodeDeterministicPermutation(t *testing.T) {
	a := lowercaseAlphabet()
	e1 := a.Encode("cab")
	e2 := a.Encode("cab")
	if !reflect.DeepEqual(e1, e2) {
		t.Fatalf("encoding not deterministic: %v vs %v", e1, e2)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	a := lowercaseAlphabet()
	enc := a.Encode("cab")
	if got := a.Decode(enc); got != "cab" {
		t.Fatalf("Decode(Encode(cab)) = %q, want cab", got)
	}
}

func TestValidateEmptyAlphabet(t *testing.T) {
	a := &Alphabet{}
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
}
