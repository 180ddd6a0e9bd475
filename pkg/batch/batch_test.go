package batch

import (
	"reflect"
	"testing"

	"github.com/bastiangx/anahash/pkg/alphabet"
	"github.com/bastiangx/anahash/pkg/anaindex"
	"github.com/bastiangx/anahash/pkg/anavalue"
	"github.com/bastiangx/anahash/pkg/variant"
	"github.com/bastiangx/anahash/pkg/vocab"
)

func testModel(t *testing.T) *variant.Model {
	t.Helper()
	classes := make([]alphabet.Class, 0, 26)
	for c := 'a'; c <= 'z'; c++ {
		classes = append(classes, alphabet.Class{Symbols: []string{string(c)}})
	}
	a := alphabet.New(classes)
	primes := anavalue.Primes(a.Size())
	store := vocab.NewStore(a, primes, vocab.FreqSum)
	for _, w := range []string{"separate", "desperate", "operate", "understand", "understood"} {
		if _, err := store.Insert(w, 1, "test", vocab.KindIndexed); err != nil {
			t.Fatal(err)
		}
	}
	store.Build()
	idx := anaindex.Build(store, nil)
	return &variant.Model{Alphabet: a, Primes: primes, Store: store, Index: idx}
}

func TestParallelEquivalence(t *testing.T) {
	model := testModel(t)
	inputs := []string{"seperate", "udnerstand", "operat", "zzz"}
	params := variant.DefaultParams()

	parallelEx := New(model, 4, nil)
	params.SingleThread = false
	parallelResults := parallelEx.Run(inputs, params)

	params.SingleThread = true
	singleEx := New(model, 1, nil)
	singleResults := singleEx.Run(inputs, params)

	if len(parallelResults) != len(singleResults) {
		t.Fatalf("length mismatch: %d vs %d", len(parallelResults), len(singleResults))
	}
	for i := range inputs {
		if !reflect.DeepEqual(parallelResults[i], singleResults[i]) {
			t.Fatalf("result mismatch for input %q:\nparallel=%+v\nsingle=%+v",
				inputs[i], parallelResults[i], singleResults[i])
		}
	}
}

func TestOrderPreserved(t *testing.T) {
	model := testModel(t)
	inputs := []string{"separate", "understand", "desperate", "operate", "understood"}
	params := variant.DefaultParams()
	ex := New(model, 4, nil)
	results := ex.Run(inputs, params)
	for i, text := range inputs {
		if len(results[i]) == 0 || results[i][0].Text != text {
			t.Fatalf("position %d: expected top match %q, got %+v", i, text, results[i])
		}
	}
}
