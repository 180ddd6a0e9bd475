package lm

import (
	"math"
	"testing"
)

func TestNoOpIsWellFormed(t *testing.T) {
	var m Model = NoOp{}
	if m.LogProb([]string{"x"}) != 0 {
		t.Error("NoOp.LogProb should be 0")
	}
	if m.Perplexity([]string{"x"}) != 1 {
		t.Error("NoOp.Perplexity should be 1")
	}
}

func TestNgramModelOrderTracksLongestAdd(t *testing.T) {
	m := NewNgramModel(1)
	m.Add([]string{BOS, "the", "cat"}, 5)
	if m.Order() != 3 {
		t.Errorf("Order() = %d, want 3 after adding a trigram", m.Order())
	}
}

func TestNgramModelLogProbSeenVsUnseen(t *testing.T) {
	m := NewNgramModel(2)
	m.Add([]string{BOS, "the"}, 10)
	m.Add([]string{"the", "cat"}, 10)
	m.Add([]string{"cat", EOS}, 10)
	m.Add([]string{"the"}, 10)
	m.Add([]string{"cat"}, 10)

	seen := m.LogProb([]string{"the", "cat"})
	unseen := m.LogProb([]string{"dog", "house"})
	if seen <= unseen {
		t.Errorf("LogProb(seen)=%v should exceed LogProb(unseen)=%v", seen, unseen)
	}
}

func TestNgramModelPerplexityFinite(t *testing.T) {
	m := NewNgramModel(2)
	m.Add([]string{BOS, "the"}, 10)
	m.Add([]string{"the", "cat"}, 10)
	p := m.Perplexity([]string{"the", "cat"})
	if math.IsInf(p, 0) || math.IsNaN(p) {
		t.Errorf("Perplexity() = %v, want a finite value", p)
	}
}

func TestNgramModelEmptyTokensZeroLogProb(t *testing.T) {
	m := NewNgramModel(2)
	if m.LogProb(nil) != 0 {
		t.Error("LogProb(nil) should be 0")
	}
}
