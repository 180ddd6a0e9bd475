// Package lm defines the language-model collaborator interface used
// by pkg/textsearch (C9). Per spec.md §1, the LM's internal
// smoothing/estimation method is explicitly out of scope; only the
// interface it must satisfy is specified here.
package lm

// Model is anything that can score a token sequence and answer
// bounded n-gram lookups, per spec.md §4.9's "LM collaborator
// interface: given a token sequence, returns a perplexity (or
// log-probability) and supports ngram lookup up to lm_order."
type Model interface {
	// LogProb returns the log-probability of the token sequence under
	// the model, using context up to Order() tokens.
	LogProb(tokens []string) float64
	// Perplexity returns the model's perplexity for the sequence.
	Perplexity(tokens []string) float64
	// Order returns the maximum n-gram order the model supports.
	Order() int
}

// NoOp is a Model that scores every sequence identically, used when no
// LM collaborator is configured - pkg/textsearch falls back to
// variant-cost-only path selection in that case.
type NoOp struct{}

func (NoOp) LogProb(tokens []string) float64    { return 0 }
func (NoOp) Perplexity(tokens []string) float64 { return 1 }
func (NoOp) Order() int                         { return 1 }
