// Package alphabet implements the class-based character encoder (C1).
//
// An alphabet is an ordered list of classes, each a set of equivalent
// Unicode strings. Class index assignment is order-significant: class i
// is later assigned the i-th prime by pkg/anavalue, so placing frequent
// characters first keeps anagram values small.
package alphabet

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// unknownLabel is what ClassLabel returns for a class that has neither
// symbols nor a label of its own.
const unknownLabel = "\x00unknown\x00"

// Class is one equivalence class: a set of strings treated as identical
// for encoding purposes, plus a human-readable label used by Decode.
type Class struct {
	Symbols []string
	Label   string
}

// Alphabet is an ordered, immutable-after-build list of classes.
type Alphabet struct {
	classes  []Class
	byLength [][]entry // bucketed by symbol length, longest first, for greedy scan
	unknown  int       // index of the unknown class
}

type entry struct {
	symbol string
	class  int
}

// New builds an Alphabet from ordered classes. The first class with
// empty Symbols is taken as the unknown class; if there is none, one
// labelled "unknown" is appended at the next free index.
func New(classes []Class) *Alphabet {
	a := &Alphabet{classes: append([]Class(nil), classes...)}

	unknownIdx := -1
	for i, c := range a.classes {
		if len(c.Symbols) == 0 {
			unknownIdx = i
			break
		}
	}
	if unknownIdx == -1 {
		a.classes = append(a.classes, Class{Label: "unknown"})
		unknownIdx = len(a.classes) - 1
	}
	a.unknown = unknownIdx

	maxLen := 0
	for _, c := range a.classes {
		for _, s := range c.Symbols {
			if n := utf8.RuneCountInString(s); n > maxLen {
				maxLen = n
			}
		}
	}
	a.byLength = make([][]entry, maxLen+1)
	for ci, c := range a.classes {
		for _, s := range c.Symbols {
			n := utf8.RuneCountInString(s)
			a.byLength[n] = append(a.byLength[n], entry{symbol: s, class: ci})
		}
	}
	return a
}

// Size returns the number of classes, including the unknown class.
func (a *Alphabet) Size() int { return len(a.classes) }

// UnknownIndex returns the class index used for unrecognized input.
func (a *Alphabet) UnknownIndex() int { return a.unknown }

// ClassLabel returns a representative string for a class index, used
// for decoding/debug output. Returns the first declared symbol, or the
// label if the class has none (the unknown class).
func (a *Alphabet) ClassLabel(idx int) string {
	if idx < 0 || idx >= len(a.classes) {
		return ""
	}
	c := a.classes[idx]
	if len(c.Symbols) > 0 {
		return c.Symbols[0]
	}
	if c.Label != "" {
		return c.Label
	}
	return unknownLabel
}

// Encode maps s to a sequence of class indices using greedy
// longest-match scanning, left to right. At each position, the scan
// tries the longest symbol lengths first; the first match in
// declaration order at that length wins. Unmatched runes emit the
// unknown class and advance by one rune.
func (a *Alphabet) Encode(s string) []int {
	var out []int
	runes := []rune(s)
	n := len(runes)
	maxLen := len(a.byLength) - 1

	for i := 0; i < n; {
		matched := false
		upper := maxLen
		if rem := n - i; upper > rem {
			upper = rem
		}
		for l := upper; l >= 1 && !matched; l-- {
			if l >= len(a.byLength) {
				continue
			}
			cand := string(runes[i : i+l])
			for _, e := range a.byLength[l] {
				if e.symbol == cand {
					out = append(out, e.class)
					i += l
					matched = true
					break
				}
			}
		}
		if !matched {
			out = append(out, a.unknown)
			i++
		}
	}
	return out
}

// Decode renders a class-index sequence back to its canonical
// representative string, joining each class's first declared symbol.
// Round-tripping Encode then Decode is idempotent on inputs composed
// entirely of canonical (first-listed) class symbols.
func (a *Alphabet) Decode(indices []int) string {
	var b strings.Builder
	for _, idx := range indices {
		b.WriteString(a.ClassLabel(idx))
	}
	return b.String()
}

// Validate reports a configuration error if the alphabet declares no
// classes at all - used at load time per the
// configuration-error class of spec.md's error model.
func (a *Alphabet) Validate() error {
	if len(a.classes) == 0 {
		return fmt.Errorf("alphabet: no classes declared")
	}
	return nil
}
