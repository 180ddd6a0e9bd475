package confusable

import (
	"fmt"
	"strings"
)

// PatternOp is one element of a confusable pattern: a context match
// (Identity, possibly with alternatives), an insertion, or a deletion,
// each possibly carrying several acceptable alternatives.
type PatternOp struct {
	Kind    OpKind
	Options []string
}

// Pattern is a weighted edit-script template, per spec.md §4.7/§6.
// AnchorStart/AnchorEnd require the pattern to align with the
// beginning/end of the edit script being tested.
type Pattern struct {
	Ops         []PatternOp
	AnchorStart bool
	AnchorEnd   bool
	Weight      float64
}

// ParsePattern parses the TSV pattern-language form described in
// spec.md §6: "=[x|y]" context match, "-[x]" deletion, "+[x]"
// insertion, with optional leading "^" and trailing "$" anchors.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	rest := s
	if strings.HasPrefix(rest, "^") {
		p.AnchorStart = true
		rest = rest[1:]
	}
	if strings.HasSuffix(rest, "$") {
		p.AnchorEnd = true
		rest = rest[:len(rest)-1]
	}

	for len(rest) > 0 {
		var kind OpKind
		switch rest[0] {
		case '=':
			kind = OpIdentity
		case '-':
			kind = OpDeletion
		case '+':
			kind = OpInsertion
		default:
			return Pattern{}, fmt.Errorf("confusable: unexpected token at %q", rest)
		}
		if len(rest) < 2 || rest[1] != '[' {
			return Pattern{}, fmt.Errorf("confusable: expected '[' after operator in %q", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Pattern{}, fmt.Errorf("confusable: unterminated '[' in %q", rest)
		}
		body := rest[2:end]
		opts := strings.Split(body, "|")
		p.Ops = append(p.Ops, PatternOp{Kind: kind, Options: opts})
		rest = rest[end+1:]
	}
	if len(p.Ops) == 0 {
		return Pattern{}, fmt.Errorf("confusable: empty pattern")
	}
	return p, nil
}

// FoundIn reports whether the pattern matches a contiguous sub-script
// of ref. Ported from original_source/src/confusables.rs's found_in:
// identity anchors at the script boundary match via ends_with/
// starts_with against the reference identity run rather than requiring
// exact equality (SPEC_FULL.md supplemented feature #4), letting a
// short confusable context match a longer shared run.
func (p Pattern) FoundIn(ref Script) bool {
	l := len(p.Ops)
	matches := 0
	start := -1
	for i, refOp := range ref.Ops {
		patOp := p.Ops[matches]
		if !opMatches(patOp, refOp, matches == 0, matches == l-1, l) {
			matches = 0
			start = -1
			continue
		}
		if matches == 0 {
			start = i
		}
		matches++
		if matches == l {
			if p.AnchorStart && start != 0 {
				matches = 0
				start = -1
				continue
			}
			if p.AnchorEnd && i != len(ref.Ops)-1 {
				matches = 0
				start = -1
				continue
			}
			return true
		}
	}
	return false
}

func opMatches(pat PatternOp, ref Op, isFirst, isLast bool, patLen int) bool {
	switch {
	case pat.Kind == OpInsertion && ref.Kind == OpInsertion,
		pat.Kind == OpDeletion && ref.Kind == OpDeletion:
		return containsOption(pat.Options, ref.Text)
	case pat.Kind == OpIdentity && ref.Kind == OpIdentity:
		for _, opt := range pat.Options {
			if patLen == 1 {
				if opt == ref.Text {
					return true
				}
				continue
			}
			if isFirst && strings.HasSuffix(ref.Text, opt) {
				return true
			}
			if isLast && strings.HasPrefix(ref.Text, opt) {
				return true
			}
			if !isFirst && !isLast && opt == ref.Text {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func containsOption(opts []string, s string) bool {
	for _, o := range opts {
		if o == s {
			return true
		}
	}
	return false
}

// Rescore applies every pattern in patterns whose FoundIn(script) is
// true, multiplying their weights into the running scale factor, per
// spec.md §4.7.
func Rescore(script Script, patterns []Pattern) float64 {
	scale := 1.0
	for _, p := range patterns {
		if p.FoundIn(script) {
			scale *= p.Weight
		}
	}
	return scale
}
