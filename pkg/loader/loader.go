// Package loader implements the TSV file readers named in spec.md
// §6: alphabet, lexicon, variant list, confusable list, and LM n-gram
// count files. Each file loads atomically - a malformed row aborts
// that file's load without admitting any of its entries, per spec.md
// §7's data-format error class.
//
// Grounded on original_source/src/lib.rs's read_alphabet/
// read_vocabulary/read_confusablelist for exact TSV column and escape
// semantics (the "\s"/"\t"/"\n" substitution in alphabet files), and on
// the bufio line-scanning idiom used throughout the example pack for
// simple delimited text (e.g. 0xEodum-Corrector's frequency-file
// loader).
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bastiangx/anahash/pkg/alphabet"
	"github.com/bastiangx/anahash/pkg/confusable"
	"github.com/bastiangx/anahash/pkg/lm"
	"github.com/bastiangx/anahash/pkg/textsearch"
	"github.com/bastiangx/anahash/pkg/vocab"
	"github.com/charmbracelet/log"
)

// LoadError carries the file and line context of a data-format error,
// per spec.md §7 ("Rejected with location (file, line)").
type LoadError struct {
	File string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// unescape applies the alphabet file's column escapes, per
// original_source/src/lib.rs's read_alphabet.
func unescape(field string) string {
	switch field {
	case `\s`:
		return " "
	case `\t`:
		return "\t"
	case `\n`:
		return "\n"
	default:
		return field
	}
}

// LoadAlphabet reads an alphabet TSV file: each line is a class,
// tab-separated columns are equivalent symbols, declared order fixes
// prime assignment (spec.md §6). Empty lines are ignored.
func LoadAlphabet(path string) (*alphabet.Alphabet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening alphabet file: %w", err)
	}
	defer f.Close()

	var classes []alphabet.Class
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		symbols := make([]string, len(fields))
		for i, field := range fields {
			symbols[i] = unescape(field)
		}
		classes = append(classes, alphabet.Class{Symbols: symbols, Label: symbols[0]})
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{File: path, Line: lineNo, Err: err}
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("loader: alphabet file %s declares no classes", path)
	}

	a := alphabet.New(classes)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("loader: read alphabet of %d classes from %s", len(classes), path)
	return a, nil
}

// LexiconParams controls which TSV columns a lexicon's text and
// frequency come from, per spec.md §6 ("configurable text column and
// optional frequency column"), mirroring original_source's VocabParams.
type LexiconParams struct {
	TextColumn int
	FreqColumn int // -1 means "no frequency column, default to 1"
}

// DefaultLexiconParams matches original_source/src/vocab.rs's
// VocabParams::default (text in column 0, no frequency column).
func DefaultLexiconParams() LexiconParams {
	return LexiconParams{TextColumn: 0, FreqColumn: -1}
}

// LoadLexicon reads a lexicon TSV file into store under lexiconTag,
// inserting every row as kind. Duplicate text within or across
// lexicons merges per the store's configured FreqHandling (spec.md
// §4.3). The whole file is parsed before any row is inserted, so a
// malformed row rejects the file atomically (spec.md §7) without a
// partial vocabulary admission.
func LoadLexicon(store *vocab.Store, path string, lexiconTag string, kind vocab.Kind, params LexiconParams) error {
	type row struct {
		text string
		freq int
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: opening lexicon file: %w", err)
	}
	defer f.Close()

	var rows []row
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if params.TextColumn >= len(fields) {
			return &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("missing text column %d", params.TextColumn)}
		}
		text := fields[params.TextColumn]
		freq := 1
		if params.FreqColumn >= 0 {
			if params.FreqColumn >= len(fields) {
				return &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("missing frequency column %d", params.FreqColumn)}
			}
			freq, err = strconv.Atoi(fields[params.FreqColumn])
			if err != nil {
				return &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("invalid frequency %q: %w", fields[params.FreqColumn], err)}
			}
		}
		rows = append(rows, row{text: text, freq: freq})
	}
	if err := scanner.Err(); err != nil {
		return &LoadError{File: path, Line: lineNo, Err: err}
	}

	for _, r := range rows {
		if _, err := store.Insert(r.text, r.freq, lexiconTag, kind); err != nil {
			return fmt.Errorf("loader: inserting %q from %s: %w", r.text, path, err)
		}
	}
	log.Debugf("loader: read lexicon of %d rows from %s (tag=%s)", len(rows), path, lexiconTag)
	return nil
}

// LoadVariants reads a variant list TSV file per spec.md §6:
// "<reference>\t[<ref_freq>\t]<variant>\t<score>[\t<variant_freq>]…".
// References are inserted (or reused if already present) as Indexed
// entries; each variant is inserted under kind (KindTransparent when
// loaded via the "errors" option, KindIndexed via "variants") and
// linked to the reference with MarkVariant.
func LoadVariants(store *vocab.Store, path string, lexiconTag string, kind vocab.Kind) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: opening variant file: %w", err)
	}
	defer f.Close()

	type variantRow struct {
		refText  string
		refFreq  int
		variants []struct {
			text string
			freq int
			w    float64
		}
	}
	var rows []variantRow

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("too few columns (%d)", len(fields))}
		}

		i := 0
		refText := fields[i]
		i++
		refFreq := 1
		// A ref_freq column is present only when the next field is
		// purely numeric and there's still room for variant/score
		// pairs after it.
		if i < len(fields) {
			if v, err := strconv.Atoi(fields[i]); err == nil && (len(fields)-i-1)%2 == 0 {
				refFreq = v
				i++
			}
		}

		row := variantRow{refText: refText, refFreq: refFreq}
		for i < len(fields) {
			if i+1 >= len(fields) {
				return &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("variant %q has no score column", fields[i])}
			}
			vText := fields[i]
			score, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("invalid score %q: %w", fields[i+1], err)}
			}
			i += 2
			vFreq := 1
			if i < len(fields) {
				if f, err := strconv.Atoi(fields[i]); err == nil {
					vFreq = f
					i++
				}
			}
			row.variants = append(row.variants, struct {
				text string
				freq int
				w    float64
			}{vText, vFreq, score})
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return &LoadError{File: path, Line: lineNo, Err: err}
	}

	refIDs := make(map[string]vocab.EntryID, len(rows))
	variantTextsOf := make(map[string]map[string]bool, len(rows))

	for _, r := range rows {
		refID, err := store.Insert(r.refText, r.refFreq, lexiconTag, vocab.KindIndexed)
		if err != nil {
			return fmt.Errorf("loader: inserting reference %q from %s: %w", r.refText, path, err)
		}
		refIDs[r.refText] = refID
		texts := make(map[string]bool, len(r.variants))
		for _, v := range r.variants {
			vID, err := store.Insert(v.text, v.freq, lexiconTag, kind)
			if err != nil {
				return fmt.Errorf("loader: inserting variant %q from %s: %w", v.text, path, err)
			}
			if err := store.MarkVariant(vID, refID, v.w); err != nil {
				return fmt.Errorf("loader: linking variant %q to %q: %w", v.text, r.refText, err)
			}
			texts[v.text] = true
		}
		variantTextsOf[r.refText] = texts
	}

	// Two references are mutual variants, per original_source's
	// VariantClusterId, when each lists the other as a variant in this
	// same file - cluster their reference entries so ClusterMembers on
	// either one returns both (spec.md §4.3 names Variant-of as one-directional;
	// this resolves the reciprocal case the distillation left implicit).
	clustered := map[string]bool{}
	for _, r := range rows {
		for text := range variantTextsOf[r.refText] {
			if !variantTextsOf[text][r.refText] {
				continue
			}
			key, rkey := r.refText+"\x00"+text, text+"\x00"+r.refText
			if clustered[key] || clustered[rkey] {
				continue
			}
			if err := store.Cluster(refIDs[r.refText], refIDs[text]); err != nil {
				return fmt.Errorf("loader: clustering mutual references %q/%q: %w", r.refText, text, err)
			}
			clustered[key] = true
		}
	}

	log.Debugf("loader: read %d variant rows from %s", len(rows), path)
	return nil
}

// LoadConfusables reads a confusable list TSV file per spec.md §6:
// "<edit_script_pattern>\t<weight>", weight defaulting to 1.0 when
// omitted, per original_source/src/lib.rs's read_confusablelist.
func LoadConfusables(path string) ([]confusable.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening confusable file: %w", err)
	}
	defer f.Close()

	var patterns []confusable.Pattern
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		weight := 1.0
		if len(fields) >= 2 {
			weight, err = strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("invalid weight %q: %w", fields[1], err)}
			}
		}
		p, err := confusable.ParsePattern(fields[0])
		if err != nil {
			return nil, &LoadError{File: path, Line: lineNo, Err: err}
		}
		p.Weight = weight
		patterns = append(patterns, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{File: path, Line: lineNo, Err: err}
	}
	log.Debugf("loader: read %d confusable patterns from %s", len(patterns), path)
	return patterns, nil
}

// LoadContextRules reads a context rule file per SPEC_FULL.md's
// supplemented feature #6: "<before>\t<after>\t<score>[\t<tag>\t<tag_offset>]",
// where before/after are comma-separated token lists ("-" or an empty
// field means no constraint on that side). Grounded on
// original_source/src/search.rs's ContextRule table, which anchors a
// score nudge to the tokens immediately surrounding a matched span.
func LoadContextRules(path string) ([]textsearch.ContextRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening context rule file: %w", err)
	}
	defer f.Close()

	var rules []textsearch.ContextRule
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("too few columns (%d)", len(fields))}
		}
		score, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("invalid score %q: %w", fields[2], err)}
		}
		r := textsearch.ContextRule{
			Before: splitTokenList(fields[0]),
			After:  splitTokenList(fields[1]),
			Score:  score,
		}
		if len(fields) >= 4 {
			r.Tag = fields[3]
		}
		if len(fields) >= 5 {
			offset, err := strconv.Atoi(fields[4])
			if err != nil {
				return nil, &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("invalid tag_offset %q: %w", fields[4], err)}
			}
			r.TagOffset = offset
		}
		rules = append(rules, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{File: path, Line: lineNo, Err: err}
	}
	log.Debugf("loader: read %d context rules from %s", len(rules), path)
	return rules, nil
}

func splitTokenList(field string) []string {
	if field == "" || field == "-" {
		return nil
	}
	return strings.Split(field, ",")
}

// LoadLM reads an n-gram count file per spec.md §6:
// "<ngram>\t<count>", tokens space-separated within the ngram.
func LoadLM(path string, order int) (*lm.NgramModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: opening LM file: %w", err)
	}
	defer f.Close()

	model := lm.NewNgramModel(order)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	count := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("expected 2 columns, got %d", len(fields))}
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, &LoadError{File: path, Line: lineNo, Err: fmt.Errorf("invalid count %q: %w", fields[1], err)}
		}
		tokens := strings.Split(fields[0], " ")
		model.Add(tokens, n)
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{File: path, Line: lineNo, Err: err}
	}
	log.Debugf("loader: read %d ngram rows from %s", count, path)
	return model, nil
}
