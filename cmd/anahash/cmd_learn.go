package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/anahash/pkg/vocab"
	"github.com/charmbracelet/log"
)

// runLearn implements the "learn" subcommand: read candidate
// misspellings (one per line) from stdin, match each against the
// loaded lexicon, and emit a clustered variant list in spec.md §6's
// "<reference>\t<ref_freq>\t<variant>\t<score>[\t<variant_freq>]..."
// format - the inverse of pkg/loader.LoadVariants, built from the
// query pipeline's own output rather than hand-curated (SPEC_FULL.md's
// supplemented variant-cluster feature put to use as a training tool).
// References that pkg/vocab.Store.Cluster joined as mutual variants
// (loaded from the "variants"/"errors" files) emit as a single merged
// row rather than one row per reference.
func runLearn(args []string) {
	fs := flag.NewFlagSet("learn", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml")
	debug := fs.Bool("d", false, "enable debug logging")
	minScore := fs.Float64("min-score", 0.5, "minimum similarity for a candidate's top match to be accepted")
	fs.Parse(args)

	logger := newLogger(*debug)
	cfg := loadConfig(*configPath)
	model, err := buildModel(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	params, err := cfg.Search.ToVariantParams()
	if err != nil {
		log.Fatalf("anahash: %v", err)
	}

	type variantHit struct {
		text  string
		score float64
	}
	byRef := map[vocab.EntryID][]variantHit{}
	refText := map[vocab.EntryID]string{}
	refFreq := map[vocab.EntryID]int{}

	for _, candidate := range readLines(os.Stdin) {
		matches := model.FindVariants(candidate, params)
		if len(matches) == 0 || matches[0].Similarity < *minScore {
			continue
		}
		top := matches[0]
		if top.Text == candidate {
			continue
		}
		byRef[top.EntryID] = append(byRef[top.EntryID], variantHit{text: candidate, score: top.Similarity})
		refText[top.EntryID] = top.Text
		if e, ok := model.Store.Entry(top.EntryID); ok {
			refFreq[top.EntryID] = e.Freq()
		}
	}

	// Fold every reference that shares a mutual-variant cluster with
	// another matched reference into one group, keyed by whichever
	// cluster member's text sorts first.
	canonicalOf := map[vocab.EntryID]vocab.EntryID{}
	for id := range byRef {
		if _, done := canonicalOf[id]; done {
			continue
		}
		group := []vocab.EntryID{id}
		for _, member := range model.Store.ClusterMembers(id) {
			if member == id {
				continue
			}
			if _, matched := byRef[member]; matched {
				group = append(group, member)
			}
		}
		sort.Slice(group, func(i, j int) bool { return refText[group[i]] < refText[group[j]] })
		canonical := group[0]
		for _, member := range group {
			canonicalOf[member] = canonical
		}
	}

	merged := map[vocab.EntryID][]variantHit{}
	mergedFreq := map[vocab.EntryID]int{}
	for id, hits := range byRef {
		canon := canonicalOf[id]
		merged[canon] = append(merged[canon], hits...)
		if refFreq[id] > mergedFreq[canon] {
			mergedFreq[canon] = refFreq[id]
		}
	}

	refs := make([]vocab.EntryID, 0, len(merged))
	for id := range merged {
		refs = append(refs, id)
	}
	sort.Slice(refs, func(i, j int) bool { return refText[refs[i]] < refText[refs[j]] })

	w := os.Stdout
	for _, id := range refs {
		hits := merged[id]
		sort.Slice(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

		var b strings.Builder
		b.WriteString(refText[id])
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(mergedFreq[id]))
		for _, h := range hits {
			b.WriteByte('\t')
			b.WriteString(h.text)
			b.WriteByte('\t')
			b.WriteString(strconv.FormatFloat(h.score, 'f', 4, 64))
		}
		fmt.Fprintln(w, b.String())
	}
}
