package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/anahash/pkg/textsearch"
	"github.com/charmbracelet/log"
)

// runSearch implements the "search" subcommand: segment running text
// into overlapping n-grams, run the query pipeline per segment, and
// report the best non-overlapping path of matches (spec.md §4.9).
func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml")
	debug := fs.Bool("d", false, "enable debug logging")
	asJSON := fs.Bool("json", false, "emit JSON instead of plain text")
	fs.Parse(args)

	logger := newLogger(*debug)
	cfg := loadConfig(*configPath)
	model, err := buildModel(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	tp, err := cfg.ToTextSearchParams()
	if err != nil {
		log.Fatalf("anahash: %v", err)
	}
	lmModel := loadLanguageModel(cfg, 2)
	rules := loadContextRules(cfg)

	text := searchInputText(fs.Args())
	_, matches := textsearch.Search(model, text, tp, rules, lmModel)

	if *asJSON {
		printSegmentsJSON(matches)
		return
	}
	for _, m := range matches {
		fmt.Printf("[%d:%d] %q\n", m.Begin, m.End, m.Text)
		printMatchesTable(m.Variants)
	}
}

func searchInputText(positional []string) string {
	if len(positional) > 0 {
		text := positional[0]
		for _, extra := range positional[1:] {
			text += " " + extra
		}
		return text
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("anahash: reading stdin: %v", err)
	}
	return string(data)
}

type segmentJSON struct {
	Begin    int         `json:"begin"`
	End      int         `json:"end"`
	Text     string      `json:"text"`
	Variants []matchJSON `json:"variants"`
}

func printSegmentsJSON(matches []textsearch.Match) {
	out := make([]segmentJSON, len(matches))
	for i, m := range matches {
		variants := make([]matchJSON, len(m.Variants))
		for j, v := range m.Variants {
			variants[j] = toMatchJSON(v)
		}
		out[i] = segmentJSON{Begin: m.Begin, End: m.End, Text: m.Text, Variants: variants}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("anahash: %v", err)
	}
}
