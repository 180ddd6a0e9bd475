package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// runIndex implements the "index" subcommand: build the model and
// dump the primary index (AV -> entries), grouped by character
// length the way the secondary index organizes it (spec.md §4.4).
func runIndex(args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
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

	type bucketEntry struct {
		AV    string   `json:"av"`
		Texts []string `json:"texts"`
	}
	type lenGroup struct {
		CharLen int           `json:"char_len"`
		Buckets []bucketEntry `json:"buckets"`
	}

	var groups []lenGroup
	for _, l := range model.Index.CharLens() {
		g := lenGroup{CharLen: l}
		for _, av := range model.Index.Bucket(l) {
			ids, _ := model.Index.Lookup(av)
			texts := make([]string, 0, len(ids))
			for _, id := range ids {
				if e, ok := model.Store.Entry(id); ok {
					texts = append(texts, e.Text)
				}
			}
			g.Buckets = append(g.Buckets, bucketEntry{AV: av.String(), Texts: texts})
		}
		groups = append(groups, g)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(groups); err != nil {
			log.Fatalf("anahash: %v", err)
		}
		return
	}
	for _, g := range groups {
		fmt.Printf("len=%d\n", g.CharLen)
		for _, b := range g.Buckets {
			fmt.Printf("  %s\t%s\n", b.AV, strings.Join(b.Texts, ", "))
		}
	}
}
