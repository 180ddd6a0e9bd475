package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/bastiangx/anahash/pkg/batch"
	"github.com/charmbracelet/log"
)

// runQuery implements the "query" subcommand: run the per-input
// correction pipeline (spec.md §4.8) against one or more exact
// strings, either given as positional arguments or read one per line
// from stdin when none are given.
func runQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml")
	debug := fs.Bool("d", false, "enable debug logging")
	asJSON := fs.Bool("json", false, "emit JSON instead of a table")
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

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = readLines(os.Stdin)
	}

	// Every input is independent (spec.md §5), so the whole batch goes
	// through the same executor a host process would drive via "serve".
	results := batch.New(model, 0, logger).Run(inputs, params)

	for i, in := range inputs {
		matches := results[i]
		if *asJSON {
			if err := printMatchesJSON(matches); err != nil {
				log.Fatalf("anahash: %v", err)
			}
			continue
		}
		fmt.Printf("> %s\n", in)
		printMatchesTable(matches)
	}
}

// readLines reads non-empty lines from r, trimming nothing but the
// trailing newline - callers decide what whitespace means.
func readLines(f *os.File) []string {
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
