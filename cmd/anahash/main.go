/*
Package main implements the anahash command line application.

anahash is the reference CLI driver for the anagram-hashing fuzzy
lookup engine: it loads an alphabet, one or more lexicons, and the
optional variant/confusable/LM files named in a TOML config, builds
the in-memory model once, and then runs one of four subcommands
against it.

# Usage

Correct a single piece of input:

	anahash query "seperate"

Find and correct misspellings in running text:

	anahash search "I reccomend the seperate approach"

Dump the built primary index (AV -> entries), for inspection:

	anahash index

Emit a clustered variant list from a wordlist of likely misspellings,
scored against the loaded lexicon:

	anahash learn < candidates.txt

Drive the model as a batch request/response service over stdin/stdout,
for a host process (spec.md's out-of-core-scope host binding, built
here anyway since it only costs wiring an existing codec):

	anahash serve

# Configuration

Paths and search parameters are read from a TOML file, created with
defaults on first run if missing:

	[paths]
	alphabet = "alphabet.tsv"
	lexicons = ["main=lexicon.tsv"]

	[search]
	max_anagram_distance = "3"
	max_matches = 20

See pkg/config for the full set of keys.
*/
package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/anahash/internal/logger"
	"github.com/bastiangx/anahash/internal/utils"
	"github.com/bastiangx/anahash/pkg/config"
	"github.com/charmbracelet/log"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	switch sub {
	case "query":
		runQuery(args)
	case "search":
		runSearch(args)
	case "index":
		runIndex(args)
	case "learn":
		runLearn(args)
	case "serve":
		runServe(args)
	case "-h", "-help", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "anahash: unknown subcommand %q\n", sub)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: anahash <query|search|index|learn|serve> [flags]")
	fmt.Fprintln(os.Stderr, "Run 'anahash <subcommand> -h' for subcommand flags.")
}

// newLogger builds the CLI's logger, warn-level by default and debug
// when -d is passed, mirroring the teacher's debug-mode switch.
func newLogger(debug bool) *log.Logger {
	if debug {
		return logger.Debug("anahash", true)
	}
	l := logger.Default("anahash")
	l.SetLevel(log.WarnLevel)
	return l
}

// loadConfig resolves config with the usual custom/default/builtin
// priority chain.
func loadConfig(customPath string) *config.Config {
	cfg, path, err := config.LoadConfigWithPriority(customPath)
	if err != nil {
		log.Fatalf("anahash: loading config: %v", err)
	}
	if path != "" {
		log.Debugf("anahash: using config at %s", utils.GetAbsolutePath(path))
	}
	return cfg
}
