package main

import (
	"bufio"
	"flag"
	"io"
	"os"
	"time"

	"github.com/bastiangx/anahash/pkg/batch"
	"github.com/bastiangx/anahash/pkg/ipc"
	"github.com/bastiangx/anahash/pkg/textsearch"
	"github.com/charmbracelet/log"
)

// runServe implements the "serve" subcommand: a long-lived process
// that reads length-prefixed msgpack BatchRequest/TextSearchRequest
// frames from stdin and writes the matching response frame to stdout,
// for a host process to drive (pkg/ipc, C10's process-boundary form).
// Each frame is decoded once into rawRequest; a request with a
// non-empty Text field and no Queries is treated as a text search,
// anything else as a batch. A frame's parameter payload and offset flag
// are not read: every request runs with the configured parameters.
func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config.toml")
	debug := fs.Bool("d", false, "enable debug logging")
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
	tp, err := cfg.ToTextSearchParams()
	if err != nil {
		log.Fatalf("anahash: %v", err)
	}
	lmModel := loadLanguageModel(cfg, 2)
	rules := loadContextRules(cfg)
	executor := batch.New(model, 0, logger)

	logger.Info("serving batch requests on stdin/stdout")
	r := bufio.NewReader(os.Stdin)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for {
		var req rawRequest
		if err := ipc.ReadFrame(r, &req); err != nil {
			if err == io.EOF {
				return
			}
			logger.Errorf("serve: reading frame: %v", err)
			return
		}

		start := time.Now()
		if req.Text != "" && len(req.Queries) == 0 {
			_, matches := textsearch.Search(model, req.Text, tp, rules, lmModel)
			segments := make([]ipc.SegmentPayload, len(matches))
			for i, m := range matches {
				segments[i] = ipc.ToSegmentPayload(m, req.Text, tp.UnicodeOffsets)
			}
			resp := ipc.TextSearchResponse{ID: req.ID, Segments: segments, TimeTaken: time.Since(start).Microseconds()}
			if err := ipc.WriteFrame(w, resp); err != nil {
				logger.Errorf("serve: writing frame: %v", err)
				return
			}
		} else {
			matchLists := executor.Run(req.Queries, params)
			results := make([][]ipc.MatchPayload, len(matchLists))
			for i, matches := range matchLists {
				results[i] = ipc.ToMatchPayloads(matches)
			}
			resp := ipc.BatchResponse{ID: req.ID, Results: results, TimeTaken: time.Since(start).Microseconds()}
			if err := ipc.WriteFrame(w, resp); err != nil {
				logger.Errorf("serve: writing frame: %v", err)
				return
			}
		}
		w.Flush()
	}
}

// rawRequest merges BatchRequest and TextSearchRequest's wire fields
// so a single frame read can dispatch on which ones are populated,
// rather than buffering and re-decoding twice.
type rawRequest struct {
	ID      string   `msgpack:"id"`
	Queries []string `msgpack:"q"`
	Text    string   `msgpack:"text"`
}
