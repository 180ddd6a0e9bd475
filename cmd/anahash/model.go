package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bastiangx/anahash/internal/utils"
	"github.com/bastiangx/anahash/pkg/anaindex"
	"github.com/bastiangx/anahash/pkg/anavalue"
	"github.com/bastiangx/anahash/pkg/config"
	"github.com/bastiangx/anahash/pkg/confusable"
	"github.com/bastiangx/anahash/pkg/lm"
	"github.com/bastiangx/anahash/pkg/loader"
	"github.com/bastiangx/anahash/pkg/textsearch"
	"github.com/bastiangx/anahash/pkg/variant"
	"github.com/bastiangx/anahash/pkg/vocab"
	"github.com/charmbracelet/log"
)

// resolveDataPath joins a relative entry from cfg.Paths against the
// data directory internal/utils.PathResolver locates (leaving an
// absolute path untouched), so config files can name their source
// files relative to wherever the data actually lives.
func resolveDataPath(cfg *config.Config, p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	pr, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	dataDir, err := pr.GetDataDir(cfg.Paths.DataDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, p), nil
}

// buildModel loads every source file named in cfg.Paths and builds
// the read-only variant.Model shared by every subcommand, per
// spec.md §4.1-4.4's one-time construction.
func buildModel(cfg *config.Config, logger *log.Logger) (*variant.Model, error) {
	resolve := func(p string) string {
		resolved, err := resolveDataPath(cfg, p)
		if err != nil {
			logger.Warnf("resolving data path %q: %v, using as given", p, err)
			return p
		}
		return resolved
	}

	alpha, err := loader.LoadAlphabet(resolve(cfg.Paths.Alphabet))
	if err != nil {
		return nil, fmt.Errorf("anahash: %w", err)
	}
	primes := anavalue.Primes(alpha.Size())

	store := vocab.NewStore(alpha, primes, vocab.FreqSum)

	for _, lex := range cfg.Paths.Lexicons {
		tag, path, err := splitLexiconSpec(lex)
		if err != nil {
			return nil, fmt.Errorf("anahash: %w", err)
		}
		if err := loader.LoadLexicon(store, resolve(path), tag, vocab.KindIndexed, loader.DefaultLexiconParams()); err != nil {
			return nil, fmt.Errorf("anahash: loading lexicon %q: %w", tag, err)
		}
	}
	if cfg.Paths.Variants != "" {
		if err := loader.LoadVariants(store, resolve(cfg.Paths.Variants), "variants", vocab.KindIndexed); err != nil {
			return nil, fmt.Errorf("anahash: loading variants: %w", err)
		}
	}
	if cfg.Paths.Errors != "" {
		if err := loader.LoadVariants(store, resolve(cfg.Paths.Errors), "errors", vocab.KindTransparent); err != nil {
			return nil, fmt.Errorf("anahash: loading errors: %w", err)
		}
	}
	store.Build()

	idx := anaindex.Build(store, logger)

	var confusables []confusable.Pattern
	if cfg.Paths.Confusables != "" {
		confusables, err = loader.LoadConfusables(resolve(cfg.Paths.Confusables))
		if err != nil {
			return nil, fmt.Errorf("anahash: loading confusables: %w", err)
		}
	}

	logger.Infof("model built: %d entries, %d indexed anagram values", store.Len(), idx.EntryCount())

	return &variant.Model{
		Alphabet:    alpha,
		Primes:      primes,
		Store:       store,
		Index:       idx,
		Confusables: confusables,
		Logger:      logger,
	}, nil
}

// loadLanguageModel loads cfg.Paths.LM if set, falling back to the
// no-op model so the text-search pipeline can always run.
func loadLanguageModel(cfg *config.Config, order int) lm.Model {
	if cfg.Paths.LM == "" {
		return lm.NoOp{}
	}
	path, err := resolveDataPath(cfg, cfg.Paths.LM)
	if err != nil {
		log.Warnf("anahash: resolving LM path %s: %v, continuing without it", cfg.Paths.LM, err)
		return lm.NoOp{}
	}
	model, err := loader.LoadLM(path, order)
	if err != nil {
		log.Warnf("anahash: loading LM %s: %v, continuing without it", path, err)
		return lm.NoOp{}
	}
	return model
}

// loadContextRules loads cfg.Paths.ContextRules if set, returning a
// nil slice (no nudge applied) when unset or unreadable.
func loadContextRules(cfg *config.Config) []textsearch.ContextRule {
	if cfg.Paths.ContextRules == "" {
		return nil
	}
	path, err := resolveDataPath(cfg, cfg.Paths.ContextRules)
	if err != nil {
		log.Warnf("anahash: resolving context rules path %s: %v, continuing without them", cfg.Paths.ContextRules, err)
		return nil
	}
	rules, err := loader.LoadContextRules(path)
	if err != nil {
		log.Warnf("anahash: loading context rules %s: %v, continuing without them", path, err)
		return nil
	}
	return rules
}

// splitLexiconSpec parses a "tag=path" lexicon entry, per spec.md
// §4.3's multi-lexicon-tag configuration shape.
func splitLexiconSpec(spec string) (tag, path string, err error) {
	i := strings.IndexByte(spec, '=')
	if i < 0 {
		return "", "", fmt.Errorf("lexicon entry %q must be tag=path", spec)
	}
	return spec[:i], spec[i+1:], nil
}
