// Package config manages TOML configuration for the anahash CLI:
// where the alphabet/lexicon/variant/confusable/LM source files live,
// and the default search-parameter profile to run queries and text
// search with.
//
// Layered-priority loading, platform-aware config-dir resolution, and
// partial-parse recovery follow
// bastiangx-wordserve/pkg/config/config.go almost directly, generalized
// from wordserve's server/dict/cli sections to this system's
// paths/search/textsearch sections.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bastiangx/anahash/internal/utils"
	"github.com/bastiangx/anahash/pkg/scoring"
	"github.com/bastiangx/anahash/pkg/textsearch"
	"github.com/bastiangx/anahash/pkg/variant"
	"github.com/charmbracelet/log"
)

// Config holds the entire configuration structure.
type Config struct {
	Paths      PathsConfig      `toml:"paths"`
	Search     SearchConfig     `toml:"search"`
	TextSearch TextSearchConfig `toml:"textsearch"`
}

// PathsConfig names the TSV source files a model is built from, per
// spec.md §6's external interfaces. Lexicons is a list so multiple
// lexicon files can coexist under distinct tags (spec.md §4.3), each
// entry "tag=path".
type PathsConfig struct {
	// DataDir is where relative entries below are resolved against. Left
	// empty, internal/utils.PathResolver searches the usual candidate
	// locations (next to the binary, the working directory, a "data"
	// subdirectory next to the binary, of its parent directory, or of the
	// config directory) for one containing *.tsv files.
	DataDir      string   `toml:"data_dir"`
	Alphabet     string   `toml:"alphabet"`
	Lexicons     []string `toml:"lexicons"`
	Variants     string   `toml:"variants"`
	Errors       string   `toml:"errors"`
	Confusables  string   `toml:"confusables"`
	LM           string   `toml:"lm"`
	ContextRules string   `toml:"context_rules"`
}

// SearchConfig mirrors spec.md §3's search-parameter table in
// TOML-friendly form. MaxAnagramDistance/MaxEditDistance are written
// as either a bare integer ("3") or a ratio suffixed with "r"
// ("0.3r"), matching the "abs or ratio of |input|" option shape.
type SearchConfig struct {
	MaxAnagramDistance     string  `toml:"max_anagram_distance"`
	MaxEditDistance        string  `toml:"max_edit_distance"`
	MaxMatches             int     `toml:"max_matches"`
	ScoreThreshold         float64 `toml:"score_threshold"`
	CutoffThreshold        float64 `toml:"cutoff_threshold"`
	Exhaustive             bool    `toml:"exhaustive"`
	StopAtExact            bool    `toml:"stop_at_exact"`
	FreqWeight             float64 `toml:"freq_weight"`
	ConfusablesBeforePrune bool    `toml:"set_confusables_before_pruning"`
	SingleThread           bool    `toml:"single_thread"`
	WeightLD               float64 `toml:"weight_ld"`
	WeightLCS              float64 `toml:"weight_lcs"`
	WeightPrefix           float64 `toml:"weight_prefix"`
	WeightSuffix           float64 `toml:"weight_suffix"`
	WeightCase             float64 `toml:"weight_case"`
}

// TextSearchConfig mirrors spec.md §4.9's text-search-specific knobs.
type TextSearchConfig struct {
	MaxNgram           int     `toml:"max_ngram"`
	MaxSeq             int     `toml:"max_seq"`
	ConsolidateMatches bool    `toml:"consolidate_matches"`
	ContextWeight      float64 `toml:"context_weight"`
	VariantModelWeight float64 `toml:"variantmodel_weight"`
	LMWeight           float64 `toml:"lm_weight"`
	ContextRulesWeight float64 `toml:"contextrules_weight"`
	UnicodeOffsets     bool    `toml:"unicodeoffsets"`
}

// DefaultConfig returns a Config with spec.md's named defaults.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Alphabet: "alphabet.tsv",
			Lexicons: []string{"main=lexicon.tsv"},
		},
		Search: SearchConfig{
			MaxAnagramDistance: "3",
			MaxEditDistance:    "3",
			MaxMatches:         20,
			ScoreThreshold:     0.25,
			CutoffThreshold:    2.0,
			Exhaustive:         true,
			WeightLD:           1,
			WeightLCS:          1,
			WeightPrefix:       1,
			WeightSuffix:       1,
			WeightCase:         1,
		},
		TextSearch: TextSearchConfig{
			MaxNgram:           2,
			MaxSeq:             250,
			ConsolidateMatches: true,
			VariantModelWeight: 1.0,
			LMWeight:           1.0,
		},
	}
}

// GetConfigDir returns the platform config directory: $XDG_CONFIG_HOME/
// anahash or ~/.config/anahash (linux), ~/.config/anahash (macOS),
// %APPDATA%/anahash (windows), ~/.anahash elsewhere. When the home
// directory is unknown, the executable's own directory (or the temp
// directory) stands in for it. The platform logic lives in
// internal/utils.PathResolver.
func GetConfigDir() (string, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return pr.GetConfigDir(), nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority: 1. a custom path
// (e.g. from a --config flag), 2. the default path, 3. builtin
// defaults. A custom path that does not exist falls through to the
// default path; a custom file that exists but is malformed is loaded
// through LoadConfig's partial recovery rather than aborting, per
// spec.md §7's distinction between fatal configuration errors (missing
// alphabet, bad weights) and recoverable load-time issues.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			cfg, err := LoadConfig(customConfigPath)
			if err == nil {
				return cfg, customConfigPath, nil
			}
			log.Warnf("failed to load custom config from %s: %v, trying default path", customConfigPath, err)
		} else {
			log.Warnf("custom config file not found at %s: %v, trying default path", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("failed to determine default config path: %v, using builtin defaults", err)
		return DefaultConfig(), "", nil
	}

	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("failed to load/create config at %s: %v, using builtin defaults", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	return cfg, defaultPath, nil
}

// InitConfig loads config from file, or creates a default file at
// configPath if none exists yet.
func InitConfig(configPath string) (*Config, error) {
	dir := filepath.Dir(configPath)
	if err := utils.EnsureDir(dir); err != nil {
		log.Warnf("failed to create config directory %s: %v, using builtin defaults", dir, err)
		return DefaultConfig(), nil
	}
	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			log.Warnf("failed to create default config file at %s: %v, using builtin defaults", configPath, err)
		}
		return cfg, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, falling back to partial recovery
// on a malformed file rather than failing the whole load - only
// sections that fail to parse revert to defaults, per spec.md §7.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return tryPartialParse(configPath)
	}
	return cfg, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("could not parse any valid configuration from %s: %v, using all defaults", configPath, err)
		return cfg, nil
	}

	if section, ok := utils.ExtractSection(raw, "paths"); ok {
		extractPaths(section, &cfg.Paths)
	}
	if section, ok := utils.ExtractSection(raw, "search"); ok {
		extractSearch(section, &cfg.Search)
	}
	if section, ok := utils.ExtractSection(raw, "textsearch"); ok {
		extractTextSearch(section, &cfg.TextSearch)
	}
	return cfg, nil
}

func extractPaths(data map[string]any, p *PathsConfig) {
	if v, ok := utils.ExtractString(data, "data_dir"); ok {
		p.DataDir = v
	}
	if v, ok := utils.ExtractString(data, "alphabet"); ok {
		p.Alphabet = v
	}
	if v, ok := utils.ExtractString(data, "variants"); ok {
		p.Variants = v
	}
	if v, ok := utils.ExtractString(data, "errors"); ok {
		p.Errors = v
	}
	if v, ok := utils.ExtractString(data, "confusables"); ok {
		p.Confusables = v
	}
	if v, ok := utils.ExtractString(data, "lm"); ok {
		p.LM = v
	}
	if v, ok := utils.ExtractString(data, "context_rules"); ok {
		p.ContextRules = v
	}
	if raw, ok := data["lexicons"].([]any); ok {
		var lex []string
		for _, item := range raw {
			if s, ok := item.(string); ok {
				lex = append(lex, s)
			}
		}
		if len(lex) > 0 {
			p.Lexicons = lex
		}
	}
}

func extractSearch(data map[string]any, s *SearchConfig) {
	if v, ok := utils.ExtractString(data, "max_anagram_distance"); ok {
		s.MaxAnagramDistance = v
	}
	if v, ok := utils.ExtractString(data, "max_edit_distance"); ok {
		s.MaxEditDistance = v
	}
	if v, ok := utils.ExtractInt64(data, "max_matches"); ok {
		s.MaxMatches = v
	}
	if v, ok := utils.ExtractFloat64(data, "score_threshold"); ok {
		s.ScoreThreshold = v
	}
	if v, ok := utils.ExtractFloat64(data, "cutoff_threshold"); ok {
		s.CutoffThreshold = v
	}
	if v, ok := utils.ExtractBool(data, "exhaustive"); ok {
		s.Exhaustive = v
	}
	if v, ok := utils.ExtractBool(data, "stop_at_exact"); ok {
		s.StopAtExact = v
	}
	if v, ok := utils.ExtractFloat64(data, "freq_weight"); ok {
		s.FreqWeight = v
	}
	if v, ok := utils.ExtractBool(data, "set_confusables_before_pruning"); ok {
		s.ConfusablesBeforePrune = v
	}
	if v, ok := utils.ExtractBool(data, "single_thread"); ok {
		s.SingleThread = v
	}
	if v, ok := utils.ExtractFloat64(data, "weight_ld"); ok {
		s.WeightLD = v
	}
	if v, ok := utils.ExtractFloat64(data, "weight_lcs"); ok {
		s.WeightLCS = v
	}
	if v, ok := utils.ExtractFloat64(data, "weight_prefix"); ok {
		s.WeightPrefix = v
	}
	if v, ok := utils.ExtractFloat64(data, "weight_suffix"); ok {
		s.WeightSuffix = v
	}
	if v, ok := utils.ExtractFloat64(data, "weight_case"); ok {
		s.WeightCase = v
	}
}

func extractTextSearch(data map[string]any, t *TextSearchConfig) {
	if v, ok := utils.ExtractInt64(data, "max_ngram"); ok {
		t.MaxNgram = v
	}
	if v, ok := utils.ExtractInt64(data, "max_seq"); ok {
		t.MaxSeq = v
	}
	if v, ok := utils.ExtractBool(data, "consolidate_matches"); ok {
		t.ConsolidateMatches = v
	}
	if v, ok := utils.ExtractFloat64(data, "context_weight"); ok {
		t.ContextWeight = v
	}
	if v, ok := utils.ExtractFloat64(data, "variantmodel_weight"); ok {
		t.VariantModelWeight = v
	}
	if v, ok := utils.ExtractFloat64(data, "lm_weight"); ok {
		t.LMWeight = v
	}
	if v, ok := utils.ExtractFloat64(data, "contextrules_weight"); ok {
		t.ContextRulesWeight = v
	}
	if v, ok := utils.ExtractBool(data, "unicodeoffsets"); ok {
		t.UnicodeOffsets = v
	}
}

// SaveConfig writes a Config to a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if status := utils.CheckDirStatus(dir); !status.Writable {
		return fmt.Errorf("config directory %s is not writable: %w", dir, status.Error)
	}
	return utils.SaveTOMLFile(cfg, configPath)
}

// ParseBound parses spec.md §3's "abs or ratio of |input|" option
// shape: a bare integer ("3") is an absolute budget, a float suffixed
// with "r" ("0.3r") is a ratio.
func ParseBound(s string) (variant.Bound, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return variant.Bound{}, nil
	}
	if strings.HasSuffix(s, "r") {
		ratio, err := strconv.ParseFloat(strings.TrimSuffix(s, "r"), 64)
		if err != nil {
			return variant.Bound{}, fmt.Errorf("config: invalid ratio bound %q: %w", s, err)
		}
		if ratio < 0 {
			return variant.Bound{}, fmt.Errorf("config: negative ratio bound %q", s)
		}
		return variant.Bound{Ratio: ratio, IsRatio: true}, nil
	}
	abs, err := strconv.Atoi(s)
	if err != nil {
		return variant.Bound{}, fmt.Errorf("config: invalid absolute bound %q: %w", s, err)
	}
	if abs < 0 {
		return variant.Bound{}, fmt.Errorf("config: negative absolute bound %q", s)
	}
	return variant.Bound{Abs: abs}, nil
}

// ToVariantParams converts the TOML-friendly SearchConfig into
// variant.Params, validating per spec.md §7's configuration-error
// class (non-finite weights, negative budgets are rejected here rather
// than surfacing as a silent zero-score pipeline later).
func (s SearchConfig) ToVariantParams() (variant.Params, error) {
	anaBudget, err := ParseBound(s.MaxAnagramDistance)
	if err != nil {
		return variant.Params{}, err
	}
	editBudget, err := ParseBound(s.MaxEditDistance)
	if err != nil {
		return variant.Params{}, err
	}
	w := scoring.Weights{LD: s.WeightLD, LCS: s.WeightLCS, Prefix: s.WeightPrefix, Suffix: s.WeightSuffix, Case: s.WeightCase}
	for _, v := range []float64{w.LD, w.LCS, w.Prefix, w.Suffix, w.Case} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return variant.Params{}, fmt.Errorf("config: component weights must be finite")
		}
	}
	if w.LD < 0 || w.LCS < 0 || w.Prefix < 0 || w.Suffix < 0 || w.Case < 0 {
		return variant.Params{}, fmt.Errorf("config: component weights must be non-negative")
	}
	return variant.Params{
		MaxAnagramDistance:     anaBudget,
		MaxEditDistance:        editBudget,
		MaxMatches:             s.MaxMatches,
		ScoreThreshold:         s.ScoreThreshold,
		CutoffThreshold:        s.CutoffThreshold,
		Stop:                   variant.StopCriterion{Exhaustive: s.Exhaustive, StopAtExact: s.StopAtExact},
		FreqWeight:             s.FreqWeight,
		ConfusablesBeforePrune: s.ConfusablesBeforePrune,
		SingleThread:           s.SingleThread,
		Weights:                w,
	}, nil
}

// ToTextSearchParams converts into textsearch.Params, embedding the
// query pipeline params derived from the search section.
func (c Config) ToTextSearchParams() (textsearch.Params, error) {
	qp, err := c.Search.ToVariantParams()
	if err != nil {
		return textsearch.Params{}, err
	}
	t := c.TextSearch
	return textsearch.Params{
		Query:              qp,
		MaxNgram:           t.MaxNgram,
		MaxSeq:             t.MaxSeq,
		ConsolidateMatches: t.ConsolidateMatches,
		ContextWeight:      t.ContextWeight,
		VariantModelWeight: t.VariantModelWeight,
		LMWeight:           t.LMWeight,
		ContextRulesWeight: t.ContextRulesWeight,
		UnicodeOffsets:     t.UnicodeOffsets,
	}, nil
}
