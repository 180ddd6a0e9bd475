package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/anahash/pkg/alphabet"
	"github.com/bastiangx/anahash/pkg/anavalue"
	"github.com/bastiangx/anahash/pkg/vocab"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestLoadAlphabet(t *testing.T) {
	path := writeTemp(t, "alphabet.tsv", "a\nb\nc\n\nd\te\n")
	a, err := LoadAlphabet(path)
	if err != nil {
		t.Fatalf("LoadAlphabet: %v", err)
	}
	// 4 declared classes (a, b, c, d/e) plus the automatic unknown class.
	if a.Size() != 5 {
		t.Errorf("Size() = %d, want 5", a.Size())
	}
	enc := a.Encode("d")
	if len(enc) != 1 {
		t.Fatalf("Encode(d) = %v, want single class", enc)
	}
}

func TestLoadAlphabetEscapes(t *testing.T) {
	path := writeTemp(t, "alphabet.tsv", "\\s\n\\t\n\\n\n")
	a, err := LoadAlphabet(path)
	if err != nil {
		t.Fatalf("LoadAlphabet: %v", err)
	}
	enc := a.Encode(" ")
	if enc[0] == a.UnknownIndex() {
		t.Errorf("space should map to declared class, got unknown")
	}
}

func TestLoadAlphabetRejectsEmptyFile(t *testing.T) {
	path := writeTemp(t, "alphabet.tsv", "")
	if _, err := LoadAlphabet(path); err == nil {
		t.Fatal("expected error for empty alphabet file")
	}
}

func newTestStore(t *testing.T) (*alphabet.Alphabet, *vocab.Store) {
	t.Helper()
	classes := make([]alphabet.Class, 26)
	for i := 0; i < 26; i++ {
		ch := string(rune('a' + i))
		classes[i] = alphabet.Class{Symbols: []string{ch}, Label: ch}
	}
	a := alphabet.New(classes)
	primes := anavalue.Primes(a.Size())
	return a, vocab.NewStore(a, primes, vocab.FreqSum)
}

func TestLoadLexicon(t *testing.T) {
	path := writeTemp(t, "lexicon.tsv", "separate\t100\ndesperate\t50\n")
	_, store := newTestStore(t)
	err := LoadLexicon(store, path, "main", vocab.KindIndexed, LexiconParams{TextColumn: 0, FreqColumn: 1})
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", store.Len())
	}
	id, ok := store.Entry(0)
	if !ok || id.Text != "separate" || id.Freq() != 100 {
		t.Errorf("entry 0 = %+v, want separate/100", id)
	}
}

func TestLoadLexiconMissingColumnFails(t *testing.T) {
	path := writeTemp(t, "lexicon.tsv", "separate\n")
	_, store := newTestStore(t)
	err := LoadLexicon(store, path, "main", vocab.KindIndexed, LexiconParams{TextColumn: 0, FreqColumn: 1})
	if err == nil {
		t.Fatal("expected error for missing frequency column")
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0 (atomic failure must admit nothing)", store.Len())
	}
}

func TestLoadVariants(t *testing.T) {
	path := writeTemp(t, "variants.tsv", "separate\tseperate\t0.9\tseperete\t0.8\n")
	_, store := newTestStore(t)
	if err := LoadVariants(store, path, "errors", vocab.KindTransparent); err != nil {
		t.Fatalf("LoadVariants: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}
	final, via, ok := store.Resolve(1)
	if !ok || final.Text != "separate" || via != "seperate" {
		t.Errorf("Resolve(seperate) = final=%v via=%q, want separate/seperate", final, via)
	}
}

func TestLoadConfusables(t *testing.T) {
	path := writeTemp(t, "confusables.tsv", "-[y]+[i]\t1.1\n=[a]\n")
	patterns, err := LoadConfusables(path)
	if err != nil {
		t.Fatalf("LoadConfusables: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("len(patterns) = %d, want 2", len(patterns))
	}
	if patterns[0].Weight != 1.1 {
		t.Errorf("patterns[0].Weight = %v, want 1.1", patterns[0].Weight)
	}
	if patterns[1].Weight != 1.0 {
		t.Errorf("patterns[1].Weight = %v, want default 1.0", patterns[1].Weight)
	}
}

func TestLoadVariantsClustersMutualReferences(t *testing.T) {
	path := writeTemp(t, "variants.tsv", "color\tcolour\t1.0\ncolour\tcolor\t1.0\n")
	_, store := newTestStore(t)
	if err := LoadVariants(store, path, "variants", vocab.KindIndexed); err != nil {
		t.Fatalf("LoadVariants: %v", err)
	}
	// color, colour (ref), colour, color (ref) -> 2 reference entries
	// plus their variant entries, with the references clustered.
	var colorID, colourID vocab.EntryID
	for id := vocab.EntryID(0); int(id) < store.Len(); id++ {
		e, ok := store.Entry(id)
		if !ok {
			continue
		}
		switch e.Text {
		case "color":
			colorID = id
		case "colour":
			colourID = id
		}
	}
	members := store.ClusterMembers(colorID)
	found := false
	for _, m := range members {
		if m == colourID {
			found = true
		}
	}
	if !found {
		t.Errorf("ClusterMembers(color) = %v, want it to include colour's entry %d", members, colourID)
	}
}

func TestLoadContextRules(t *testing.T) {
	path := writeTemp(t, "context.tsv", "the\t-\t0.5\n\t-\t0.3\tcap\t-1\n")
	rules, err := LoadContextRules(path)
	if err != nil {
		t.Fatalf("LoadContextRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("len(rules) = %d, want 2", len(rules))
	}
	if len(rules[0].Before) != 1 || rules[0].Before[0] != "the" {
		t.Errorf("rules[0].Before = %v, want [the]", rules[0].Before)
	}
	if rules[0].Score != 0.5 {
		t.Errorf("rules[0].Score = %v, want 0.5", rules[0].Score)
	}
	if rules[1].Tag != "cap" || rules[1].TagOffset != -1 {
		t.Errorf("rules[1] tag/offset = %q/%d, want cap/-1", rules[1].Tag, rules[1].TagOffset)
	}
}

func TestLoadContextRulesRejectsMissingScore(t *testing.T) {
	path := writeTemp(t, "context.tsv", "the\n")
	if _, err := LoadContextRules(path); err == nil {
		t.Fatal("expected error for too few columns")
	}
}

func TestLoadLM(t *testing.T) {
	path := writeTemp(t, "lm.tsv", "<bos> the\t10\nthe cat\t5\ncat <eos>\t3\n")
	model, err := LoadLM(path, 2)
	if err != nil {
		t.Fatalf("LoadLM: %v", err)
	}
	if lp := model.LogProb([]string{"the", "cat"}); lp == 0 {
		t.Errorf("LogProb should reflect loaded counts, got exactly 0")
	}
}
