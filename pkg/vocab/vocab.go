// Package vocab implements the vocabulary store (C3): the ordered set
// of lexicon entries with per-entry text, encoded form, frequencies,
// source-lexicon tags, and variant/transparency metadata.
package vocab

import (
	"fmt"

	"github.com/bastiangx/anahash/pkg/alphabet"
	"github.com/bastiangx/anahash/pkg/anavalue"
)

// EntryID is a stable integer assigned in insertion order.
type EntryID int

// Kind distinguishes how an entry participates in search and output.
type Kind int

const (
	// KindIndexed entries are normal: searchable and returnable.
	KindIndexed Kind = iota
	// KindTransparent entries are searchable but never returned
	// directly - a match on them surfaces their reference instead,
	// annotated "via <transparent text>".
	KindTransparent
	// KindLMOnly entries provide language-model context only: not
	// searchable, not returnable.
	KindLMOnly
)

func (k Kind) String() string {
	switch k {
	case KindIndexed:
		return "indexed"
	case KindTransparent:
		return "transparent"
	case KindLMOnly:
		return "lm-only"
	default:
		return "unknown"
	}
}

// FreqHandling controls how re-inserting an already-known text merges
// frequency counts.
type FreqHandling int

const (
	FreqSum FreqHandling = iota
	FreqMax
	FreqMin
	FreqReplace
)

// VariantEdge records a Variant-of(ref_id, weight) relation and,
// following original_source/src/types.rs's VariantClusterId, an
// optional cluster membership letting mutual variants share a
// reference set.
type VariantEdge struct {
	RefID     EntryID
	Weight    float64
	ClusterID int // 0 means "no cluster", entries form a simple pair
}

// Entry is one vocabulary entry.
type Entry struct {
	ID        EntryID
	Text      string
	Encoded   []int
	CharLen   int
	AV        anavalue.AV
	FreqByTag map[string]int
	Kind      Kind
	Variant   *VariantEdge // non-nil only for variant entries
	LexWeight float64
	LexIndex  int
}

// Freq returns the summed frequency across all lexicon tags.
func (e *Entry) Freq() int {
	total := 0
	for _, f := range e.FreqByTag {
		total += f
	}
	return total
}

// Store is the vocabulary: built once via Insert, then frozen for
// query use. Not safe for concurrent Insert; read operations (Entry,
// Iter) are safe for concurrent use once no more Inserts will occur,
// matching spec.md's "built once, then immutable" lifecycle.
type Store struct {
	alpha        *alphabet.Alphabet
	primes       []int64
	freqHandling FreqHandling

	entries  []*Entry
	byText   map[string]EntryID
	built    bool
	clusters map[int][]EntryID
	nextClus int
}

// NewStore creates an empty vocabulary store bound to an alphabet and
// prime table (used to compute each entry's AV eagerly on insert).
func NewStore(alpha *alphabet.Alphabet, primes []int64, fh FreqHandling) *Store {
	return &Store{
		alpha:        alpha,
		primes:       primes,
		freqHandling: fh,
		byText:       make(map[string]EntryID),
		clusters:     make(map[int][]EntryID),
	}
}

// Insert adds or merges a lexicon entry. Re-inserting previously-seen
// text merges frequency under the tag per FreqHandling, following
// original_source/src/lib.rs's add_to_vocabulary merge semantics
// (supplemented feature #3 in SPEC_FULL.md); the kind of a re-inserted
// text is not changed. Insert does not set lexweight/lexindex - those
// are recorded through SetLexInfo, which keeps the maximum seen.
func (s *Store) Insert(text string, freq int, lexiconTag string, kind Kind) (EntryID, error) {
	if s.built {
		return 0, fmt.Errorf("vocab: cannot insert after Build()")
	}
	if text == "" {
		return 0, fmt.Errorf("vocab: empty text not allowed")
	}
	if id, ok := s.byText[text]; ok {
		e := s.entries[id]
		s.mergeFreq(e, lexiconTag, freq)
		return id, nil
	}

	id := EntryID(len(s.entries))
	encoded := s.alpha.Encode(text)
	av := anavalue.FromClasses(encoded, s.primes)
	e := &Entry{
		ID:        id,
		Text:      text,
		Encoded:   encoded,
		CharLen:   len(encoded),
		AV:        av,
		FreqByTag: map[string]int{lexiconTag: freq},
		Kind:      kind,
	}
	s.entries = append(s.entries, e)
	s.byText[text] = id
	return id, nil
}

func (s *Store) mergeFreq(e *Entry, tag string, freq int) {
	cur, ok := e.FreqByTag[tag]
	if !ok {
		e.FreqByTag[tag] = freq
		return
	}
	switch s.freqHandling {
	case FreqSum:
		e.FreqByTag[tag] = cur + freq
	case FreqMax:
		if freq > cur {
			e.FreqByTag[tag] = freq
		}
	case FreqMin:
		if freq < cur {
			e.FreqByTag[tag] = freq
		}
	case FreqReplace:
		e.FreqByTag[tag] = freq
	}
}

// SetLexInfo records lexweight/lexindex for an entry, keeping the
// maximum of what was previously recorded (original_source semantics).
func (s *Store) SetLexInfo(id EntryID, weight float64, index int) error {
	e, ok := s.Entry(id)
	if !ok {
		return fmt.Errorf("vocab: unknown entry id %d", id)
	}
	if weight > e.LexWeight {
		e.LexWeight = weight
	}
	if index > e.LexIndex {
		e.LexIndex = index
	}
	return nil
}

// MarkVariant records text as a Variant-of(ref, weight) edge. If ref
// is not yet known, returns an error (loaders must insert references
// before their variants, or in a second pass).
func (s *Store) MarkVariant(id, ref EntryID, weight float64) error {
	e, ok := s.Entry(id)
	if !ok {
		return fmt.Errorf("vocab: unknown entry id %d", id)
	}
	if _, ok := s.Entry(ref); !ok {
		return fmt.Errorf("vocab: unknown reference id %d", ref)
	}
	e.Variant = &VariantEdge{RefID: ref, Weight: weight}
	return nil
}

// Cluster joins two entries (assumed both variants) into the same
// mutual-variant cluster, per original_source/src/types.rs's
// VariantClusterId. Membership is read back through ClusterMembers;
// Resolve and the query pipeline do not consult clusters, so matching
// one member does not by itself surface the others.
func (s *Store) Cluster(a, b EntryID) error {
	ea, ok := s.Entry(a)
	if !ok {
		return fmt.Errorf("vocab: unknown entry id %d", a)
	}
	eb, ok := s.Entry(b)
	if !ok {
		return fmt.Errorf("vocab: unknown entry id %d", b)
	}
	cid := 0
	if ea.Variant != nil && ea.Variant.ClusterID != 0 {
		cid = ea.Variant.ClusterID
	} else if eb.Variant != nil && eb.Variant.ClusterID != 0 {
		cid = eb.Variant.ClusterID
	} else {
		s.nextClus++
		cid = s.nextClus
	}
	for _, e := range []*Entry{ea, eb} {
		if e.Variant == nil {
			e.Variant = &VariantEdge{}
		}
		e.Variant.ClusterID = cid
	}
	s.clusters[cid] = append(s.clusters[cid], a, b)
	return nil
}

// ClusterMembers returns all entry ids sharing id's cluster, or nil if
// id has no cluster.
func (s *Store) ClusterMembers(id EntryID) []EntryID {
	e, ok := s.Entry(id)
	if !ok || e.Variant == nil || e.Variant.ClusterID == 0 {
		return nil
	}
	return s.clusters[e.Variant.ClusterID]
}

// Build freezes the store against further inserts. Index construction
// (C4) happens separately over Iter()'s output.
func (s *Store) Build() { s.built = true }

// Entry looks up an entry by id.
func (s *Store) Entry(id EntryID) (*Entry, bool) {
	if int(id) < 0 || int(id) >= len(s.entries) {
		return nil, false
	}
	return s.entries[id], true
}

// Iter returns all entries in insertion order. The returned slice
// shares backing storage and must not be mutated by callers.
func (s *Store) Iter() []*Entry { return s.entries }

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Resolve follows Variant-of edges to the final returnable entry and
// reports whether a "via" annotation is needed (true when the
// original match was Transparent).
func (s *Store) Resolve(id EntryID) (final *Entry, via string, ok bool) {
	e, ok := s.Entry(id)
	if !ok {
		return nil, "", false
	}
	if e.Variant == nil {
		return e, "", true
	}
	ref, ok := s.Entry(e.Variant.RefID)
	if !ok {
		return nil, "", false
	}
	if e.Kind == KindTransparent {
		return ref, e.Text, true
	}
	return ref, "", true
}
