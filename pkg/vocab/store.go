package vocab

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"shell-assistant-be/pkg/normalize"
)

// TermKind classifies a known term.
type TermKind string

const (
	KindPanel   TermKind = "panel"
	KindConcept TermKind = "concept"
	KindAction  TermKind = "action"
)

// KnownTerm is one entry of the application vocabulary.
type KnownTerm struct {
	Term    string   `json:"term"`
	Kind    TermKind `json:"kind"`
	PanelID string   `json:"panel_id,omitempty"`
	Badge   string   `json:"badge,omitempty"`
}

// Snapshot is the versioned/hashed vocabulary bundle a session loads once.
type Snapshot struct {
	Version    string      `json:"version"`
	Hash       string      `json:"hash"`
	CapturedAt time.Time   `json:"captured_at"`
	Terms      []KnownTerm `json:"terms"`
}

// DefaultTTL is the maximum snapshot age before a refresh is required.
const DefaultTTL = 7 * 24 * time.Hour

// HashTerms computes the canonical content hash of a term set. Terms are
// sorted first so the hash is order-independent.
func HashTerms(terms []KnownTerm) string {
	sorted := append([]KnownTerm(nil), terms...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Term != sorted[j].Term {
			return sorted[i].Term < sorted[j].Term
		}
		return sorted[i].Badge < sorted[j].Badge
	})
	raw, _ := json.Marshal(sorted)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// bootstrapTerms is the minimal fallback vocabulary used when a snapshot is
// rejected as partial or corrupt. Retrieval still works; fuzzy matching over
// a stale term set does not.
var bootstrapTerms = []KnownTerm{
	{Term: "workspace", Kind: KindPanel, PanelID: "workspace"},
	{Term: "settings", Kind: KindPanel, PanelID: "settings"},
	{Term: "help", Kind: KindConcept},
}

// Store is the process-wide, session-scoped snapshot of application
// vocabulary. It is immutable after Load: refreshing on staleness builds a
// new Store (copy-on-refresh) so in-flight turns keep a consistent view.
type Store struct {
	version    string
	hash       string
	capturedAt time.Time
	ttl        time.Duration
	bootstrap  bool

	terms []KnownTerm
	// normalized full-term string -> indexes into terms
	index map[string][]int
}

// Load validates and indexes a snapshot. A snapshot whose declared hash does
// not match its contents, or with no terms at all, is treated as partially
// loaded: the store falls back to the bootstrap set rather than trusting it.
func Load(snap Snapshot, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	terms := snap.Terms
	bootstrap := false
	if len(terms) == 0 || (snap.Hash != "" && snap.Hash != HashTerms(terms)) {
		terms = bootstrapTerms
		bootstrap = true
	}

	s := &Store{
		version:    snap.Version,
		hash:       HashTerms(terms),
		capturedAt: snap.CapturedAt,
		ttl:        ttl,
		bootstrap:  bootstrap,
		terms:      append([]KnownTerm(nil), terms...),
		index:      make(map[string][]int, len(terms)),
	}
	for i, t := range terms {
		key := normalizeTerm(t.Term)
		s.index[key] = append(s.index[key], i)
	}
	return s
}

// IsStale reports whether the snapshot has aged out or no longer matches the
// expected hash. Stale terms must not serve as fuzzy-match targets.
func (s *Store) IsStale(now time.Time, expectedHash string) bool {
	if now.Sub(s.capturedAt) > s.ttl {
		return true
	}
	if expectedHash != "" && expectedHash != s.hash {
		return true
	}
	return false
}

// Refresh builds a replacement store from a newer snapshot. The receiver is
// left untouched for turns still holding it.
func (s *Store) Refresh(snap Snapshot) *Store {
	return Load(snap, s.ttl)
}

// IsBootstrap reports whether the store is running on the minimal fallback
// set instead of a full snapshot.
func (s *Store) IsBootstrap() bool { return s.bootstrap }

// Version returns the loaded snapshot version.
func (s *Store) Version() string { return s.version }

// Hash returns the content hash of the active term set.
func (s *Store) Hash() string { return s.hash }

// Len returns the number of loaded terms.
func (s *Store) Len() int { return len(s.terms) }

// Terms returns the loaded vocabulary. Callers must not modify it.
func (s *Store) Terms() []KnownTerm { return s.terms }

// Lookup returns all terms whose normalized form equals the given phrase.
func (s *Store) Lookup(phrase string) []KnownTerm {
	idxs := s.index[normalizeTerm(phrase)]
	out := make([]KnownTerm, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, s.terms[i])
	}
	return out
}

func normalizeTerm(term string) string {
	return strings.Join(normalize.Label(term), " ")
}
