package docs

import (
	"crypto/sha256"
	"encoding/hex"
)

// DocumentRecord is one retrievable chunk of the help corpus. Several
// records may share a slug (chunks of the same document); slug is the stable
// join key across turns.
type DocumentRecord struct {
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentHash string `json:"content_hash"`
	Version     string `json:"version"`
}

// Corpus is the in-memory read snapshot the engine scores against. The
// source of truth lives externally; the engine only reads an upserted copy.
type Corpus struct {
	Records []DocumentRecord
}

// NewCorpus builds a snapshot, filling missing content hashes.
func NewCorpus(records []DocumentRecord) *Corpus {
	out := make([]DocumentRecord, len(records))
	copy(out, records)
	for i := range out {
		if out[i].ContentHash == "" {
			out[i].ContentHash = ContentHash(out[i].Content)
		}
	}
	return &Corpus{Records: out}
}

// ContentHash is the canonical hash used by snapshot ingestion: an identical
// hash means the record is unchanged and must not invalidate anything.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Alias maps a vague query term to a canonical term plus the document it
// should reinforce.
type Alias struct {
	Canonical  string  `json:"canonical"`
	TargetSlug string  `json:"target_slug"`
	Boost      float64 `json:"boost"`
}

// AliasTable maps surface query terms to aliases.
type AliasTable map[string]Alias
