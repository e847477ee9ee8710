package docs

import (
	"testing"

	"shell-assistant-be/pkg/normalize"
)

func testCorpus() *Corpus {
	return NewCorpus([]DocumentRecord{
		{Slug: "workspace", Category: "basics", Title: "Workspace", Content: "The workspace holds your panels and links."},
		{Slug: "settings", Category: "preferences", Title: "Settings", Content: "Change appearance and behavior."},
		{Slug: "badges", Category: "concepts", Title: "Badge Letters", Content: "Letters distinguish duplicate instances."},
	})
}

func TestRetrieveStatuses(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	corpus := testCorpus()

	tests := []struct {
		name    string
		query   string
		status  Status
		topSlug string
	}{
		{"title hit is found", "workspace", StatusFound, "workspace"},
		{"category hit is weak with snippet", "concepts", StatusWeak, "badges"},
		{"content-only hit is weak without snippet", "duplicate", StatusWeak, ""},
		{"no overlap is no_match", "zebra", StatusNoMatch, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Retrieve(normalize.Query(tt.query), corpus, nil)
			if res.Status != tt.status {
				t.Fatalf("Status = %s, want %s (score %.1f)", res.Status, tt.status, res.Score)
			}
			if res.TopSlug != tt.topSlug {
				t.Errorf("TopSlug = %q, want %q", res.TopSlug, tt.topSlug)
			}
		})
	}
}

func TestRetrieveEmptyInputs(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	if res := engine.Retrieve(normalize.Query("workspace"), NewCorpus(nil), nil); res.Status != StatusNoMatch {
		t.Errorf("empty corpus: Status = %s, want no_match", res.Status)
	}
	if res := engine.Retrieve(normalize.Query(""), testCorpus(), nil); res.Status != StatusNoMatch {
		t.Errorf("empty query: Status = %s, want no_match", res.Status)
	}
	if res := engine.Retrieve(normalize.Query("workspace"), nil, nil); res.Status != StatusNoMatch {
		t.Errorf("nil corpus: Status = %s, want no_match", res.Status)
	}
}

func TestRetrieveAmbiguousAcrossDocuments(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	corpus := NewCorpus([]DocumentRecord{
		{Slug: "links-panel", Category: "basics", Title: "Links Panel", Content: "Manage saved links."},
		{Slug: "history-panel", Category: "basics", Title: "History Panel", Content: "Recently visited items."},
	})

	res := engine.Retrieve(normalize.Query("panel"), corpus, nil)
	if res.Status != StatusAmbiguous {
		t.Fatalf("Status = %s, want ambiguous", res.Status)
	}
	// Corpus order breaks the tie for the top slot.
	if res.TopSlug != "links-panel" {
		t.Errorf("TopSlug = %q, want links-panel", res.TopSlug)
	}
	if len(res.AltSlugs) != 1 || res.AltSlugs[0] != "history-panel" {
		t.Errorf("AltSlugs = %v, want [history-panel]", res.AltSlugs)
	}
}

func TestRetrieveCollapsesSameDocumentChunks(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	corpus := NewCorpus([]DocumentRecord{
		{Slug: "workspace", Category: "basics", Title: "Workspace", Content: "Chunk one about the workspace."},
		{Slug: "workspace", Category: "basics", Title: "Workspace", Content: "Chunk two about the workspace."},
		{Slug: "settings", Category: "preferences", Title: "Settings", Content: "Unrelated."},
	})

	res := engine.Retrieve(normalize.Query("workspace"), corpus, nil)
	if res.Status != StatusFound {
		t.Fatalf("Status = %s, want found: duplicate chunks of one document are not ambiguity", res.Status)
	}
	if len(res.AltSlugs) != 0 {
		t.Errorf("AltSlugs = %v, want none", res.AltSlugs)
	}
}

func TestRetrieveDuplicateChunksDoNotHideCompetitor(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	corpus := NewCorpus([]DocumentRecord{
		{Slug: "history-panel", Category: "basics", Title: "History Panel", Content: "Recently visited items."},
		{Slug: "history-panel", Category: "basics", Title: "History Panel", Content: "Clearing the history list."},
		{Slug: "links-panel", Category: "basics", Title: "Links Panel", Content: "Manage saved links."},
	})

	// Both chunks of one document plus a distinct document inside the gap:
	// the competitor must surface as ambiguity, not vanish behind the chunks.
	res := engine.Retrieve(normalize.Query("panel"), corpus, nil)
	if res.Status != StatusAmbiguous {
		t.Fatalf("Status = %s, want ambiguous (score %.1f)", res.Status, res.Score)
	}
	if res.TopSlug != "history-panel" {
		t.Errorf("TopSlug = %q, want history-panel", res.TopSlug)
	}
	if len(res.AltSlugs) != 1 || res.AltSlugs[0] != "links-panel" {
		t.Errorf("AltSlugs = %v, want [links-panel] with the duplicate chunk collapsed", res.AltSlugs)
	}
}

func TestRetrieveAliasSubstitution(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	aliases := AliasTable{
		"prefs": {Canonical: "settings", TargetSlug: "settings", Boost: 2},
	}

	res := engine.Retrieve(normalize.Query("prefs"), testCorpus(), aliases)
	if res.Status != StatusFound {
		t.Fatalf("Status = %s, want found", res.Status)
	}
	if res.TopSlug != "settings" {
		t.Errorf("TopSlug = %q, want settings", res.TopSlug)
	}
	if res.Score != 5 {
		t.Errorf("Score = %.1f, want 5 (title hit plus alias boost)", res.Score)
	}
}

func TestRetrieveAliasBoostResolvesGap(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)
	corpus := NewCorpus([]DocumentRecord{
		{Slug: "settings", Category: "preferences", Title: "Settings", Content: "Change appearance."},
		{Slug: "settings-sync", Category: "preferences", Title: "Settings Sync", Content: "Sync across devices."},
	})
	aliases := AliasTable{
		"prefs": {Canonical: "settings", TargetSlug: "settings", Boost: 2},
	}

	// Without the boost both titles hit "settings" equally and the result
	// would be ambiguous. The boost applies before the gap check.
	res := engine.Retrieve(normalize.Query("prefs"), corpus, aliases)
	if res.Status != StatusFound {
		t.Fatalf("Status = %s, want found", res.Status)
	}
	if res.TopSlug != "settings" {
		t.Errorf("TopSlug = %q, want settings", res.TopSlug)
	}
}

func TestContentHashStable(t *testing.T) {
	if ContentHash("abc") != ContentHash("abc") {
		t.Error("hash must be deterministic")
	}
	if ContentHash("abc") == ContentHash("abd") {
		t.Error("hash must differ for different content")
	}
}
