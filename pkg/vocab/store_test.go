package vocab

import (
	"testing"
	"time"
)

func validSnapshot(terms []KnownTerm) Snapshot {
	return Snapshot{
		Version:    "v1",
		Hash:       HashTerms(terms),
		CapturedAt: time.Now(),
		Terms:      terms,
	}
}

func TestLoadValidSnapshot(t *testing.T) {
	terms := []KnownTerm{
		{Term: "workspace", Kind: KindPanel, PanelID: "workspace"},
		{Term: "links", Kind: KindPanel, PanelID: "links-a", Badge: "a"},
	}
	s := Load(validSnapshot(terms), 0)

	if s.IsBootstrap() {
		t.Fatal("valid snapshot should not fall back to bootstrap")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if hits := s.Lookup("workspace"); len(hits) != 1 || hits[0].PanelID != "workspace" {
		t.Errorf("Lookup(workspace) = %v", hits)
	}
}

func TestLoadRejectsHashMismatch(t *testing.T) {
	terms := []KnownTerm{{Term: "workspace", Kind: KindPanel}}
	snap := validSnapshot(terms)
	snap.Hash = "deadbeef"

	s := Load(snap, 0)
	if !s.IsBootstrap() {
		t.Fatal("hash mismatch must fall back to bootstrap terms")
	}
	// Bootstrap still serves the minimal vocabulary.
	if hits := s.Lookup("settings"); len(hits) != 1 {
		t.Errorf("bootstrap Lookup(settings) = %v", hits)
	}
}

func TestLoadRejectsEmptySnapshot(t *testing.T) {
	s := Load(Snapshot{}, 0)
	if !s.IsBootstrap() {
		t.Fatal("empty snapshot must fall back to bootstrap terms")
	}
}

func TestIsStale(t *testing.T) {
	terms := []KnownTerm{{Term: "workspace", Kind: KindPanel}}
	snap := validSnapshot(terms)
	snap.CapturedAt = time.Now().Add(-1 * time.Hour)
	s := Load(snap, 2*time.Hour)

	if s.IsStale(time.Now(), "") {
		t.Error("fresh snapshot reported stale")
	}
	if !s.IsStale(time.Now().Add(3*time.Hour), "") {
		t.Error("aged-out snapshot not reported stale")
	}
	if !s.IsStale(time.Now(), "someotherhash") {
		t.Error("hash drift not reported stale")
	}
	if s.IsStale(time.Now(), s.Hash()) {
		t.Error("matching hash reported stale")
	}
}

func TestRefreshLeavesOriginalIntact(t *testing.T) {
	oldTerms := []KnownTerm{{Term: "workspace", Kind: KindPanel}}
	old := Load(validSnapshot(oldTerms), time.Hour)

	newTerms := []KnownTerm{
		{Term: "workspace", Kind: KindPanel},
		{Term: "archive", Kind: KindPanel},
	}
	snap := validSnapshot(newTerms)
	snap.Version = "v2"
	fresh := old.Refresh(snap)

	if old.Len() != 1 {
		t.Errorf("original store mutated: Len = %d", old.Len())
	}
	if fresh.Len() != 2 || fresh.Version() != "v2" {
		t.Errorf("refreshed store wrong: Len=%d Version=%s", fresh.Len(), fresh.Version())
	}
	if len(old.Lookup("archive")) != 0 {
		t.Error("original store sees refreshed terms")
	}
}

func TestLookupNormalizes(t *testing.T) {
	terms := []KnownTerm{{Term: "Links Panel", Kind: KindPanel, PanelID: "links"}}
	s := Load(validSnapshot(terms), 0)

	if hits := s.Lookup("links panel"); len(hits) != 1 {
		t.Errorf("case-insensitive Lookup failed: %v", hits)
	}
}

func TestHashTermsOrderIndependent(t *testing.T) {
	a := []KnownTerm{{Term: "a", Kind: KindPanel}, {Term: "b", Kind: KindPanel}}
	b := []KnownTerm{{Term: "b", Kind: KindPanel}, {Term: "a", Kind: KindPanel}}
	if HashTerms(a) != HashTerms(b) {
		t.Error("hash depends on term order")
	}
}
