package vocab

import (
	"testing"
	"time"

	"shell-assistant-be/pkg/normalize"
)

func testStore() *Store {
	terms := []KnownTerm{
		{Term: "workspace", Kind: KindPanel, PanelID: "workspace"},
		{Term: "settings", Kind: KindPanel, PanelID: "settings"},
		{Term: "links", Kind: KindPanel, PanelID: "links-a", Badge: "a"},
		{Term: "links", Kind: KindPanel, PanelID: "links-d", Badge: "d"},
		{Term: "badges", Kind: KindConcept},
	}
	return Load(Snapshot{
		Version:    "test",
		Hash:       HashTerms(terms),
		CapturedAt: time.Now(),
		Terms:      terms,
	}, time.Hour)
}

func TestMatchExact(t *testing.T) {
	m := NewMatcher(nil)
	store := testStore()

	res := m.Match(normalize.Query("open workspace"), store)
	if res.Kind != MatchExact {
		t.Fatalf("Kind = %s, want exact", res.Kind)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].PanelID != "workspace" {
		t.Errorf("Candidates = %v", res.Candidates)
	}
}

func TestMatchFillerStripped(t *testing.T) {
	m := NewMatcher(nil)
	res := m.Match(normalize.Query("open links panel"), testStore())
	if res.Kind != MatchExact {
		t.Fatalf("Kind = %s, want exact", res.Kind)
	}
	if len(res.Candidates) != 2 {
		t.Errorf("want both links instances, got %v", res.Candidates)
	}
}

func TestMatchBadgeSelection(t *testing.T) {
	m := NewMatcher(nil)
	res := m.Match(normalize.Query("open links panel d"), testStore())
	if res.Kind != MatchExact {
		t.Fatalf("Kind = %s, want exact", res.Kind)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].PanelID != "links-d" {
		t.Errorf("badge selection failed: %v", res.Candidates)
	}
}

func TestMatchBadgeMissing(t *testing.T) {
	m := NewMatcher(nil)
	res := m.Match(normalize.Query("open links panel z"), testStore())
	if !res.BadgeMissing {
		t.Fatal("expected BadgeMissing")
	}
	if res.RequestedBadge != "z" || res.BaseTerm != "links" {
		t.Errorf("RequestedBadge=%q BaseTerm=%q", res.RequestedBadge, res.BaseTerm)
	}
}

func TestMatchFuzzy(t *testing.T) {
	var hits []string
	m := NewMatcher(func(input, term string, d int) {
		hits = append(hits, input+"->"+term)
	})

	res := m.Match(normalize.Query("worksapce"), testStore())
	if res.Kind != MatchFuzzy {
		t.Fatalf("Kind = %s, want fuzzy", res.Kind)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].PanelID != "workspace" {
		t.Errorf("Candidates = %v", res.Candidates)
	}
	if len(hits) == 0 {
		t.Error("fuzzy hit hook not called")
	}
}

func TestMatchFuzzyGates(t *testing.T) {
	m := NewMatcher(nil)
	store := testStore()

	tests := []struct {
		name  string
		input string
	}{
		{"short token never fuzzy", "lnks"},
		{"distance beyond ceiling", "workplaces!"},
		{"known noun inside unrelated sentence", "I love workspace music"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Match(normalize.Query(tt.input), store)
			if res.Kind != MatchNone {
				t.Errorf("Match(%q).Kind = %s, want none", tt.input, res.Kind)
			}
		})
	}
}

func TestMatchExactOnlySkipsFuzzy(t *testing.T) {
	m := NewMatcher(nil)
	store := testStore()

	if res := m.MatchExact(normalize.Query("worksapce"), store); res.Kind != MatchNone {
		t.Errorf("MatchExact(worksapce).Kind = %s, want none", res.Kind)
	}
	if res := m.MatchExact(normalize.Query("open workspace"), store); res.Kind != MatchExact {
		t.Errorf("MatchExact(open workspace).Kind = %s, want exact", res.Kind)
	}
}

func TestMatchOpenOrExplain(t *testing.T) {
	m := NewMatcher(nil)
	res := m.Match(normalize.Query("workspace?"), testStore())
	if res.Kind != MatchExact || !res.OpenOrExplain {
		t.Fatalf("want exact open-or-explain, got kind=%s openOrExplain=%v", res.Kind, res.OpenOrExplain)
	}
}

func TestMatchQuestionFramedYieldsNone(t *testing.T) {
	m := NewMatcher(nil)
	res := m.Match(normalize.Query("what is workspace"), testStore())
	if res.Kind != MatchNone {
		t.Fatalf("question-framed input must not match, got %s", res.Kind)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"worksapce", "workspace", 2},
		{"settigns", "settings", 2},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
