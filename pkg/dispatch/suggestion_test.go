package dispatch

import (
	"testing"
	"time"

	"shell-assistant-be/pkg/store"
)

func offeredState(candidates ...store.Option) *store.ConversationState {
	s := store.NewConversationState("s1", "u1")
	s.LastSuggestion = &store.Suggestion{
		SetID:      "sug-1",
		Candidates: candidates,
		OfferedAt:  time.Now(),
	}
	return s
}

func TestHandleSuggestionNoSuggestion(t *testing.T) {
	s := store.NewConversationState("s1", "u1")
	if d := handleSuggestion(s, "yes"); d != nil {
		t.Fatalf("decision = %+v, want nil without an offered suggestion", d)
	}
}

func TestHandleSuggestionUnrelatedInputStaysOffered(t *testing.T) {
	s := offeredState(store.Option{Label: "Open settings", PanelID: "settings"})
	if d := handleSuggestion(s, "open the workspace"); d != nil {
		t.Fatalf("decision = %+v, want nil for a non-verdict turn", d)
	}
	if s.LastSuggestion == nil {
		t.Error("non-verdict input must leave the suggestion offered")
	}
}

func TestHandleSuggestionAffirmVariants(t *testing.T) {
	for _, phrase := range []string{"yes", "Yes!", "yeah", "sure", "ok", "go ahead"} {
		s := offeredState(store.Option{Label: "Open settings", PanelID: "settings"})
		d := handleSuggestion(s, phrase)
		if d == nil || d.Action != ActionAffirmSuggestion {
			t.Errorf("handleSuggestion(%q) = %+v, want affirm", phrase, d)
		}
	}
}

func TestHandleSuggestionRejectVariants(t *testing.T) {
	for _, phrase := range []string{"no", "nope", "no thanks", "not now"} {
		s := offeredState(store.Option{Label: "Open settings", PanelID: "settings"})
		d := handleSuggestion(s, phrase)
		if d == nil || d.Action != ActionRejectSuggestion {
			t.Errorf("handleSuggestion(%q) = %+v, want reject", phrase, d)
		}
		if !s.RejectedSuggestions["sug-1"] {
			t.Errorf("handleSuggestion(%q): rejected set not recorded", phrase)
		}
	}
}

func TestHandleSuggestionRejectSingleCandidateNoAlternatives(t *testing.T) {
	s := offeredState(store.Option{Label: "Open settings", PanelID: "settings"})
	d := handleSuggestion(s, "no")
	if d == nil || len(d.Payload.Options) != 0 {
		t.Fatalf("decision = %+v, want reject without alternatives", d)
	}
}
