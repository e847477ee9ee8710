package dispatch

import (
	"strings"

	"shell-assistant-be/pkg/store"
)

// Suggestion machine phases: NoSuggestion -> Offered -> Confirmed | Rejected
// | Superseded. The phase is implicit in ConversationState.LastSuggestion;
// the transitions live here.

var affirmPhrases = map[string]bool{
	"yes": true, "yeah": true, "yep": true, "sure": true, "ok": true,
	"okay": true, "yes please": true, "do it": true, "go ahead": true,
	"sounds good": true, "please": true,
}

var rejectPhrases = map[string]bool{
	"no": true, "nope": true, "nah": true, "no thanks": true,
	"not that": true, "none of those": true, "neither": true,
	"not now": true,
}

func isAffirmation(raw string) bool {
	return affirmPhrases[canonicalPhrase(raw)]
}

func isRejection(raw string) bool {
	return rejectPhrases[canonicalPhrase(raw)]
}

func canonicalPhrase(raw string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(raw)), "!.?, ")
}

// handleSuggestion runs the affirm/reject transitions against an Offered
// suggestion. Returns nil when the turn is not a suggestion verdict, leaving
// the suggestion Offered for later tiers.
func handleSuggestion(state *store.ConversationState, raw string) *RoutingDecision {
	sug := state.LastSuggestion
	if sug == nil {
		return nil
	}

	switch {
	case isAffirmation(raw):
		if len(sug.Candidates) == 1 {
			// Offered -> Confirmed.
			chosen := sug.Candidates[0]
			state.ClearSuggestion()
			state.ClearSelection()
			return &RoutingDecision{
				Handled: true,
				Action:  ActionAffirmSuggestion,
				Pattern: PatternSuggestionAffirm,
				Payload: Payload{
					PanelID: chosen.PanelID,
					Badge:   chosen.Badge,
					DocSlug: chosen.DocSlug,
					Message: chosen.Label,
				},
			}
		}
		// An affirmation against several candidates picks nothing: re-offer
		// the list as a clarifying question and stay Offered.
		return &RoutingDecision{
			Handled: true,
			Action:  ActionClarify,
			Pattern: PatternSuggestionReoffer,
			Payload: Payload{
				Message: "Which one did you mean?",
				Options: sug.Candidates,
			},
		}

	case isRejection(raw):
		// Offered -> Rejected. The set is recorded so it is not re-offered
		// this session; remaining alternatives, if any, go back to the user.
		remaining := remainingAlternatives(state, sug)
		state.RejectSuggestion()
		payload := Payload{Message: "Okay, I won't suggest that."}
		if len(remaining) > 0 {
			payload.Message = "Okay. Were you looking for one of these instead?"
			payload.Options = remaining
		}
		return &RoutingDecision{
			Handled: true,
			Action:  ActionRejectSuggestion,
			Pattern: PatternSuggestionReject,
			Payload: payload,
		}
	}

	return nil
}

// remainingAlternatives returns the candidates beyond the rejected lead one.
func remainingAlternatives(state *store.ConversationState, sug *store.Suggestion) []store.Option {
	if len(sug.Candidates) < 2 {
		return nil
	}
	return append([]store.Option(nil), sug.Candidates[1:]...)
}

// supersedeSuggestion is the Offered -> Superseded transition: a higher
// priority tier claimed the turn, so the pending suggestion is dropped
// without a confirm/reject response.
func supersedeSuggestion(state *store.ConversationState) {
	state.ClearSuggestion()
}
