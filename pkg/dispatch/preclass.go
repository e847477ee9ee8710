package dispatch

import (
	"strings"

	"shell-assistant-be/pkg/normalize"
	"shell-assistant-be/pkg/vocab"
)

// TurnClass is the coarse pre-classification handed to Tier 5.
type TurnClass string

const (
	ClassAction           TurnClass = "action"
	ClassDoc              TurnClass = "doc"
	ClassBareNoun         TurnClass = "bare_noun"
	ClassClarifyAmbiguous TurnClass = "clarify_ambiguous"
	ClassLLM              TurnClass = "llm"
)

// Intent cues that mark a turn as asking for an explanation.
var intentCues = []string{
	"what is", "what are", "what's", "whats", "how do", "how does",
	"how can", "explain", "tell me about", "tell me more", "help with",
	"help me", "meaning of", "difference between",
}

var followupPhrases = []string{
	"tell me more", "tell me more about that", "more about that", "go on",
	"continue", "more detail", "more details", "elaborate", "expand on that",
}

func hasIntentCue(raw string) bool {
	lower := strings.ToLower(raw)
	for _, cue := range intentCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return strings.HasSuffix(strings.TrimSpace(lower), "?")
}

// IsFollowup reports whether the turn is a bare continuation of the previous
// document answer. Only whole phrases count: a continuation that names a new
// topic ("tell me more about badges") must re-query, not replay the last doc.
func IsFollowup(raw string) bool {
	lower := strings.TrimSpace(strings.ToLower(raw))
	lower = strings.TrimRight(lower, ".!?")
	for _, p := range followupPhrases {
		if lower == p {
			return true
		}
	}
	return false
}

// classifyTurn derives the coarse Tier-5 class for a turn.
//
// The bare-noun guard requires BOTH an intent cue and an app-relevant
// keyword before retrieval: a generic noun inside an unrelated sentence
// ("I love workspace music") must not trigger docs.
func classifyTurn(q normalize.NormalizedQuery, terms *vocab.Store) TurnClass {
	tokens := normalize.Tokens(q.Raw)
	if len(tokens) == 0 {
		return ClassLLM
	}

	commandShaped := normalize.StartsWithVerb(q.Raw)
	cue := hasIntentCue(q.Raw)
	appHits := countAppTokens(tokens, terms)

	switch {
	case commandShaped:
		return ClassAction
	case cue && appHits > 0:
		return ClassDoc
	case cue && appHits == 0:
		// Explanation-shaped but nothing app-relevant: could be about the
		// app in words we do not know, or about something else entirely.
		if len(tokens) <= 2 {
			return ClassClarifyAmbiguous
		}
		return ClassLLM
	case appHits > 0:
		// App keyword without an intent cue: bare noun, guarded retrieval.
		return ClassBareNoun
	default:
		return ClassLLM
	}
}

// bareNounGuard is the extra relevance check for bare-noun turns: retrieval
// happens only when an intent cue AND an app keyword are both present.
func bareNounGuard(q normalize.NormalizedQuery, terms *vocab.Store) bool {
	return hasIntentCue(q.Raw) && countAppTokens(normalize.Tokens(q.Raw), terms) > 0
}

func countAppTokens(tokens []string, terms *vocab.Store) int {
	if terms == nil {
		return 0
	}
	appWords := map[string]bool{}
	for _, t := range terms.Terms() {
		for _, w := range normalize.Label(t.Term) {
			appWords[w] = true
		}
	}
	n := 0
	for _, tok := range tokens {
		if appWords[tok] {
			n++
		}
	}
	return n
}
