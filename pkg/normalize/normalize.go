package normalize

import (
	"strings"
	"unicode"
)

// NormalizedQuery is the canonical token form every matcher consumes.
type NormalizedQuery struct {
	Tokens []string
	Raw    string
}

// Action verbs stripped from command-shaped input. They are never stripped
// from candidate/option labels: a panel literally named "Launch Settings"
// must keep its verb.
var actionVerbs = map[string]bool{
	"open":   true,
	"show":   true,
	"go":     true,
	"view":   true,
	"close":  true,
	"launch": true,
	"start":  true,
}

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "me": true,
	"please": true, "to": true, "of": true, "for": true, "up": true,
	"this": true, "that": true, "it": true, "can": true, "you": true,
	"i": true, "do": true, "does": true, "could": true, "would": true,
	"is": true, "are": true, "was": true, "were": true, "what": true,
	"how": true, "why": true, "about": true, "on": true, "in": true,
	"and": true, "or": true, "with": true,
}

// Query canonicalizes raw input: lowercase, punctuation stripped, stopwords
// removed, action verbs stripped only when the input is command-shaped.
func Query(input string) NormalizedQuery {
	tokens := Tokens(input)

	if isCommandShaped(tokens) {
		kept := tokens[:0:0]
		for _, tok := range tokens {
			if actionVerbs[tok] {
				continue
			}
			kept = append(kept, tok)
		}
		tokens = kept
	}

	return NormalizedQuery{Tokens: tokens, Raw: input}
}

// Label canonicalizes a candidate/option label. Same casing, punctuation and
// stopword treatment as Query, but verbs are always kept.
func Label(label string) []string {
	return Tokens(label)
}

// Tokens lowercases, strips punctuation and drops stopwords without any verb
// handling.
func Tokens(input string) []string {
	fields := strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	var tokens []string
	for _, f := range fields {
		if stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// isCommandShaped reports whether verb stripping is safe: the input starts
// with an action verb, or contains one alongside other non-verb tokens.
// A lone verb token, or verbs embedded in a verb-only phrase, stay intact.
func isCommandShaped(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	if actionVerbs[tokens[0]] && len(tokens) > 1 {
		return true
	}

	hasVerb, hasOther := false, false
	for _, tok := range tokens {
		if actionVerbs[tok] {
			hasVerb = true
		} else {
			hasOther = true
		}
	}
	return hasVerb && hasOther
}

// StartsWithVerb reports whether the first meaningful token of the raw
// input is an action verb.
func StartsWithVerb(raw string) bool {
	fields := strings.Fields(strings.ToLower(raw))
	return len(fields) > 0 && actionVerbs[strings.Trim(fields[0], "?!.,")]
}

// HasTrailingQuestion reports whether the raw input ends with a question
// mark after trimming whitespace.
func HasTrailingQuestion(raw string) bool {
	return strings.HasSuffix(strings.TrimSpace(raw), "?")
}

// IsQuestionFramed reports whether the input wraps a noun inside a full
// question structure ("what is X", "how does X work"). Question-framed input
// belongs to document retrieval, not command execution.
func IsQuestionFramed(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	prefixes := []string{
		"what is", "what are", "what's", "whats",
		"how do", "how does", "how can", "why",
		"explain", "tell me about", "tell me more about",
	}
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
