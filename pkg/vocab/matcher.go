package vocab

import (
	"strings"

	"shell-assistant-be/pkg/normalize"
)

// MatchKind classifies the outcome of a known-noun match.
type MatchKind string

const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
	MatchNone  MatchKind = "none"
)

const (
	// FuzzyMinTokenLen bounds the false-positive rate: shorter tokens never
	// fuzzy-match ("note" must not reach "notes" or "workspace").
	FuzzyMinTokenLen = 5
	// FuzzyMaxDistance is the edit-distance ceiling for a fuzzy hit.
	FuzzyMaxDistance = 2
)

// MatchResult is the resolved outcome of matching normalized input against
// the known-term store.
type MatchResult struct {
	Kind       MatchKind
	Candidates []KnownTerm

	// OpenOrExplain is set when an otherwise-exact known noun carried a
	// trailing question mark: intent (open vs. learn-about) is uncertain and
	// the turn must disambiguate instead of auto-executing.
	OpenOrExplain bool

	// BadgeMissing is set when the input named a badge but no instance of
	// the matched base term carries it. Distinct from no match at all.
	BadgeMissing bool
	// RequestedBadge is the badge the user asked for when BadgeMissing.
	RequestedBadge string
	// BaseTerm is the base known-noun name involved in badge resolution.
	BaseTerm string
}

// FuzzyHitFunc receives every fuzzy hit for offline threshold tuning.
type FuzzyHitFunc func(inputToken, matchedTerm string, distance int)

// Matcher resolves normalized input against a known-term store.
type Matcher struct {
	onFuzzyHit FuzzyHitFunc
}

// NewMatcher creates a matcher. onFuzzyHit may be nil.
func NewMatcher(onFuzzyHit FuzzyHitFunc) *Matcher {
	return &Matcher{onFuzzyHit: onFuzzyHit}
}

// Filler tokens that accompany a panel name without naming it.
var fillerTokens = map[string]bool{
	"panel": true, "widget": true, "tab": true, "page": true, "screen": true,
}

// Match resolves input tokens against the store: exact first, then gated
// fuzzy, then badge disambiguation among same-name instances.
//
// Full-question framing around a known noun intentionally yields none so
// document retrieval, not command execution, answers it.
func (m *Matcher) Match(q normalize.NormalizedQuery, store *Store) MatchResult {
	return m.match(q, store, true)
}

// MatchExact resolves without the fuzzy step. Used when the active term
// snapshot is stale: stale terms must not serve as fuzzy-match targets, but
// exact lookups stay safe.
func (m *Matcher) MatchExact(q normalize.NormalizedQuery, store *Store) MatchResult {
	return m.match(q, store, false)
}

func (m *Matcher) match(q normalize.NormalizedQuery, store *Store, allowFuzzy bool) MatchResult {
	if store == nil || len(q.Tokens) == 0 {
		return MatchResult{Kind: MatchNone}
	}
	if normalize.IsQuestionFramed(q.Raw) {
		return MatchResult{Kind: MatchNone}
	}

	tokens, badge := splitBadge(q.Tokens)
	phrase := strings.Join(stripFiller(tokens), " ")
	if phrase == "" {
		return MatchResult{Kind: MatchNone}
	}

	// 1. Exact match against full known-term strings.
	if hits := store.Lookup(phrase); len(hits) > 0 {
		return m.resolveInstances(q, phrase, badge, hits, MatchExact)
	}

	// 2. Fuzzy, only for tokens long enough to bound false positives, and
	// only against the known-term store.
	if allowFuzzy {
		if hits := m.fuzzyLookup(phrase, store); len(hits) > 0 {
			return m.resolveInstances(q, phrase, badge, hits, MatchFuzzy)
		}
	}

	return MatchResult{Kind: MatchNone, RequestedBadge: badge}
}

// resolveInstances applies badge disambiguation and the trailing-? carve-out
// to a set of same-phrase instances.
func (m *Matcher) resolveInstances(q normalize.NormalizedQuery, phrase, badge string, hits []KnownTerm, kind MatchKind) MatchResult {
	if badge != "" {
		var withBadge []KnownTerm
		for _, h := range hits {
			if strings.EqualFold(h.Badge, badge) {
				withBadge = append(withBadge, h)
			}
		}
		if len(withBadge) == 0 {
			return MatchResult{
				Kind:           MatchNone,
				BadgeMissing:   true,
				RequestedBadge: badge,
				BaseTerm:       hits[0].Term,
			}
		}
		hits = withBadge
	}

	res := MatchResult{Kind: kind, Candidates: hits}
	if kind == MatchExact && normalize.HasTrailingQuestion(q.Raw) && len(hits) == 1 {
		// A bare question mark signals uncertainty between opening the panel
		// and learning about it. Never auto-execute.
		res.OpenOrExplain = true
	}
	return res
}

// fuzzyLookup matches the whole stripped phrase against store terms under
// the length and distance gates. Matching per token would fire on a known
// noun embedded in an unrelated sentence, so only a near-miss of the full
// phrase ("worksapce") counts. Every hit is reported for offline tuning.
func (m *Matcher) fuzzyLookup(phrase string, store *Store) []KnownTerm {
	if len(phrase) < FuzzyMinTokenLen {
		return nil
	}

	best := -1
	var bestTerms []KnownTerm
	for _, term := range store.Terms() {
		normTerm := normalizeTerm(term.Term)
		d := levenshtein(phrase, normTerm)
		if d == 0 || d > FuzzyMaxDistance {
			continue
		}
		if m.onFuzzyHit != nil {
			m.onFuzzyHit(phrase, term.Term, d)
		}
		if best == -1 || d < best {
			best = d
			bestTerms = []KnownTerm{term}
		} else if d == best {
			bestTerms = append(bestTerms, term)
		}
	}
	return bestTerms
}

// splitBadge peels a trailing single-letter or digit token off the input and
// treats it as a badge qualifier ("links panel d" -> base "links panel",
// badge "d").
func splitBadge(tokens []string) ([]string, string) {
	if len(tokens) < 2 {
		return tokens, ""
	}
	last := tokens[len(tokens)-1]
	if len(last) == 1 {
		return tokens[:len(tokens)-1], last
	}
	return tokens, ""
}

func stripFiller(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if fillerTokens[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// levenshtein computes edit distance with the usual two-row tabulation.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
