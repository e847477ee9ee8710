package docs

import (
	"log"
	"sort"
	"strings"

	"shell-assistant-be/pkg/normalize"
)

// Status classifies a retrieval outcome.
type Status string

const (
	StatusFound     Status = "found"
	StatusWeak      Status = "weak"
	StatusAmbiguous Status = "ambiguous"
	StatusNoMatch   Status = "no_match"
)

// RetrievalResult is the scored outcome of one retrieval. Status is derived,
// never stored.
type RetrievalResult struct {
	Status   Status
	TopSlug  string
	AltSlugs []string
	Score    float64
}

// Config holds the scoring thresholds.
type Config struct {
	// FloorScore is the minimum best score for anything but no_match.
	FloorScore float64
	// ConfidenceScore is the best score needed for found.
	ConfidenceScore float64
	// MinGap: two distinct documents within this gap are ambiguous.
	MinGap float64
	// WeakScoreMin gates weak results: below it, no snippet is usable and
	// the caller must clarify instead of surfacing a low-quality answer.
	WeakScoreMin float64
	// TitleWeight/CategoryWeight/ContentWeight weight term overlap.
	TitleWeight    float64
	CategoryWeight float64
	ContentWeight  float64
}

// DefaultConfig returns the tuned scoring configuration.
func DefaultConfig() Config {
	return Config{
		FloorScore:      1.0,
		ConfidenceScore: 3.0,
		MinGap:          1.0,
		WeakScoreMin:    2.0,
		TitleWeight:     3.0,
		CategoryWeight:  2.0,
		ContentWeight:   1.0,
	}
}

// Engine scores normalized queries against a document corpus. Pure,
// synchronous, in-memory; it never blocks and never errors on empty input.
type Engine struct {
	config Config
	logger *log.Logger
}

// NewEngine creates a retrieval engine.
func NewEngine(config Config, logger *log.Logger) *Engine {
	return &Engine{config: config, logger: logger}
}

type scoredRecord struct {
	record DocumentRecord
	index  int
	score  float64
}

// Retrieve scores the query against every corpus record and derives a
// status. Empty corpus or empty query deterministically yield no_match.
func (e *Engine) Retrieve(q normalize.NormalizedQuery, corpus *Corpus, aliases AliasTable) RetrievalResult {
	if corpus == nil || len(corpus.Records) == 0 || len(q.Tokens) == 0 {
		return RetrievalResult{Status: StatusNoMatch}
	}

	tokens, boosts := e.resolveAliases(q.Tokens, aliases)

	scored := make([]scoredRecord, 0, len(corpus.Records))
	for i, rec := range corpus.Records {
		s := e.scoreRecord(tokens, rec)
		// Alias boost is additive and applied before the gap comparison so
		// the aliased document is not displaced by a document that happens
		// to share surface tokens with the alias.
		s += boosts[rec.Slug]
		if s > 0 {
			scored = append(scored, scoredRecord{record: rec, index: i, score: s})
		}
	}

	if len(scored) == 0 {
		return RetrievalResult{Status: StatusNoMatch}
	}

	// Order by score, ties broken by corpus order.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})

	best := scored[0]
	if best.score < e.config.FloorScore {
		return RetrievalResult{Status: StatusNoMatch, Score: best.score}
	}

	// Cross-document ambiguity runs BEFORE same-document collapse: a
	// genuinely competing second document must not be hidden behind
	// duplicate chunks of the top document.
	altSlugs := collapseSlugs(scored, best.record.Slug)
	if second, ok := bestDistinct(scored, best.record.Slug); ok {
		if best.score-second.score < e.config.MinGap {
			if e.logger != nil {
				e.logger.Printf("[DOCS] Ambiguous: %q %.2f vs %q %.2f (gap < %.2f)",
					best.record.Slug, best.score, second.record.Slug, second.score, e.config.MinGap)
			}
			return RetrievalResult{
				Status:   StatusAmbiguous,
				TopSlug:  best.record.Slug,
				AltSlugs: altSlugs,
				Score:    best.score,
			}
		}
	}

	if best.score < e.config.ConfidenceScore {
		return e.weakResult(best, altSlugs)
	}
	if best.score < e.config.WeakScoreMin {
		// Confidence threshold met but the quality gate still trips.
		return e.weakResult(best, altSlugs)
	}

	return RetrievalResult{
		Status:   StatusFound,
		TopSlug:  best.record.Slug,
		AltSlugs: altSlugs,
		Score:    best.score,
	}
}

// weakResult applies the weak-quality gate: below WeakScoreMin the result
// carries no usable top document, forcing the caller to clarify rather than
// show a low-quality snippet.
func (e *Engine) weakResult(best scoredRecord, altSlugs []string) RetrievalResult {
	res := RetrievalResult{
		Status:   StatusWeak,
		AltSlugs: altSlugs,
		Score:    best.score,
	}
	if best.score >= e.config.WeakScoreMin {
		res.TopSlug = best.record.Slug
	}
	return res
}

func (e *Engine) scoreRecord(tokens []string, rec DocumentRecord) float64 {
	titleTokens := tokenSet(normalize.Label(rec.Title))
	categoryTokens := tokenSet(normalize.Label(rec.Category))
	contentTokens := tokenSet(normalize.Tokens(rec.Content))
	slugTokens := tokenSet(strings.Split(rec.Slug, "-"))

	var score float64
	for _, tok := range tokens {
		switch {
		case titleTokens[tok] || slugTokens[tok]:
			score += e.config.TitleWeight
		case categoryTokens[tok]:
			score += e.config.CategoryWeight
		case contentTokens[tok]:
			score += e.config.ContentWeight
		}
	}
	return score
}

// resolveAliases substitutes aliased query terms with their canonical form
// and collects the additive boost owed to each alias target.
func (e *Engine) resolveAliases(tokens []string, aliases AliasTable) ([]string, map[string]float64) {
	boosts := map[string]float64{}
	if len(aliases) == 0 {
		return tokens, boosts
	}

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		alias, ok := aliases[tok]
		if !ok {
			out = append(out, tok)
			continue
		}
		out = append(out, normalize.Tokens(alias.Canonical)...)
		if alias.TargetSlug != "" {
			boosts[alias.TargetSlug] += alias.Boost
		}
		if e.logger != nil {
			e.logger.Printf("[DOCS] Alias %q -> %q (target %s +%.2f)", tok, alias.Canonical, alias.TargetSlug, alias.Boost)
		}
	}
	return out, boosts
}

// bestDistinct returns the highest-scored record belonging to a different
// document than topSlug.
func bestDistinct(scored []scoredRecord, topSlug string) (scoredRecord, bool) {
	for _, s := range scored {
		if s.record.Slug != topSlug {
			return s, true
		}
	}
	return scoredRecord{}, false
}

// collapseSlugs produces the ordered alternative slug list for clarification
// UIs, deduplicating same-document chunks and excluding the top document.
func collapseSlugs(scored []scoredRecord, topSlug string) []string {
	seen := map[string]bool{topSlug: true}
	var alts []string
	for _, s := range scored {
		if seen[s.record.Slug] {
			continue
		}
		seen[s.record.Slug] = true
		alts = append(alts, s.record.Slug)
	}
	return alts
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
