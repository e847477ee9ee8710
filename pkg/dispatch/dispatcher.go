package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"shell-assistant-be/pkg/docs"
	"shell-assistant-be/pkg/normalize"
	"shell-assistant-be/pkg/store"
	"shell-assistant-be/pkg/vocab"

	"github.com/google/uuid"
)

// Turn is one raw user turn plus the client-reported shell context.
type Turn struct {
	SessionID string
	Message   string
	Widget    *store.WidgetContext
	Now       time.Time
}

// Outcome is the full result of routing one turn: the decision, the
// replacement conversation state, and the Tier-5 telemetry when retrieval
// was consulted.
type Outcome struct {
	Decision  RoutingDecision
	State     *store.ConversationState
	Telemetry *TurnTelemetry
}

// CorpusProvider returns the current document corpus snapshot.
type CorpusProvider func() *docs.Corpus

// TermSource provides the current known-term store snapshot and reloads it
// when the snapshot has aged out. Snapshots are replaced on refresh, never
// mutated, so a turn holds one consistent view.
type TermSource interface {
	Terms() *vocab.Store
	RefreshTerms(ctx context.Context) (*vocab.Store, error)
}

// AliasProvider returns the current alias table.
type AliasProvider func() docs.AliasTable

// Dispatcher composes the matchers into the ordered decision chain. Tiers
// are data: an ordered list of handlers folded until the first claim.
type Dispatcher struct {
	matcher    *vocab.Matcher
	engine     *docs.Engine
	terms      TermSource
	corpus     CorpusProvider
	aliases    AliasProvider
	classifier Classifier
	timeout    time.Duration
	logger     *log.Logger

	tiers []tier
}

type tier struct {
	name   string
	handle func(*turnContext) *RoutingDecision
}

// turnContext is the per-turn working set shared by tiers.
type turnContext struct {
	ctx   context.Context
	turn  Turn
	q     normalize.NormalizedQuery
	state *store.ConversationState
	terms *vocab.Store
	// exactOnly disables fuzzy matching for this turn: the snapshot was
	// stale and no fresher one could be loaded.
	exactOnly bool
	tel       *TurnTelemetry
	logger    *log.Logger
}

// NewDispatcher wires the tier chain. timeout bounds only the classifier
// fallback; the deterministic tiers are non-cancellable, bounded-time work.
func NewDispatcher(
	matcher *vocab.Matcher,
	engine *docs.Engine,
	terms TermSource,
	corpus CorpusProvider,
	aliases AliasProvider,
	classifier Classifier,
	timeout time.Duration,
	logger *log.Logger,
) *Dispatcher {
	d := &Dispatcher{
		matcher:    matcher,
		engine:     engine,
		terms:      terms,
		corpus:     corpus,
		aliases:    aliases,
		classifier: classifier,
		timeout:    timeout,
		logger:     logger,
	}
	// Strict priority order. The first tier that claims the turn
	// short-circuits everything after it.
	d.tiers = []tier{
		{"stop_cancel", d.tierStopCancel},
		{"resume_repair", d.tierResumeRepair},
		{"interrupt_command", d.tierInterruptCommand},
		{"suggestion", d.tierSuggestion},
		{"clarification", d.tierClarification},
		{"known_noun", d.tierKnownNoun},
		{"grounding_set", d.tierGroundingSet},
		{"widget_context", d.tierWidgetContext},
		{"doc_retrieval", d.tierDocRetrieval},
	}
	return d
}

// Route processes one turn to completion. Every branch terminates in a
// concrete RoutingDecision; no deterministic condition aborts the turn.
func (d *Dispatcher) Route(ctx context.Context, turn Turn, prev *store.ConversationState) Outcome {
	state := prev.Clone()
	state.LastQuery = turn.Message
	if turn.Widget != nil {
		state.WidgetSelection = turn.Widget
	}

	terms, exactOnly := d.resolveTerms(ctx, turn)

	tc := &turnContext{
		ctx:       ctx,
		turn:      turn,
		q:         normalize.Query(turn.Message),
		state:     state,
		terms:     terms,
		exactOnly: exactOnly,
		logger:    d.logger,
	}

	for _, t := range d.tiers {
		if decision := t.handle(tc); decision != nil {
			d.logger.Printf("[DISPATCH] Tier %q claimed turn (pattern=%s action=%s)",
				t.name, decision.Pattern, decision.Action)
			return Outcome{Decision: *decision, State: tc.state, Telemetry: tc.tel}
		}
	}

	// Unreachable as long as doc_retrieval terminates every turn, but the
	// dispatcher contract is a concrete decision on every path.
	return Outcome{
		Decision:  RoutingDecision{Action: ActionPassthrough, Pattern: PatternNone},
		State:     tc.state,
		Telemetry: tc.tel,
	}
}

// resolveTerms returns the term snapshot to match against this turn. A stale
// snapshot triggers a reload; if no fresher snapshot can be loaded, the stale
// set still serves exact lookups but never fuzzy matching.
func (d *Dispatcher) resolveTerms(ctx context.Context, turn Turn) (*vocab.Store, bool) {
	now := turn.Now
	if now.IsZero() {
		now = time.Now()
	}

	terms := d.terms.Terms()
	if !terms.IsStale(now, "") {
		return terms, false
	}

	fresh, err := d.terms.RefreshTerms(ctx)
	if err != nil {
		d.logger.Printf("[DISPATCH] %v", NewRouteError(KindStaleKnownTerms,
			"snapshot refresh failed, matching exact-only this turn", err))
		return terms, true
	}
	if fresh.IsStale(now, "") {
		d.logger.Printf("[DISPATCH] %v", NewRouteError(KindStaleKnownTerms,
			"no fresher snapshot available, matching exact-only this turn", nil))
		return fresh, true
	}
	return fresh, false
}

// match resolves the turn against the term snapshot, honoring the
// stale-snapshot fuzzy ban.
func (d *Dispatcher) match(tc *turnContext) vocab.MatchResult {
	if tc.exactOnly {
		return d.matcher.MatchExact(tc.q, tc.terms)
	}
	return d.matcher.Match(tc.q, tc.terms)
}

var stopPhrases = map[string]bool{
	"stop": true, "cancel": true, "never mind": true, "nevermind": true,
	"forget it": true, "quit": true, "abort": true,
}

var resumePhrases = map[string]bool{
	"go back": true, "back": true, "resume": true, "try again": true,
	"show the options again": true, "show options again": true,
	"what were the options": true, "those options again": true,
}

// tierStopCancel always wins over an active suggestion: claiming it clears
// lastSuggestion so a stale suggestion cannot be confirmed later.
func (d *Dispatcher) tierStopCancel(tc *turnContext) *RoutingDecision {
	if !stopPhrases[canonicalPhrase(tc.turn.Message)] {
		return nil
	}
	supersedeSuggestion(tc.state)
	tc.state.ClearSelection()
	return &RoutingDecision{
		Handled: true,
		Action:  ActionPassthrough,
		Pattern: PatternStopCancel,
		Payload: Payload{Message: "Okay, cancelled."},
	}
}

// tierResumeRepair re-offers the most recent option list when the user asks
// to return to it.
func (d *Dispatcher) tierResumeRepair(tc *turnContext) *RoutingDecision {
	if !resumePhrases[canonicalPhrase(tc.turn.Message)] {
		return nil
	}
	if len(tc.state.LastOptionsShown) == 0 {
		return nil
	}
	tc.state.PendingOptions = append([]store.Option(nil), tc.state.LastOptionsShown...)
	if tc.state.ClarificationSnapshot != "" {
		tc.state.LastClarification = tc.state.ClarificationSnapshot
	}
	return &RoutingDecision{
		Handled: true,
		Action:  ActionClarify,
		Pattern: PatternResumeRepair,
		Payload: Payload{
			Message: "Here are those options again:",
			Options: tc.state.PendingOptions,
		},
	}
}

// tierInterruptCommand lets an explicit, unambiguously resolvable command
// escape any active clarification or suggestion. Selection-retry logic must
// not trap it.
func (d *Dispatcher) tierInterruptCommand(tc *turnContext) *RoutingDecision {
	if !tc.state.HasActiveClarification() && tc.state.LastSuggestion == nil {
		// Nothing to interrupt; a plain command resolves as a known noun.
		return nil
	}
	if !normalize.StartsWithVerb(tc.turn.Message) {
		return nil
	}
	res := d.match(tc)
	if res.Kind != vocab.MatchExact || len(res.Candidates) != 1 || res.OpenOrExplain {
		return nil
	}
	term := res.Candidates[0]
	if term.Kind != vocab.KindPanel && term.Kind != vocab.KindAction {
		return nil
	}
	// Interrupt supersedes any offered suggestion.
	supersedeSuggestion(tc.state)
	return d.executePanel(tc, term, PatternInterruptCommand)
}

func (d *Dispatcher) tierSuggestion(tc *turnContext) *RoutingDecision {
	return handleSuggestion(tc.state, tc.turn.Message)
}

// tierClarification resolves a selection against the active option list
// only. Unrecognized input falls through so later tiers get their chance.
func (d *Dispatcher) tierClarification(tc *turnContext) *RoutingDecision {
	if len(tc.state.PendingOptions) == 0 {
		return nil
	}
	opt, ok := resolveSelection(tc.turn.Message, tc.state.PendingOptions)
	if !ok {
		return nil
	}

	if opt.DocSlug != "" {
		tc.state.ClearSelection()
		// Explicit selection of a doc pill confirms it as follow-up state.
		tc.state.LastDocSlug = opt.DocSlug
		return &RoutingDecision{
			Handled: true,
			Action:  ActionRetrieveDoc,
			Pattern: PatternClarifySelection,
			Payload: Payload{DocSlug: opt.DocSlug, Message: opt.Label},
		}
	}

	tc.state.ClearSelection()
	supersedeSuggestion(tc.state)
	return &RoutingDecision{
		Handled: true,
		Action:  ActionExecutePanel,
		Pattern: PatternClarifySelection,
		Payload: Payload{PanelID: opt.PanelID, Badge: opt.Badge, Message: opt.Label},
	}
}

// tierKnownNoun is Tier 4: command execution for known nouns, including
// badge disambiguation and the widget-context bypass.
func (d *Dispatcher) tierKnownNoun(tc *turnContext) *RoutingDecision {
	res := d.match(tc)

	if res.BadgeMissing {
		return &RoutingDecision{
			Handled: true,
			Action:  ActionClarify,
			Pattern: PatternBadgeNotFound,
			Payload: Payload{
				Message: fmt.Sprintf("No %s panel with badge '%s' found",
					res.BaseTerm, strings.ToUpper(res.RequestedBadge)),
			},
		}
	}
	if res.Kind == vocab.MatchNone {
		return nil
	}

	if res.OpenOrExplain {
		term := res.Candidates[0]
		options := []store.Option{
			{Label: "Open " + term.Term, PanelID: term.PanelID, Badge: term.Badge},
			{Label: "Learn about " + term.Term, DocSlug: docSlugForTerm(term)},
		}
		d.offerOptions(tc, "Did you want to open it, or learn about it?", options)
		return &RoutingDecision{
			Handled: true,
			Action:  ActionDisambiguate,
			Pattern: PatternOpenOrExplain,
			Payload: Payload{Message: "Did you want to open it, or learn about it?", Options: options},
		}
	}

	// Panel/action kinds execute here; concepts belong to the grounding set.
	candidates := commandCandidates(res.Candidates)
	if len(candidates) == 0 {
		return nil
	}

	if len(candidates) > 1 {
		// Widget-context bypass: a visible instance resolves the ambiguity
		// without asking.
		if w := tc.state.WidgetSelection; w != nil {
			for _, c := range candidates {
				if strings.EqualFold(c.Term, w.PanelName) && strings.EqualFold(c.Badge, w.Badge) {
					return d.executePanel(tc, c, patternForKind(res.Kind))
				}
			}
		}
		options := make([]store.Option, 0, len(candidates))
		for _, c := range candidates {
			label := c.Term
			if c.Badge != "" {
				label = fmt.Sprintf("%s (%s)", c.Term, strings.ToUpper(c.Badge))
			}
			options = append(options, store.Option{Label: label, PanelID: c.PanelID, Badge: c.Badge})
		}
		d.offerOptions(tc, "Which one did you mean?", options)
		return &RoutingDecision{
			Handled: true,
			Action:  ActionDisambiguate,
			Pattern: PatternBadgeDisambiguate,
			Payload: Payload{Message: "Which one did you mean?", Options: options},
		}
	}

	return d.executePanel(tc, candidates[0], patternForKind(res.Kind))
}

// tierGroundingSet is Tier 4.5: a concept-kind known term grounds the turn
// into document retrieval even without question framing.
func (d *Dispatcher) tierGroundingSet(tc *turnContext) *RoutingDecision {
	res := d.match(tc)
	if res.Kind == vocab.MatchNone {
		return nil
	}
	var concept *vocab.KnownTerm
	for i := range res.Candidates {
		if res.Candidates[i].Kind == vocab.KindConcept {
			concept = &res.Candidates[i]
			break
		}
	}
	if concept == nil {
		return nil
	}

	result := d.engine.Retrieve(normalize.Query(concept.Term), d.corpus(), d.aliases())
	if result.Status != docs.StatusFound {
		return nil
	}
	tc.state.LastDocSlug = result.TopSlug
	return &RoutingDecision{
		Handled: true,
		Action:  ActionRetrieveDoc,
		Pattern: PatternGroundingSet,
		Payload: Payload{DocSlug: result.TopSlug, AltDocs: result.AltSlugs, Score: result.Score},
	}
}

// tierWidgetContext is Tier 4.6: a widget-explanation-shaped question with
// visible widget context bypasses Tier 5 entirely. Corpus knowledge is not
// about a specific on-screen instance.
func (d *Dispatcher) tierWidgetContext(tc *turnContext) *RoutingDecision {
	w := tc.state.WidgetSelection
	if w == nil {
		return nil
	}
	if !isWidgetQuestion(tc.turn.Message, w) {
		return nil
	}
	return &RoutingDecision{
		Handled: true,
		Action:  ActionPassthrough,
		Pattern: PatternWidgetContext,
		Payload: Payload{
			PanelID: w.PanelID,
			Message: fmt.Sprintf("context:%s", w.PanelName),
		},
	}
}

// tierDocRetrieval is Tier 5. Every turn that reaches it terminates here,
// and every such turn produces one telemetry record.
func (d *Dispatcher) tierDocRetrieval(tc *turnContext) *RoutingDecision {
	tc.tel = &TurnTelemetry{
		InputLen:           len(tc.turn.Message),
		NormalizedQuery:    strings.Join(tc.q.Tokens, " "),
		KnownTermsLoaded:   tc.terms.Len(),
		LastDocSlugPresent: tc.state.LastDocSlug != "",
		RouteDeterministic: true,
	}

	// Vague continuation resolves against follow-up state.
	if IsFollowup(tc.turn.Message) && tc.state.LastDocSlug != "" {
		tc.tel.FollowupDetected = true
		tc.tel.DocStatus = string(docs.StatusFound)
		tc.tel.DocSlugTop = tc.state.LastDocSlug
		return d.finish(tc, &RoutingDecision{
			Handled: true,
			Action:  ActionRetrieveDoc,
			Pattern: PatternDocFound,
			Payload: Payload{DocSlug: tc.state.LastDocSlug},
		})
	}

	class := classifyTurn(tc.q, tc.terms)
	d.logger.Printf("[DISPATCH] Tier 5 pre-class: %s", class)

	switch class {
	case ClassAction:
		// Tier 4 already had its chance; return the turn unhandled.
		tc.tel.RouteDeterministic = false
		return d.finish(tc, &RoutingDecision{
			Handled: false,
			Action:  ActionPassthrough,
			Pattern: PatternDocNoMatch,
		})

	case ClassClarifyAmbiguous:
		return d.finish(tc, &RoutingDecision{
			Handled: true,
			Action:  ActionClarify,
			Pattern: PatternAppOrOtherClarify,
			Payload: Payload{Message: "Are you asking about something in this app, or something else?"},
		})

	case ClassBareNoun:
		if !bareNounGuard(tc.q, tc.terms) {
			return d.fallbackToClassifier(tc)
		}
	case ClassLLM:
		return d.fallbackToClassifier(tc)
	}

	result := d.engine.Retrieve(tc.q, d.corpus(), d.aliases())
	tc.tel.DocStatus = string(result.Status)
	tc.tel.DocSlugTop = result.TopSlug
	tc.tel.DocSlugAlt = result.AltSlugs

	switch result.Status {
	case docs.StatusFound:
		// Only a confident result may set follow-up state.
		tc.state.LastDocSlug = result.TopSlug
		return d.finish(tc, &RoutingDecision{
			Handled: true,
			Action:  ActionRetrieveDoc,
			Pattern: PatternDocFound,
			Payload: Payload{DocSlug: result.TopSlug, AltDocs: result.AltSlugs, Score: result.Score},
		})

	case docs.StatusAmbiguous:
		options := docOptions(result, d.corpus())
		d.offerOptions(tc, "I found a few things that could match:", options)
		return d.finish(tc, &RoutingDecision{
			Handled: true,
			Action:  ActionClarify,
			Pattern: PatternDocAmbiguous,
			Payload: Payload{Message: "I found a few things that could match:", Options: options},
		})

	case docs.StatusWeak:
		// A weak result never sets lastDocSlug: a low-confidence guess must
		// not be expandable by a later "tell me more".
		if result.TopSlug != "" {
			return d.finish(tc, &RoutingDecision{
				Handled: true,
				Action:  ActionRetrieveDoc,
				Pattern: PatternDocWeak,
				Payload: Payload{DocSlug: result.TopSlug, AltDocs: result.AltSlugs, Score: result.Score},
			})
		}
		options := docOptions(result, d.corpus())
		if len(options) > 0 {
			d.offerOptions(tc, "I'm not sure. Did you mean one of these?", options)
			return d.finish(tc, &RoutingDecision{
				Handled: true,
				Action:  ActionClarify,
				Pattern: PatternDocWeak,
				Payload: Payload{Message: "I'm not sure. Did you mean one of these?", Options: options},
			})
		}
		return d.fallbackToClassifier(tc)

	default: // no_match
		return d.fallbackToClassifier(tc)
	}
}

// fallbackToClassifier invokes the generative classifier under its timeout.
// Failure or timeout is "classifier declined", recovered locally with a
// deterministic message; never a turn failure.
func (d *Dispatcher) fallbackToClassifier(tc *turnContext) *RoutingDecision {
	if tc.tel == nil {
		tc.tel = &TurnTelemetry{
			InputLen:         len(tc.turn.Message),
			NormalizedQuery:  strings.Join(tc.q.Tokens, " "),
			KnownTermsLoaded: tc.terms.Len(),
		}
	}
	tc.tel.RouteDeterministic = false

	declined := &RoutingDecision{
		Handled: true,
		Action:  ActionPassthrough,
		Pattern: PatternClassifierFallback,
		Payload: Payload{Message: "I didn't catch that. Try rephrasing, or ask about a specific panel."},
	}

	if d.classifier == nil {
		return d.finish(tc, declined)
	}

	cctx, cancel := context.WithTimeout(tc.ctx, d.timeout)
	defer cancel()

	tc.tel.ClassifierCalled = true
	res, err := d.classifier.Classify(cctx, tc.turn.Message)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			tc.tel.ClassifierTimeout = true
		}
		d.logger.Printf("[DISPATCH] Classifier declined: %v", err)
		return d.finish(tc, declined)
	}

	tc.tel.ClassifierConfidence = res.Confidence
	return d.finish(tc, &RoutingDecision{
		Handled: true,
		Action:  ActionPassthrough,
		Pattern: PatternClassifierFallback,
		Payload: Payload{Message: res.Reply},
	})
}

// finish stamps the telemetry route fields from the final decision.
func (d *Dispatcher) finish(tc *turnContext, decision *RoutingDecision) *RoutingDecision {
	if tc.tel != nil {
		tc.tel.RouteFinal = string(decision.Action)
		tc.tel.MatchedPatternID = decision.Pattern
	}
	return decision
}

// executePanel emits an execute_panel decision and atomically clears the
// full clarification/selection group.
func (d *Dispatcher) executePanel(tc *turnContext, term vocab.KnownTerm, pattern PatternID) *RoutingDecision {
	tc.state.ClearSelection()
	supersedeSuggestion(tc.state)
	return &RoutingDecision{
		Handled: true,
		Action:  ActionExecutePanel,
		Pattern: pattern,
		Payload: Payload{PanelID: term.PanelID, Badge: term.Badge, Message: term.Term},
	}
}

// offerOptions replaces the clarification/selection group with a fresh set.
func (d *Dispatcher) offerOptions(tc *turnContext, question string, options []store.Option) {
	tc.state.LastClarification = question
	tc.state.ClarificationSnapshot = question
	tc.state.PendingOptions = append([]store.Option(nil), options...)
	tc.state.LastOptionsShown = append([]store.Option(nil), options...)
	tc.state.ActiveOptionSetID = uuid.NewString()
}

func patternForKind(kind vocab.MatchKind) PatternID {
	if kind == vocab.MatchFuzzy {
		return PatternKnownNounFuzzy
	}
	return PatternKnownNounExact
}

func commandCandidates(candidates []vocab.KnownTerm) []vocab.KnownTerm {
	var out []vocab.KnownTerm
	for _, c := range candidates {
		if c.Kind == vocab.KindPanel || c.Kind == vocab.KindAction {
			out = append(out, c)
		}
	}
	return out
}

// docSlugForTerm derives the doc slug conventionally paired with a term.
func docSlugForTerm(term vocab.KnownTerm) string {
	return strings.ReplaceAll(strings.ToLower(term.Term), " ", "-")
}

// docOptions builds clarification pills from a retrieval result, using
// corpus titles where available.
func docOptions(result docs.RetrievalResult, corpus *docs.Corpus) []store.Option {
	titles := map[string]string{}
	if corpus != nil {
		for _, r := range corpus.Records {
			if _, ok := titles[r.Slug]; !ok {
				titles[r.Slug] = r.Title
			}
		}
	}

	var slugs []string
	if result.TopSlug != "" {
		slugs = append(slugs, result.TopSlug)
	}
	slugs = append(slugs, result.AltSlugs...)

	options := make([]store.Option, 0, len(slugs))
	for _, slug := range slugs {
		label := titles[slug]
		if label == "" {
			label = slug
		}
		options = append(options, store.Option{Label: label, DocSlug: slug})
	}
	return options
}

// resolveSelection matches free-text input against the pending option list:
// ordinal words, 1-based numbers, badge letters, then label overlap.
func resolveSelection(raw string, options []store.Option) (store.Option, bool) {
	phrase := canonicalPhrase(raw)

	ordinals := map[string]int{
		"1": 0, "one": 0, "first": 0, "first one": 0, "the first": 0, "the first one": 0,
		"2": 1, "two": 1, "second": 1, "second one": 1, "the second": 1, "the second one": 1,
		"3": 2, "three": 2, "third": 2, "third one": 2, "the third": 2, "the third one": 2,
		"4": 3, "four": 3, "fourth": 3,
		"5": 4, "five": 4, "fifth": 4,
	}
	if idx, ok := ordinals[phrase]; ok && idx < len(options) {
		return options[idx], true
	}

	// Single-letter badge answer ("d", "the d one").
	letter := strings.TrimSuffix(strings.TrimPrefix(phrase, "the "), " one")
	if len(letter) == 1 {
		for _, opt := range options {
			if strings.EqualFold(opt.Badge, letter) {
				return opt, true
			}
		}
	}

	// Label match: all input tokens appear in exactly one option label.
	tokens := normalize.Tokens(raw)
	if len(tokens) == 0 {
		return store.Option{}, false
	}
	var matched []store.Option
	for _, opt := range options {
		labelSet := tokenSetOf(normalize.Label(opt.Label))
		all := true
		for _, tok := range tokens {
			if !labelSet[tok] {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, opt)
		}
	}
	if len(matched) == 1 {
		return matched[0], true
	}
	return store.Option{}, false
}

func tokenSetOf(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// isWidgetQuestion recognizes a question about the visible widget instance:
// deictic framing ("what is this", "what does this do") or an explanation
// question naming the visible panel.
func isWidgetQuestion(raw string, w *store.WidgetContext) bool {
	lower := strings.ToLower(raw)
	if !hasIntentCue(raw) {
		return false
	}
	deictic := strings.Contains(lower, "this") || strings.Contains(lower, "these") ||
		strings.Contains(lower, "here") || strings.Contains(lower, "on screen") ||
		strings.Contains(lower, "on my screen")
	if deictic {
		return true
	}
	return w.PanelName != "" && strings.Contains(lower, strings.ToLower(w.PanelName)) &&
		w.Badge != "" && strings.Contains(lower, strings.ToLower(w.Badge))
}
