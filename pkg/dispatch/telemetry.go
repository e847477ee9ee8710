package dispatch

// TurnTelemetry captures the doc_routing_decision event payload for a turn
// routed through Tier 5. One event per such turn, emitted regardless of
// outcome.
type TurnTelemetry struct {
	InputLen              int       `json:"input_len"`
	NormalizedQuery       string    `json:"normalized_query"`
	RouteDeterministic    bool      `json:"route_deterministic"`
	RouteFinal            string    `json:"route_final"`
	MatchedPatternID      PatternID `json:"matched_pattern_id"`
	KnownTermsLoaded      int       `json:"known_terms_loaded"`
	ClassifierCalled      bool      `json:"classifier_called"`
	ClassifierConfidence  float64   `json:"classifier_confidence"`
	ClassifierTimeout     bool      `json:"classifier_timeout"`
	DocStatus             string    `json:"doc_status"`
	DocSlugTop            string    `json:"doc_slug_top"`
	DocSlugAlt            []string  `json:"doc_slug_alt"`
	FollowupDetected      bool      `json:"followup_detected"`
	LastDocSlugPresent    bool      `json:"last_doc_slug_present"`
	UserCorrectedNextTurn bool      `json:"user_corrected_next_turn"`
}
