package events

import (
	"time"

	"shell-assistant-be/pkg/dispatch"
)

// EventDocRoutingDecision is emitted once per turn that reaches document
// retrieval, regardless of outcome.
const EventDocRoutingDecision = "DOC_ROUTING_DECISION"

// RoutingDecided wraps one turn's routing telemetry as a bus event.
type RoutingDecided struct {
	SessionID  string
	Telemetry  dispatch.TurnTelemetry
	OccurredAt time.Time
}

func (e RoutingDecided) EventType() string {
	return EventDocRoutingDecision
}

func (e RoutingDecided) Payload() map[string]interface{} {
	t := e.Telemetry
	return map[string]interface{}{
		"session_id":               e.SessionID,
		"input_len":                t.InputLen,
		"normalized_query":         t.NormalizedQuery,
		"route_deterministic":      t.RouteDeterministic,
		"route_final":              t.RouteFinal,
		"matched_pattern_id":       string(t.MatchedPatternID),
		"known_terms_loaded":       t.KnownTermsLoaded,
		"classifier_called":        t.ClassifierCalled,
		"classifier_confidence":    t.ClassifierConfidence,
		"classifier_timeout":       t.ClassifierTimeout,
		"doc_status":               t.DocStatus,
		"doc_slug_top":             t.DocSlugTop,
		"doc_slug_alt":             t.DocSlugAlt,
		"followup_detected":        t.FollowupDetected,
		"last_doc_slug_present":    t.LastDocSlugPresent,
		"user_corrected_next_turn": t.UserCorrectedNextTurn,
	}
}

func (e RoutingDecided) Timestamp() time.Time {
	return e.OccurredAt
}
