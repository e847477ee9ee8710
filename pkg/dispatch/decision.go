package dispatch

import "shell-assistant-be/pkg/store"

// Action is the closed set of decision tags consumed by the executor.
type Action string

const (
	ActionExecutePanel     Action = "execute_panel"
	ActionDisambiguate     Action = "disambiguate"
	ActionClarify          Action = "clarify"
	ActionRetrieveDoc      Action = "retrieve_doc_response"
	ActionAffirmSuggestion Action = "affirm_suggestion"
	ActionRejectSuggestion Action = "reject_suggestion"
	ActionPassthrough      Action = "passthrough"
)

// PatternID identifies which deterministic rule claimed a turn. Values are
// a stable, additive-only enum: telemetry consumers key on them across
// releases.
type PatternID string

const (
	PatternStopCancel         PatternID = "stop_cancel"
	PatternResumeRepair       PatternID = "resume_repair"
	PatternInterruptCommand   PatternID = "interrupt_command"
	PatternSuggestionAffirm   PatternID = "suggestion_affirm"
	PatternSuggestionReoffer  PatternID = "suggestion_reoffer"
	PatternSuggestionReject   PatternID = "suggestion_reject"
	PatternClarifySelection   PatternID = "clarification_selection"
	PatternKnownNounExact     PatternID = "known_noun_exact"
	PatternKnownNounFuzzy     PatternID = "known_noun_fuzzy"
	PatternBadgeDisambiguate  PatternID = "badge_disambiguation"
	PatternBadgeNotFound      PatternID = "badge_not_found"
	PatternOpenOrExplain      PatternID = "open_or_explain"
	PatternGroundingSet       PatternID = "grounding_set"
	PatternWidgetContext      PatternID = "widget_context"
	PatternDocFound           PatternID = "doc_found"
	PatternDocWeak            PatternID = "doc_weak"
	PatternDocAmbiguous       PatternID = "doc_ambiguous"
	PatternDocNoMatch         PatternID = "doc_no_match"
	PatternAppOrOtherClarify  PatternID = "app_or_other_clarify"
	PatternClassifierFallback PatternID = "classifier_fallback"
	PatternNone               PatternID = "none"
)

// Payload carries the action-specific data of a decision.
type Payload struct {
	PanelID string         `json:"panel_id,omitempty"`
	Badge   string         `json:"badge,omitempty"`
	Message string         `json:"message,omitempty"`
	Options []store.Option `json:"options,omitempty"`
	DocSlug string         `json:"doc_slug,omitempty"`
	AltDocs []string       `json:"alt_docs,omitempty"`
	Score   float64        `json:"score,omitempty"`
}

// RoutingDecision is the single, ephemeral output of one routed turn. The
// caller derives all side effects and telemetry from it; it is never
// persisted.
type RoutingDecision struct {
	Handled bool      `json:"handled"`
	Action  Action    `json:"action"`
	Pattern PatternID `json:"pattern"`
	Payload Payload   `json:"payload"`
}
