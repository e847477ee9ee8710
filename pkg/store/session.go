package store

import "time"

// Option is one selectable choice previously shown to the user
// (a disambiguation pill, a clarification entry, or a suggestion candidate).
type Option struct {
	Label   string `json:"label"`
	PanelID string `json:"panel_id,omitempty"`
	Badge   string `json:"badge,omitempty"`
	DocSlug string `json:"doc_slug,omitempty"`
}

// Suggestion is a candidate set previously offered to the user and still
// awaiting an affirm or reject.
type Suggestion struct {
	SetID      string    `json:"set_id"`
	Candidates []Option  `json:"candidates"`
	OfferedAt  time.Time `json:"offered_at"`
}

// WidgetContext describes the panel/widget currently visible in the shell,
// as reported by the client with each turn.
type WidgetContext struct {
	PanelID   string `json:"panel_id"`
	PanelName string `json:"panel_name"`
	Badge     string `json:"badge,omitempty"`
}

// ConversationState is the per-session mutable record consumed and replaced
// by the dispatcher each turn. The dispatcher treats it as immutable-in,
// immutable-out: a tier that changes anything works on a Clone and the whole
// record is swapped at end of turn, never mutated field-by-field mid-turn.
type ConversationState struct {
	ID     string `json:"id"` // chat session id
	UserID string `json:"user_id"`

	// Clarification/selection group. Any tier that executes a command must
	// clear ALL of these together (see ClearSelection).
	LastClarification     string         `json:"last_clarification"`
	PendingOptions        []Option       `json:"pending_options"`
	ActiveOptionSetID     string         `json:"active_option_set_id"`
	LastOptionsShown      []Option       `json:"last_options_shown"`
	ClarificationSnapshot string         `json:"clarification_snapshot"`
	WidgetSelection       *WidgetContext `json:"widget_selection,omitempty"`

	// Follow-up state: the last confidently answered document.
	LastDocSlug string `json:"last_doc_slug"`

	// Suggestion machine state.
	LastSuggestion      *Suggestion     `json:"last_suggestion,omitempty"`
	RejectedSuggestions map[string]bool `json:"rejected_suggestions"`

	LastQuery string `json:"last_query"`
}

// NewConversationState creates the initial state for a session.
func NewConversationState(id, userID string) *ConversationState {
	return &ConversationState{
		ID:                  id,
		UserID:              userID,
		RejectedSuggestions: map[string]bool{},
	}
}

// Clone returns a deep copy so a tier can replace state wholesale without
// aliasing slices or maps still referenced by the previous turn.
func (s *ConversationState) Clone() *ConversationState {
	next := *s
	next.PendingOptions = append([]Option(nil), s.PendingOptions...)
	next.LastOptionsShown = append([]Option(nil), s.LastOptionsShown...)
	next.RejectedSuggestions = make(map[string]bool, len(s.RejectedSuggestions))
	for k, v := range s.RejectedSuggestions {
		next.RejectedSuggestions[k] = v
	}
	if s.LastSuggestion != nil {
		sug := *s.LastSuggestion
		sug.Candidates = append([]Option(nil), s.LastSuggestion.Candidates...)
		next.LastSuggestion = &sug
	}
	if s.WidgetSelection != nil {
		w := *s.WidgetSelection
		next.WidgetSelection = &w
	}
	return &next
}

// ClearSelection wipes the full clarification/selection field group. Command
// execution goes through here so no stale pill state can survive a partial
// clear.
func (s *ConversationState) ClearSelection() {
	s.LastClarification = ""
	s.PendingOptions = nil
	s.ActiveOptionSetID = ""
	s.LastOptionsShown = nil
	s.ClarificationSnapshot = ""
	s.WidgetSelection = nil
}

// ClearSuggestion drops the pending suggestion without recording a verdict.
func (s *ConversationState) ClearSuggestion() {
	s.LastSuggestion = nil
}

// RejectSuggestion records the offered set so it is not re-offered this
// session, then clears it.
func (s *ConversationState) RejectSuggestion() {
	if s.LastSuggestion != nil {
		if s.RejectedSuggestions == nil {
			s.RejectedSuggestions = map[string]bool{}
		}
		s.RejectedSuggestions[s.LastSuggestion.SetID] = true
	}
	s.LastSuggestion = nil
}

// HasActiveClarification reports whether a clarification/selection list is
// pending from a prior turn.
func (s *ConversationState) HasActiveClarification() bool {
	return len(s.PendingOptions) > 0 || s.LastClarification != ""
}
