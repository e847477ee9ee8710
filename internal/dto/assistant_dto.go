package dto

// WidgetContextPayload is the client-reported shell context for a turn.
type WidgetContextPayload struct {
	PanelID   string `json:"panel_id"`
	PanelName string `json:"panel_name"`
	Badge     string `json:"badge"`
}

type TurnRequest struct {
	SessionID string                `json:"session_id" validate:"required"`
	Message   string                `json:"message" validate:"required,max=2000"`
	Widget    *WidgetContextPayload `json:"widget,omitempty"`
}

type TurnOption struct {
	Label   string `json:"label"`
	PanelID string `json:"panel_id,omitempty"`
	Badge   string `json:"badge,omitempty"`
	DocSlug string `json:"doc_slug,omitempty"`
}

type TurnResponse struct {
	SessionID string       `json:"session_id"`
	Handled   bool         `json:"handled"`
	Action    string       `json:"action"`
	Pattern   string       `json:"pattern"`
	PanelID   string       `json:"panel_id,omitempty"`
	Badge     string       `json:"badge,omitempty"`
	Message   string       `json:"message,omitempty"`
	Options   []TurnOption `json:"options,omitempty"`
	DocSlug   string       `json:"doc_slug,omitempty"`
	DocTitle  string       `json:"doc_title,omitempty"`
	DocBody   string       `json:"doc_body,omitempty"`
	AltDocs   []string     `json:"alt_docs,omitempty"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}
