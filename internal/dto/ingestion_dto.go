package dto

// DocPayload is one document in a corpus sync request.
type DocPayload struct {
	Slug     string `json:"slug" validate:"required,max=120"`
	Category string `json:"category" validate:"required,max=80"`
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
}

type AliasPayload struct {
	Surface    string  `json:"surface" validate:"required,max=120"`
	Canonical  string  `json:"canonical" validate:"required,max=120"`
	TargetSlug string  `json:"target_slug" validate:"required,max=120"`
	Boost      float64 `json:"boost"`
}

type SyncDocsRequest struct {
	Docs    []DocPayload   `json:"docs" validate:"required,dive"`
	Aliases []AliasPayload `json:"aliases" validate:"dive"`
}

type SyncDocsResponse struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

type TermPayload struct {
	Term    string `json:"term" validate:"required,max=120"`
	Kind    string `json:"kind" validate:"required,oneof=panel concept action"`
	PanelID string `json:"panel_id,omitempty"`
	Badge   string `json:"badge,omitempty"`
}

type SyncTermsRequest struct {
	Version string        `json:"version" validate:"required,max=40"`
	Terms   []TermPayload `json:"terms" validate:"required,dive"`
}

type SyncTermsResponse struct {
	Version string `json:"version"`
	Hash    string `json:"hash"`
	Count   int    `json:"count"`
}
