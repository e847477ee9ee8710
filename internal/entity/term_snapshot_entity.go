package entity

import (
	"time"

	"github.com/google/uuid"

	"shell-assistant-be/pkg/vocab"
)

// TermSnapshot is a persisted, versioned known-term set. The newest row is
// what sessions load at startup and on staleness refresh.
type TermSnapshot struct {
	Id         uuid.UUID
	Version    string
	Hash       string
	Terms      []vocab.KnownTerm
	CapturedAt time.Time
	CreatedAt  time.Time
}
