package entity

import (
	"time"

	"github.com/google/uuid"
)

// HelpDoc is one entry of the curated documentation corpus.
type HelpDoc struct {
	Id          uuid.UUID
	Slug        string
	Category    string
	Title       string
	Content     string
	ContentHash string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocAlias maps a vague surface term onto its canonical form and the corpus
// document it should reinforce.
type DocAlias struct {
	Id         uuid.UUID
	Surface    string
	Canonical  string
	TargetSlug string
	Boost      float64
	CreatedAt  time.Time
}
