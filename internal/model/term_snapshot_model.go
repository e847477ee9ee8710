package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TermSnapshot struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Version    string         `gorm:"type:varchar(40);not null;index"`
	Hash       string         `gorm:"type:varchar(64);not null"`
	Terms      datatypes.JSON `gorm:"type:jsonb;not null"`
	CapturedAt time.Time      `gorm:"not null;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (TermSnapshot) TableName() string {
	return "term_snapshots"
}
