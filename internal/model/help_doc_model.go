package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HelpDoc struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Slug        string         `gorm:"type:varchar(120);uniqueIndex;not null"`
	Category    string         `gorm:"type:varchar(80);not null;index"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Content     string         `gorm:"type:text;not null"`
	ContentHash string         `gorm:"type:varchar(64);not null"`
	Version     int            `gorm:"not null;default:1"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (HelpDoc) TableName() string {
	return "help_docs"
}

type DocAlias struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Surface    string    `gorm:"type:varchar(120);uniqueIndex;not null"`
	Canonical  string    `gorm:"type:varchar(120);not null"`
	TargetSlug string    `gorm:"type:varchar(120);not null;index"`
	Boost      float64   `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (DocAlias) TableName() string {
	return "doc_aliases"
}
