package contract

import (
	"context"

	"shell-assistant-be/internal/entity"
)

// IHelpDocRepository defines corpus storage operations.
type IHelpDocRepository interface {
	FindAll(ctx context.Context) ([]*entity.HelpDoc, error)
	FindBySlug(ctx context.Context, slug string) (*entity.HelpDoc, error)
	Create(ctx context.Context, doc *entity.HelpDoc) error
	Update(ctx context.Context, doc *entity.HelpDoc) error

	FindAllAliases(ctx context.Context) ([]*entity.DocAlias, error)
	UpsertAlias(ctx context.Context, alias *entity.DocAlias) error
}
