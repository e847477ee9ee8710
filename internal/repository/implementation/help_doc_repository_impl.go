package implementation

import (
	"context"

	"shell-assistant-be/internal/entity"
	"shell-assistant-be/internal/model"
	"shell-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type helpDocRepository struct {
	db *gorm.DB
}

// NewHelpDocRepository creates a new help doc repository
func NewHelpDocRepository(db *gorm.DB) contract.IHelpDocRepository {
	return &helpDocRepository{db: db}
}

func (r *helpDocRepository) FindAll(ctx context.Context) ([]*entity.HelpDoc, error) {
	var models []model.HelpDoc
	if err := r.db.WithContext(ctx).Order("slug ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.HelpDoc, len(models))
	for i, m := range models {
		entities[i] = docModelToEntity(&m)
	}
	return entities, nil
}

func (r *helpDocRepository) FindBySlug(ctx context.Context, slug string) (*entity.HelpDoc, error) {
	var m model.HelpDoc
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return docModelToEntity(&m), nil
}

func (r *helpDocRepository) Create(ctx context.Context, doc *entity.HelpDoc) error {
	if doc.Id == uuid.Nil {
		doc.Id = uuid.New()
	}
	m := docEntityToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	doc.Id = m.Id
	return nil
}

func (r *helpDocRepository) Update(ctx context.Context, doc *entity.HelpDoc) error {
	m := docEntityToModel(doc)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *helpDocRepository) FindAllAliases(ctx context.Context) ([]*entity.DocAlias, error) {
	var models []model.DocAlias
	if err := r.db.WithContext(ctx).Order("surface ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.DocAlias, len(models))
	for i, m := range models {
		entities[i] = aliasModelToEntity(&m)
	}
	return entities, nil
}

func (r *helpDocRepository) UpsertAlias(ctx context.Context, alias *entity.DocAlias) error {
	if alias.Id == uuid.Nil {
		alias.Id = uuid.New()
	}
	m := aliasEntityToModel(alias)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "surface"}},
		DoUpdates: clause.AssignmentColumns([]string{"canonical", "target_slug", "boost"}),
	}).Create(m).Error
}

// Mappers

func docModelToEntity(m *model.HelpDoc) *entity.HelpDoc {
	return &entity.HelpDoc{
		Id:          m.Id,
		Slug:        m.Slug,
		Category:    m.Category,
		Title:       m.Title,
		Content:     m.Content,
		ContentHash: m.ContentHash,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func docEntityToModel(e *entity.HelpDoc) *model.HelpDoc {
	return &model.HelpDoc{
		Id:          e.Id,
		Slug:        e.Slug,
		Category:    e.Category,
		Title:       e.Title,
		Content:     e.Content,
		ContentHash: e.ContentHash,
		Version:     e.Version,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func aliasModelToEntity(m *model.DocAlias) *entity.DocAlias {
	return &entity.DocAlias{
		Id:         m.Id,
		Surface:    m.Surface,
		Canonical:  m.Canonical,
		TargetSlug: m.TargetSlug,
		Boost:      m.Boost,
		CreatedAt:  m.CreatedAt,
	}
}

func aliasEntityToModel(e *entity.DocAlias) *model.DocAlias {
	return &model.DocAlias{
		Id:         e.Id,
		Surface:    e.Surface,
		Canonical:  e.Canonical,
		TargetSlug: e.TargetSlug,
		Boost:      e.Boost,
		CreatedAt:  e.CreatedAt,
	}
}
