package implementation

import (
	"context"
	"encoding/json"
	"fmt"

	"shell-assistant-be/internal/entity"
	"shell-assistant-be/internal/model"
	"shell-assistant-be/internal/repository/contract"
	"shell-assistant-be/pkg/vocab"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type termSnapshotRepository struct {
	db *gorm.DB
}

// NewTermSnapshotRepository creates a new term snapshot repository
func NewTermSnapshotRepository(db *gorm.DB) contract.ITermSnapshotRepository {
	return &termSnapshotRepository{db: db}
}

func (r *termSnapshotRepository) FindLatest(ctx context.Context) (*entity.TermSnapshot, error) {
	var m model.TermSnapshot
	if err := r.db.WithContext(ctx).Order("captured_at DESC").First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return snapshotModelToEntity(&m)
}

func (r *termSnapshotRepository) Create(ctx context.Context, snap *entity.TermSnapshot) error {
	if snap.Id == uuid.Nil {
		snap.Id = uuid.New()
	}
	m, err := snapshotEntityToModel(snap)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	snap.Id = m.Id
	return nil
}

// Mappers

func snapshotModelToEntity(m *model.TermSnapshot) (*entity.TermSnapshot, error) {
	var terms []vocab.KnownTerm
	if err := json.Unmarshal(m.Terms, &terms); err != nil {
		return nil, fmt.Errorf("failed to decode term snapshot %s: %w", m.Id, err)
	}
	return &entity.TermSnapshot{
		Id:         m.Id,
		Version:    m.Version,
		Hash:       m.Hash,
		Terms:      terms,
		CapturedAt: m.CapturedAt,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func snapshotEntityToModel(e *entity.TermSnapshot) (*model.TermSnapshot, error) {
	raw, err := json.Marshal(e.Terms)
	if err != nil {
		return nil, fmt.Errorf("failed to encode term snapshot: %w", err)
	}
	return &model.TermSnapshot{
		Id:         e.Id,
		Version:    e.Version,
		Hash:       e.Hash,
		Terms:      datatypes.JSON(raw),
		CapturedAt: e.CapturedAt,
		CreatedAt:  e.CreatedAt,
	}, nil
}
