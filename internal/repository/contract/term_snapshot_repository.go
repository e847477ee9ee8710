package contract

import (
	"context"

	"shell-assistant-be/internal/entity"
)

// ITermSnapshotRepository defines known-term snapshot storage.
type ITermSnapshotRepository interface {
	FindLatest(ctx context.Context) (*entity.TermSnapshot, error)
	Create(ctx context.Context, snap *entity.TermSnapshot) error
}
