package unitofwork

import (
	"context"

	"shell-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	HelpDocRepository() contract.IHelpDocRepository
	TermSnapshotRepository() contract.ITermSnapshotRepository
}
