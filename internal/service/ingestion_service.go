// FILE: internal/service/ingestion_service.go
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"shell-assistant-be/internal/dto"
	"shell-assistant-be/internal/entity"
	"shell-assistant-be/internal/pkg/logger"
	"shell-assistant-be/internal/repository/unitofwork"
	"shell-assistant-be/pkg/dispatch"
	"shell-assistant-be/pkg/docs"
	"shell-assistant-be/pkg/vocab"
)

// infraError wraps a storage failure so the HTTP error handler can map it to
// the infrastructure status instead of a generic 500 with no classification.
func infraError(msg string, err error) error {
	return dispatch.NewRouteError(dispatch.KindInfrastructure, msg, err)
}

type IIngestionService interface {
	// Bootstrap loads the persisted corpus, aliases and latest term snapshot
	// into the live registry. Called once at startup.
	Bootstrap(ctx context.Context) error

	SyncDocs(ctx context.Context, req *dto.SyncDocsRequest) (*dto.SyncDocsResponse, error)
	SyncTerms(ctx context.Context, req *dto.SyncTermsRequest) (*dto.SyncTermsResponse, error)

	// Live registry accessors. Each call returns the current immutable
	// snapshot; syncs swap the pointer, in-flight turns keep their view.
	Corpus() *docs.Corpus
	Aliases() docs.AliasTable
	Terms() *vocab.Store

	// RefreshTerms reloads the latest persisted term snapshot and swaps the
	// live store. The dispatcher calls it when the active snapshot is stale.
	RefreshTerms(ctx context.Context) (*vocab.Store, error)
}

type ingestionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	termTTL    time.Duration

	corpus  atomic.Pointer[docs.Corpus]
	aliases atomic.Pointer[docs.AliasTable]
	terms   atomic.Pointer[vocab.Store]
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
	termTTL time.Duration,
) IIngestionService {
	s := &ingestionService{
		uowFactory: uowFactory,
		logger:     log,
		termTTL:    termTTL,
	}
	// Safe zero state before Bootstrap: empty corpus, bootstrap vocabulary.
	s.corpus.Store(docs.NewCorpus(nil))
	empty := docs.AliasTable{}
	s.aliases.Store(&empty)
	s.terms.Store(vocab.Load(vocab.Snapshot{}, termTTL))
	return s
}

func (s *ingestionService) Corpus() *docs.Corpus     { return s.corpus.Load() }
func (s *ingestionService) Aliases() docs.AliasTable { return *s.aliases.Load() }
func (s *ingestionService) Terms() *vocab.Store      { return s.terms.Load() }

func (s *ingestionService) RefreshTerms(ctx context.Context) (*vocab.Store, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	snap, err := uow.TermSnapshotRepository().FindLatest(ctx)
	if err != nil {
		return nil, infraError("failed to reload term snapshot", err)
	}
	if snap == nil {
		// Nothing persisted yet; the caller keeps the current store.
		return s.Terms(), nil
	}

	fresh := s.Terms().Refresh(vocab.Snapshot{
		Version:    snap.Version,
		Hash:       snap.Hash,
		CapturedAt: snap.CapturedAt,
		Terms:      snap.Terms,
	})
	s.terms.Store(fresh)

	s.logger.Info("Ingestion", "Term snapshot reloaded", map[string]interface{}{
		"version": fresh.Version(), "terms": fresh.Len(),
	})
	return fresh, nil
}

func (s *ingestionService) Bootstrap(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	allDocs, err := uow.HelpDocRepository().FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load help docs: %w", err)
	}
	aliases, err := uow.HelpDocRepository().FindAllAliases(ctx)
	if err != nil {
		return fmt.Errorf("failed to load doc aliases: %w", err)
	}
	s.swapCorpus(allDocs, aliases)

	snap, err := uow.TermSnapshotRepository().FindLatest(ctx)
	if err != nil {
		return fmt.Errorf("failed to load term snapshot: %w", err)
	}
	if snap != nil {
		s.terms.Store(vocab.Load(vocab.Snapshot{
			Version:    snap.Version,
			Hash:       snap.Hash,
			CapturedAt: snap.CapturedAt,
			Terms:      snap.Terms,
		}, s.termTTL))
	}

	s.logger.Info("Ingestion", "Registry bootstrapped", map[string]interface{}{
		"docs":    len(allDocs),
		"aliases": len(aliases),
		"terms":   s.Terms().Len(),
	})
	return nil
}

// SyncDocs upserts the corpus. An incoming doc whose content hash matches
// the stored row is a no-op; changed content bumps the version.
func (s *ingestionService) SyncDocs(ctx context.Context, req *dto.SyncDocsRequest) (*dto.SyncDocsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.HelpDocRepository()
	res := &dto.SyncDocsResponse{}

	for _, d := range req.Docs {
		hash := docs.ContentHash(d.Content)

		existing, err := repo.FindBySlug(ctx, d.Slug)
		if err != nil {
			return nil, infraError("failed to look up doc "+d.Slug, err)
		}

		if existing == nil {
			err = repo.Create(ctx, &entity.HelpDoc{
				Slug:        d.Slug,
				Category:    d.Category,
				Title:       d.Title,
				Content:     d.Content,
				ContentHash: hash,
				Version:     1,
			})
			if err != nil {
				return nil, infraError("failed to insert doc "+d.Slug, err)
			}
			res.Created++
			continue
		}

		if existing.ContentHash == hash && existing.Title == d.Title && existing.Category == d.Category {
			res.Unchanged++
			continue
		}

		existing.Category = d.Category
		existing.Title = d.Title
		existing.Content = d.Content
		existing.ContentHash = hash
		existing.Version++
		if err := repo.Update(ctx, existing); err != nil {
			return nil, infraError("failed to update doc "+d.Slug, err)
		}
		res.Updated++
	}

	for _, a := range req.Aliases {
		err := repo.UpsertAlias(ctx, &entity.DocAlias{
			Surface:    a.Surface,
			Canonical:  a.Canonical,
			TargetSlug: a.TargetSlug,
			Boost:      a.Boost,
		})
		if err != nil {
			return nil, infraError("failed to upsert alias "+a.Surface, err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, infraError("failed to commit doc sync", err)
	}

	// Reload the live registry from the committed state.
	freshUow := s.uowFactory.NewUnitOfWork(ctx)
	allDocs, err := freshUow.HelpDocRepository().FindAll(ctx)
	if err != nil {
		return nil, infraError("failed to reload corpus", err)
	}
	aliases, err := freshUow.HelpDocRepository().FindAllAliases(ctx)
	if err != nil {
		return nil, infraError("failed to reload aliases", err)
	}
	s.swapCorpus(allDocs, aliases)

	s.logger.Info("Ingestion", "Corpus synced", map[string]interface{}{
		"created": res.Created, "updated": res.Updated, "unchanged": res.Unchanged,
	})
	return res, nil
}

// SyncTerms persists a new known-term snapshot and swaps the live store.
func (s *ingestionService) SyncTerms(ctx context.Context, req *dto.SyncTermsRequest) (*dto.SyncTermsResponse, error) {
	terms := make([]vocab.KnownTerm, 0, len(req.Terms))
	for _, t := range req.Terms {
		terms = append(terms, vocab.KnownTerm{
			Term:    t.Term,
			Kind:    vocab.TermKind(t.Kind),
			PanelID: t.PanelID,
			Badge:   t.Badge,
		})
	}

	snap := vocab.Snapshot{
		Version:    req.Version,
		Hash:       vocab.HashTerms(terms),
		CapturedAt: time.Now(),
		Terms:      terms,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.TermSnapshotRepository().Create(ctx, &entity.TermSnapshot{
		Version:    snap.Version,
		Hash:       snap.Hash,
		Terms:      snap.Terms,
		CapturedAt: snap.CapturedAt,
	})
	if err != nil {
		return nil, infraError("failed to persist term snapshot", err)
	}

	s.terms.Store(s.Terms().Refresh(snap))

	s.logger.Info("Ingestion", "Term snapshot synced", map[string]interface{}{
		"version": snap.Version, "count": len(terms),
	})
	return &dto.SyncTermsResponse{
		Version: snap.Version,
		Hash:    snap.Hash,
		Count:   len(terms),
	}, nil
}

func (s *ingestionService) swapCorpus(allDocs []*entity.HelpDoc, aliases []*entity.DocAlias) {
	records := make([]docs.DocumentRecord, 0, len(allDocs))
	for _, d := range allDocs {
		records = append(records, docs.DocumentRecord{
			Slug:        d.Slug,
			Category:    d.Category,
			Title:       d.Title,
			Content:     d.Content,
			ContentHash: d.ContentHash,
			Version:     fmt.Sprintf("%d", d.Version),
		})
	}
	s.corpus.Store(docs.NewCorpus(records))

	table := make(docs.AliasTable, len(aliases))
	for _, a := range aliases {
		table[a.Surface] = docs.Alias{
			Canonical:  a.Canonical,
			TargetSlug: a.TargetSlug,
			Boost:      a.Boost,
		}
	}
	s.aliases.Store(&table)
}
