package service

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"shell-assistant-be/internal/dto"
	"shell-assistant-be/internal/repository/memory"
	"shell-assistant-be/pkg/dispatch"
	"shell-assistant-be/pkg/docs"
	"shell-assistant-be/pkg/events"
	"shell-assistant-be/pkg/vocab"

	"github.com/stretchr/testify/assert"
)

type fakeIngestion struct {
	corpus  *docs.Corpus
	terms   *vocab.Store
	aliases docs.AliasTable
}

func (f *fakeIngestion) Bootstrap(ctx context.Context) error { return nil }
func (f *fakeIngestion) SyncDocs(ctx context.Context, req *dto.SyncDocsRequest) (*dto.SyncDocsResponse, error) {
	return nil, nil
}
func (f *fakeIngestion) SyncTerms(ctx context.Context, req *dto.SyncTermsRequest) (*dto.SyncTermsResponse, error) {
	return nil, nil
}
func (f *fakeIngestion) Corpus() *docs.Corpus     { return f.corpus }
func (f *fakeIngestion) Aliases() docs.AliasTable { return f.aliases }
func (f *fakeIngestion) Terms() *vocab.Store      { return f.terms }
func (f *fakeIngestion) RefreshTerms(ctx context.Context) (*vocab.Store, error) {
	return f.terms, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.RoutingDecided
}

func (f *fakePublisher) PublishRoutingDecision(event events.RoutingDecided) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) published() []events.RoutingDecided {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.RoutingDecided(nil), f.events...)
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error {
	return nil
}

func newTestAssistant(t *testing.T) (IAssistantService, *fakePublisher, *memory.SessionRepository) {
	t.Helper()

	terms := []vocab.KnownTerm{
		{Term: "workspace", Kind: vocab.KindPanel, PanelID: "workspace"},
		{Term: "settings", Kind: vocab.KindPanel, PanelID: "settings"},
	}
	ingestion := &fakeIngestion{
		corpus: docs.NewCorpus([]docs.DocumentRecord{
			{Slug: "workspace", Category: "basics", Title: "Workspace", Content: "Your home area."},
			{Slug: "settings", Category: "preferences", Title: "Settings", Content: "Change appearance."},
		}),
		terms: vocab.Load(vocab.Snapshot{
			Version:    "test",
			Hash:       vocab.HashTerms(terms),
			CapturedAt: time.Now(),
			Terms:      terms,
		}, time.Hour),
	}

	dispatcher := dispatch.NewDispatcher(
		vocab.NewMatcher(nil),
		docs.NewEngine(docs.DefaultConfig(), nil),
		ingestion,
		ingestion.Corpus,
		ingestion.Aliases,
		nil,
		50*time.Millisecond,
		log.New(io.Discard, "", 0),
	)

	sessions := memory.NewSessionRepository()
	publisher := &fakePublisher{}
	svc := NewAssistantService(sessions, dispatcher, ingestion, publisher, noopLogger{})
	return svc, publisher, sessions
}

func TestCreateSession(t *testing.T) {
	svc, _, sessions := newTestAssistant(t)

	res := svc.CreateSession(context.Background())
	assert.NotEmpty(t, res.SessionID)

	_, found := sessions.Get(res.SessionID)
	assert.True(t, found)
}

func TestHandleTurnExecutesPanel(t *testing.T) {
	svc, publisher, _ := newTestAssistant(t)
	session := svc.CreateSession(context.Background())

	res, err := svc.HandleTurn(context.Background(), &dto.TurnRequest{
		SessionID: session.SessionID,
		Message:   "open settings",
	})
	assert.NoError(t, err)
	assert.True(t, res.Handled)
	assert.Equal(t, "execute_panel", res.Action)
	assert.Equal(t, "settings", res.PanelID)

	// Command tiers never produce retrieval telemetry.
	assert.Empty(t, publisher.published())
}

func TestHandleTurnDocResponseCarriesContent(t *testing.T) {
	svc, _, _ := newTestAssistant(t)
	session := svc.CreateSession(context.Background())

	res, err := svc.HandleTurn(context.Background(), &dto.TurnRequest{
		SessionID: session.SessionID,
		Message:   "what is workspace",
	})
	assert.NoError(t, err)
	assert.Equal(t, "retrieve_doc_response", res.Action)
	assert.Equal(t, "workspace", res.DocSlug)
	assert.Equal(t, "Workspace", res.DocTitle)
	assert.Equal(t, "Your home area.", res.DocBody)
}

func TestTelemetryHeldUntilNextTurn(t *testing.T) {
	svc, publisher, _ := newTestAssistant(t)
	session := svc.CreateSession(context.Background())

	_, err := svc.HandleTurn(context.Background(), &dto.TurnRequest{
		SessionID: session.SessionID,
		Message:   "what is workspace",
	})
	assert.NoError(t, err)
	assert.Empty(t, publisher.published(), "telemetry must be held until the correction signal is known")

	_, err = svc.HandleTurn(context.Background(), &dto.TurnRequest{
		SessionID: session.SessionID,
		Message:   "stop",
	})
	assert.NoError(t, err)

	published := publisher.published()
	if assert.Len(t, published, 1) {
		assert.Equal(t, session.SessionID, published[0].SessionID)
		assert.True(t, published[0].Telemetry.UserCorrectedNextTurn,
			"an immediate stop marks the previous doc turn as corrected")
		assert.Equal(t, dispatch.PatternDocFound, published[0].Telemetry.MatchedPatternID)
	}
}

func TestTelemetryNotCorrectedByOrdinaryNextTurn(t *testing.T) {
	svc, publisher, _ := newTestAssistant(t)
	session := svc.CreateSession(context.Background())

	_, _ = svc.HandleTurn(context.Background(), &dto.TurnRequest{
		SessionID: session.SessionID,
		Message:   "what is workspace",
	})
	_, _ = svc.HandleTurn(context.Background(), &dto.TurnRequest{
		SessionID: session.SessionID,
		Message:   "what is settings",
	})

	published := publisher.published()
	if assert.Len(t, published, 1) {
		assert.False(t, published[0].Telemetry.UserCorrectedNextTurn)
	}
}

func TestEndSessionFlushesPendingTelemetry(t *testing.T) {
	svc, publisher, sessions := newTestAssistant(t)
	session := svc.CreateSession(context.Background())

	_, _ = svc.HandleTurn(context.Background(), &dto.TurnRequest{
		SessionID: session.SessionID,
		Message:   "what is workspace",
	})
	svc.EndSession(context.Background(), session.SessionID)

	published := publisher.published()
	if assert.Len(t, published, 1) {
		assert.False(t, published[0].Telemetry.UserCorrectedNextTurn)
	}

	_, found := sessions.Get(session.SessionID)
	assert.False(t, found)
}

func TestHandleTurnUnknownSessionStartsFresh(t *testing.T) {
	svc, _, sessions := newTestAssistant(t)

	res, err := svc.HandleTurn(context.Background(), &dto.TurnRequest{
		SessionID: "never-created",
		Message:   "open settings",
	})
	assert.NoError(t, err)
	assert.Equal(t, "execute_panel", res.Action)

	_, found := sessions.Get("never-created")
	assert.True(t, found)
}
