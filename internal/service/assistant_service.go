// FILE: internal/service/assistant_service.go
package service

import (
	"context"
	"sync"
	"time"

	"shell-assistant-be/internal/dto"
	"shell-assistant-be/internal/pkg/logger"
	"shell-assistant-be/internal/repository/memory"
	"shell-assistant-be/pkg/dispatch"
	"shell-assistant-be/pkg/events"
	"shell-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type IAssistantService interface {
	CreateSession(ctx context.Context) *dto.CreateSessionResponse
	HandleTurn(ctx context.Context, req *dto.TurnRequest) (*dto.TurnResponse, error)
	EndSession(ctx context.Context, sessionID string)
}

type assistantService struct {
	sessions   *memory.SessionRepository
	dispatcher *dispatch.Dispatcher
	ingestion  IIngestionService
	publisher  IPublisherService
	logger     logger.ILogger

	// Telemetry for a turn is held until the NEXT turn so the correction
	// signal can be stamped before the event goes out.
	pendingMu sync.Mutex
	pending   map[string]*dispatch.TurnTelemetry
}

func NewAssistantService(
	sessions *memory.SessionRepository,
	dispatcher *dispatch.Dispatcher,
	ingestion IIngestionService,
	publisher IPublisherService,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		sessions:   sessions,
		dispatcher: dispatcher,
		ingestion:  ingestion,
		publisher:  publisher,
		logger:     log,
		pending:    map[string]*dispatch.TurnTelemetry{},
	}
}

func (s *assistantService) CreateSession(ctx context.Context) *dto.CreateSessionResponse {
	id := uuid.NewString()
	s.sessions.Save(id, store.NewConversationState(id, ""))
	s.logger.Info("Assistant", "Session created", map[string]interface{}{"session_id": id})
	return &dto.CreateSessionResponse{SessionID: id}
}

func (s *assistantService) HandleTurn(ctx context.Context, req *dto.TurnRequest) (*dto.TurnResponse, error) {
	state, found := s.sessions.Get(req.SessionID)
	if !found {
		// Expired or unknown sessions start fresh rather than failing the turn.
		state = store.NewConversationState(req.SessionID, "")
	}

	turn := dispatch.Turn{
		SessionID: req.SessionID,
		Message:   req.Message,
		Now:       time.Now(),
	}
	if req.Widget != nil {
		turn.Widget = &store.WidgetContext{
			PanelID:   req.Widget.PanelID,
			PanelName: req.Widget.PanelName,
			Badge:     req.Widget.Badge,
		}
	}

	outcome := s.dispatcher.Route(ctx, turn, state)
	s.sessions.Save(req.SessionID, outcome.State)

	s.flushPending(req.SessionID, outcome.Decision.Pattern)
	if outcome.Telemetry != nil {
		s.holdTelemetry(req.SessionID, outcome.Telemetry)
	}

	return s.buildResponse(req.SessionID, outcome.Decision), nil
}

func (s *assistantService) EndSession(ctx context.Context, sessionID string) {
	s.flushPending(sessionID, dispatch.PatternNone)
	s.sessions.Delete(sessionID)
	s.logger.Info("Assistant", "Session ended", map[string]interface{}{"session_id": sessionID})
}

// flushPending publishes the previous turn's held telemetry, stamping the
// correction flag when the current turn immediately backs out of what the
// previous turn did.
func (s *assistantService) flushPending(sessionID string, currentPattern dispatch.PatternID) {
	s.pendingMu.Lock()
	tel, ok := s.pending[sessionID]
	delete(s.pending, sessionID)
	s.pendingMu.Unlock()
	if !ok {
		return
	}

	tel.UserCorrectedNextTurn = currentPattern == dispatch.PatternStopCancel ||
		currentPattern == dispatch.PatternSuggestionReject

	err := s.publisher.PublishRoutingDecision(events.RoutingDecided{
		SessionID:  sessionID,
		Telemetry:  *tel,
		OccurredAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("Assistant", "Failed to publish routing decision", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

func (s *assistantService) holdTelemetry(sessionID string, tel *dispatch.TurnTelemetry) {
	s.pendingMu.Lock()
	s.pending[sessionID] = tel
	s.pendingMu.Unlock()
}

func (s *assistantService) buildResponse(sessionID string, decision dispatch.RoutingDecision) *dto.TurnResponse {
	res := &dto.TurnResponse{
		SessionID: sessionID,
		Handled:   decision.Handled,
		Action:    string(decision.Action),
		Pattern:   string(decision.Pattern),
		PanelID:   decision.Payload.PanelID,
		Badge:     decision.Payload.Badge,
		Message:   decision.Payload.Message,
		DocSlug:   decision.Payload.DocSlug,
		AltDocs:   decision.Payload.AltDocs,
	}

	for _, opt := range decision.Payload.Options {
		res.Options = append(res.Options, dto.TurnOption{
			Label:   opt.Label,
			PanelID: opt.PanelID,
			Badge:   opt.Badge,
			DocSlug: opt.DocSlug,
		})
	}

	if decision.Action == dispatch.ActionRetrieveDoc && decision.Payload.DocSlug != "" {
		if title, body, ok := s.lookupDoc(decision.Payload.DocSlug); ok {
			res.DocTitle = title
			res.DocBody = body
		}
	}

	return res
}

func (s *assistantService) lookupDoc(slug string) (title, body string, ok bool) {
	corpus := s.ingestion.Corpus()
	if corpus == nil {
		return "", "", false
	}
	for _, rec := range corpus.Records {
		if rec.Slug == slug {
			return rec.Title, rec.Content, true
		}
	}
	return "", "", false
}
