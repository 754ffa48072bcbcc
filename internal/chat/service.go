// Package chat answers user messages and keeps per-session history.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zer3az/chatbot/internal/dispatch"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/session"
	"github.com/zer3az/chatbot/internal/telemetry"
)

// ErrEmptyMessage is returned for a missing or blank message.
var ErrEmptyMessage = errors.New("message is required")

// DefaultHistoryPairs is the number of user/assistant exchanges kept per session.
const DefaultHistoryPairs = 10

// Answerer produces a reply and the name of the service that produced it. *llm.Chain implements it.
type Answerer interface {
	Reply(ctx context.Context, message string, history []session.Message) (string, string)
}

// Request is one incoming chat message.
type Request struct {
	Message   string
	SessionID string
	// History, when non-empty, is used instead of the stored session history.
	History []session.Message
}

// Response is the answer to a Request.
type Response struct {
	Text      string
	SessionID string
	Service   string
}

// Service glues the answerer to the session store.
type Service struct {
	answerer     Answerer
	store        session.Store
	historyPairs int
	log          *logger.Logger
	telemetry    telemetry.Client
	newID        func() string
}

// Option configures a Service.
type Option func(*Service)

// WithHistoryPairs sets how many exchanges are kept per session.
func WithHistoryPairs(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyPairs = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithTelemetry sets the telemetry client.
func WithTelemetry(c telemetry.Client) Option {
	return func(s *Service) { s.telemetry = c }
}

// New creates a chat service.
func New(answerer Answerer, store session.Store, opts ...Option) *Service {
	s := &Service{
		answerer:     answerer,
		store:        store,
		historyPairs: DefaultHistoryPairs,
		log:          logger.Nop(),
		telemetry:    telemetry.Nop{},
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chat answers req. A missing session id is generated. The new exchange is appended
// to the resolved history, trimmed, and stored; a store failure is logged and the answer still returned.
func (s *Service) Chat(ctx context.Context, req Request) (Response, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return Response{}, ErrEmptyMessage
	}

	id := req.SessionID
	if id == "" {
		id = s.newID()
	}

	history := req.History
	fromClient := len(history) > 0
	if !fromClient {
		stored, err := session.Load(ctx, s.store, id)
		if err != nil {
			return Response{}, fmt.Errorf("load session: %w", err)
		}
		history = stored
	}

	logger.SetLastInput(message)
	started := time.Now()
	text, service := s.answerer.Reply(ctx, message, history)
	latency := time.Since(started)
	logger.SetService(service)

	updated := make([]session.Message, 0, len(history)+2)
	updated = append(updated, history...)
	updated = append(updated,
		session.Message{Role: session.RoleUser, Content: message},
		session.Message{Role: session.RoleBot, Content: text},
	)
	updated = session.Trim(updated, s.historyPairs*2)

	// a dropped client must not lose the exchange
	if err := s.store.Put(context.WithoutCancel(ctx), id, updated); err != nil {
		s.log.Warn().Str("session_id", id).Err(err).Msg("failed to persist session")
	}

	s.telemetry.Record(telemetry.ChatAnswered{
		Service:       service,
		Local:         service == dispatch.ServiceName,
		HistoryLen:    len(history),
		ClientHistory: fromClient,
		Latency:       latency,
	})
	s.log.Debug().Str("session_id", id).Str("service", service).Int("history", len(updated)).Msg("chat answered")

	return Response{Text: text, SessionID: id, Service: service}, nil
}

// History returns the stored history for id; unknown sessions are empty.
func (s *Service) History(ctx context.Context, id string) ([]session.Message, error) {
	if id == "" {
		return []session.Message{}, nil
	}
	h, err := session.Load(ctx, s.store, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return h, nil
}

// Reset clears the history for id. An empty id is a no-op.
func (s *Service) Reset(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Reset(ctx, id); err != nil {
		return fmt.Errorf("reset session: %w", err)
	}
	return nil
}
