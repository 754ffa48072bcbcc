// Package server exposes the chatbot over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/chat"
	"github.com/zer3az/chatbot/internal/llm"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/persona"
	"github.com/zer3az/chatbot/internal/telemetry"
	"github.com/zer3az/chatbot/internal/tools"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Zer3aZ Chatbot API"

// Status reports which AI services are configured. *llm.Chain implements it.
type Status interface {
	Available(p llm.Provider) bool
	ActiveService() string
}

// Config holds the HTTP settings.
type Config struct {
	Port           int
	AllowedOrigins []string
	RateLimit      float64 // requests per second per client IP on /api/chat, 0 disables
	RateBurst      int
	AuthToken      string
	RequestTimeout time.Duration
}

// Deps are the components the handlers serve.
type Deps struct {
	Chat      *chat.Service
	Tools     *tools.Table
	Catalog   *catalog.Catalog
	Persona   *persona.Persona
	Status    Status
	Logger    *logger.Logger
	Telemetry telemetry.Client
}

type Server struct {
	cfg       Config
	chat      *chat.Service
	tools     *tools.Table
	catalog   *catalog.Catalog
	persona   *persona.Persona
	status    Status
	log       *logger.Logger
	telemetry telemetry.Client
	origins   map[string]struct{}
	limiter   *ipLimiter
	server    *http.Server
}

func New(cfg Config, deps Deps) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		cfg:       cfg,
		chat:      deps.Chat,
		tools:     deps.Tools,
		catalog:   deps.Catalog,
		persona:   deps.Persona,
		status:    deps.Status,
		log:       deps.Logger,
		telemetry: deps.Telemetry,
		origins:   make(map[string]struct{}, len(cfg.AllowedOrigins)),
	}
	if s.persona == nil {
		s.persona = persona.Default()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.telemetry == nil {
		s.telemetry = telemetry.Nop{}
	}
	for _, o := range cfg.AllowedOrigins {
		s.origins[o] = struct{}{}
	}
	if cfg.RateLimit > 0 {
		s.limiter = newIPLimiter(cfg.RateLimit, cfg.RateBurst)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.log.Info().Str("addr", s.server.Addr).Msg("API server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeAPIJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, status int, msg string) {
	writeAPIJSON(w, status, errorResponse{Error: msg, Success: false})
}
