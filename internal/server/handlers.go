package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/chat"
	"github.com/zer3az/chatbot/internal/llm"
	"github.com/zer3az/chatbot/internal/logger"
	"github.com/zer3az/chatbot/internal/session"
	"github.com/zer3az/chatbot/internal/telemetry"
	"github.com/zer3az/chatbot/internal/tools"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// handleChat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeBody(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	log := logger.FromContext(r.Context())
	resp, err := s.chat.Chat(r.Context(), chat.Request{
		Message:   req.Message,
		SessionID: req.SessionID,
		History:   req.ConversationHistory,
	})
	if errors.Is(err, chat.ErrEmptyMessage) {
		writeAPIError(w, http.StatusBadRequest, s.persona.Errors.MessageRequired)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("chat failed")
		writeAPIError(w, http.StatusInternalServerError, s.persona.Errors.Internal)
		return
	}

	writeAPIJSON(w, http.StatusOK, ChatResponse{
		Response:  resp.Text,
		Success:   true,
		SessionID: resp.SessionID,
		Service:   resp.Service,
	})
}

// handleReset
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.chat.Reset(r.Context(), req.SessionID); err != nil {
		s.log.Error().Str("session_id", req.SessionID).Err(err).Msg("reset failed")
		writeAPIError(w, http.StatusInternalServerError, s.persona.Errors.Internal)
		return
	}
	writeAPIJSON(w, http.StatusOK, resetResponse{Success: true, Message: s.persona.Messages.Reset})
}

// handleHistory
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	history, err := s.chat.History(r.Context(), id)
	if err != nil {
		s.log.Error().Str("session_id", id).Err(err).Msg("history failed")
		writeAPIError(w, http.StatusInternalServerError, s.persona.Errors.Internal)
		return
	}
	if history == nil {
		history = []session.Message{}
	}
	writeAPIJSON(w, http.StatusOK, historyResponse{History: history, Success: true})
}

// handleGreeting
func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, greetingResponse{Greeting: s.persona.InitialGreeting, Success: true})
}

// handleConfig
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, configResponse{
		InitialGreeting: s.persona.InitialGreeting,
		Personality:     s.persona.Personality,
		PlatformContext: s.persona.PlatformContext,
	})
}

// handleListTools
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, toolsResponse{Tools: s.tools.Definitions(), Success: true})
}

// handleExecuteTool
func (s *Server) handleExecuteTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := s.tools.Lookup(name); !ok {
		writeAPIError(w, http.StatusNotFound, s.persona.ToolNotFound(name))
		return
	}

	var req ToolRequest
	if err := decodeBody(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.tools.Execute(r.Context(), name, req.Parameters)
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		writeAPIError(w, http.StatusNotFound, s.persona.ToolNotFound(name))
		return
	case errors.Is(err, tools.ErrInvalidParams):
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, catalog.ErrPlantNotFound):
		writeAPIError(w, http.StatusNotFound, s.persona.Errors.PlantNotFound)
		return
	case err != nil:
		logger.FromContext(r.Context()).Error().Str("tool", name).Err(err).Msg("tool failed")
		writeAPIError(w, http.StatusInternalServerError, s.persona.Errors.Internal)
		return
	}

	s.telemetry.Record(telemetry.ToolExecuted{Tool: name, Transport: "http"})
	writeAPIJSON(w, http.StatusOK, toolResponse{Result: result, Success: true})
}

// handleGenerateReport
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := decodeBody(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PlantAID == nil || req.PlantBID == nil {
		writeAPIError(w, http.StatusBadRequest, s.persona.Errors.ReportIDsRequired)
		return
	}

	a, okA := s.catalog.PlantByID(*req.PlantAID)
	b, okB := s.catalog.PlantByID(*req.PlantBID)
	if !okA || !okB {
		writeAPIError(w, http.StatusNotFound, s.persona.Errors.PlantNotFound)
		return
	}

	report := catalog.DetailedReport(a, b)
	s.telemetry.Record(telemetry.ReportGenerated{PlantA: a.ID, PlantB: b.ID})
	writeAPIJSON(w, http.StatusOK, reportResponse{
		Report:   report,
		ReportID: ulid.Make().String(),
		Success:  true,
	})
}

// handleHealth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Service: ServiceName}
	if s.status != nil {
		resp.ClaudeAvailable = s.status.Available(llm.ProviderAnthropic)
		resp.GeminiAvailable = s.status.Available(llm.ProviderGemini)
		resp.OpenAIAvailable = s.status.Available(llm.ProviderOpenAI)
		resp.ActiveService = s.status.ActiveService()
	}
	writeAPIJSON(w, http.StatusOK, resp)
}
