package server

import (
	"github.com/zer3az/chatbot/internal/catalog"
	"github.com/zer3az/chatbot/internal/persona"
	"github.com/zer3az/chatbot/internal/session"
	"github.com/zer3az/chatbot/internal/tools"
)

type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// ChatRequest is the payload for /api/chat
type ChatRequest struct {
	Message             string            `json:"message"`
	SessionID           string            `json:"session_id,omitempty"`
	ConversationHistory []session.Message `json:"conversation_history,omitempty"`
}

// ChatResponse is the response for /api/chat
type ChatResponse struct {
	Response  string `json:"response"`
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Service   string `json:"service"`
}

// SessionRequest is the payload for /api/reset
type SessionRequest struct {
	SessionID string `json:"session_id,omitempty"`
}

type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type historyResponse struct {
	History []session.Message `json:"history"`
	Success bool              `json:"success"`
}

type greetingResponse struct {
	Greeting string `json:"greeting"`
	Success  bool   `json:"success"`
}

type configResponse struct {
	InitialGreeting string                  `json:"initial_greeting"`
	Personality     persona.Personality     `json:"personality"`
	PlatformContext persona.PlatformContext `json:"platform_context"`
}

type toolsResponse struct {
	Tools   []tools.Definition `json:"tools"`
	Success bool               `json:"success"`
}

// ToolRequest is the payload for /api/tool/{name}
type ToolRequest struct {
	Parameters map[string]any `json:"parameters"`
}

type toolResponse struct {
	Result  any  `json:"result"`
	Success bool `json:"success"`
}

// ReportRequest is the payload for /api/generate-report
type ReportRequest struct {
	PlantAID *int `json:"plant_a_id"`
	PlantBID *int `json:"plant_b_id"`
}

type reportResponse struct {
	Report   catalog.Report `json:"report"`
	ReportID string         `json:"report_id"`
	Success  bool           `json:"success"`
}

// HealthResponse is the response for /api/health
type HealthResponse struct {
	Status          string `json:"status"`
	Service         string `json:"service"`
	ClaudeAvailable bool   `json:"claude_available"`
	GeminiAvailable bool   `json:"gemini_available"`
	OpenAIAvailable bool   `json:"openai_available"`
	ActiveService   string `json:"active_service"`
}
