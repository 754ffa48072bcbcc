package telemetry

import "time"

// Event names as they appear in PostHog.
const (
	EventServerStarted   = "server_started"
	EventChatAnswered    = "chat_answered"
	EventToolExecuted    = "tool_executed"
	EventReportGenerated = "report_generated"
)

// Answer sources.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// Properties are the event fields sent alongside an event name.
type Properties = map[string]any

// Event is one anonymous usage record. Message text, search queries and API keys are never part of one.
type Event interface {
	Name() string
	Properties() Properties
}

// ChatAnswered is recorded after every answered chat message.
type ChatAnswered struct {
	Service string
	// Local is set when the built-in plant engine answered instead of a provider.
	Local         bool
	HistoryLen    int
	ClientHistory bool
	Latency       time.Duration
}

func (ChatAnswered) Name() string { return EventChatAnswered }

func (e ChatAnswered) Properties() Properties {
	source := SourceRemote
	if e.Local {
		source = SourceLocal
	}
	return Properties{
		"service":        e.Service,
		"source":         source,
		"history_length": e.HistoryLen,
		"client_history": e.ClientHistory,
		"latency_ms":     e.Latency.Milliseconds(),
	}
}

// ToolExecuted is recorded when a plant tool runs outside a model turn.
type ToolExecuted struct {
	Tool      string
	Transport string // "http" or "mcp"
	Failed    bool
}

func (ToolExecuted) Name() string { return EventToolExecuted }

func (e ToolExecuted) Properties() Properties {
	return Properties{"tool": e.Tool, "transport": e.Transport, "failed": e.Failed}
}

// ReportGenerated is recorded for each breeding report.
type ReportGenerated struct {
	PlantA, PlantB int
}

func (ReportGenerated) Name() string { return EventReportGenerated }

func (e ReportGenerated) Properties() Properties {
	return Properties{"plant_a_id": e.PlantA, "plant_b_id": e.PlantB}
}

// ServerStarted is recorded once per `zer3az serve`.
type ServerStarted struct {
	ActiveService  string
	Providers      int
	SessionBackend string
	AuthEnabled    bool
}

func (ServerStarted) Name() string { return EventServerStarted }

func (e ServerStarted) Properties() Properties {
	return Properties{
		"active_service":  e.ActiveService,
		"providers":       e.Providers,
		"session_backend": e.SessionBackend,
		"auth_enabled":    e.AuthEnabled,
	}
}
