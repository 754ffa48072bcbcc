package llm

// Model is a chat model the service knows how to call.
type Model struct {
	ID         string   // Canonical model ID
	ProviderID Provider // Internal provider ID
	Aliases    []string // Alternative IDs including dated versions
	IsDefault  bool     // Whether this is the default model for its provider
}

// ModelRegistry lists the supported chat models.
var ModelRegistry = []Model{
	{ID: "claude-sonnet-4-20250514", ProviderID: ProviderAnthropic, Aliases: []string{"claude-sonnet-4", "claude-sonnet-4-0"}, IsDefault: true},
	{ID: "claude-3-5-sonnet-20241022", ProviderID: ProviderAnthropic, Aliases: []string{"claude-3-5-sonnet-latest"}},
	{ID: "claude-3-5-haiku-20241022", ProviderID: ProviderAnthropic, Aliases: []string{"claude-3-5-haiku-latest"}},

	{ID: "gemini-2.0-flash", ProviderID: ProviderGemini, Aliases: []string{"gemini-2.0-flash-exp"}, IsDefault: true},
	{ID: "gemini-2.5-flash", ProviderID: ProviderGemini},
	{ID: "gemini-1.5-pro", ProviderID: ProviderGemini},

	{ID: "gpt-4o-mini", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4o-mini-2024-07-18"}, IsDefault: true},
	{ID: "gpt-4o", ProviderID: ProviderOpenAI},
	{ID: "gpt-4-turbo", ProviderID: ProviderOpenAI, Aliases: []string{"gpt-4-turbo-preview"}},

	{ID: "llama3.2", ProviderID: ProviderOllama, IsDefault: true},
}

var modelIndex map[string]*Model

func init() {
	modelIndex = make(map[string]*Model)
	for i := range ModelRegistry {
		m := &ModelRegistry[i]
		modelIndex[m.ID] = m
		for _, alias := range m.Aliases {
			modelIndex[alias] = m
		}
	}
}

// GetModel returns the model definition for a model ID or alias, or nil.
func GetModel(modelID string) *Model {
	return modelIndex[modelID]
}

// DefaultModelForProvider returns the default model ID for a provider.
func DefaultModelForProvider(providerID Provider) string {
	for _, m := range ModelRegistry {
		if m.ProviderID == providerID && m.IsDefault {
			return m.ID
		}
	}
	return ""
}
