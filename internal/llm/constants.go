package llm

import "time"

// Provider constants
const (
	// ProviderAnthropic represents the Anthropic Claude provider
	ProviderAnthropic Provider = "anthropic"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini Provider = "gemini"

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI Provider = "openai"

	// ProviderOllama represents a local Ollama server
	ProviderOllama Provider = "ollama"
)

// DefaultProviderOrder is the order providers are tried in when several are configured.
var DefaultProviderOrder = []Provider{ProviderAnthropic, ProviderGemini, ProviderOpenAI, ProviderOllama}

// DefaultOllamaURL is the default URL for Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// Generation defaults.
const (
	DefaultTemperature   = 0.7
	DefaultMaxTokens     = 2048
	DefaultTimeout       = 30 * time.Second
	DefaultMaxIterations = 4
)

// ServiceName returns the display name of a provider, as reported to clients.
func ServiceName(p Provider) string {
	switch p {
	case ProviderAnthropic:
		return "Claude AI (Sonnet 4)"
	case ProviderGemini:
		return "Gemini AI"
	case ProviderOpenAI:
		return "OpenAI GPT"
	case ProviderOllama:
		return "Ollama (local)"
	default:
		return string(p)
	}
}
