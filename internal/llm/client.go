// Package llm connects the chatbot to remote chat models through CloudWeGo Eino.
package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Provider identifies the LLM provider to use.
type Provider string

// Config holds configuration for creating a chat model.
type Config struct {
	Provider    Provider
	Model       string  // Chat model; empty selects the provider default
	APIKey      string  // Required for every provider except Ollama
	BaseURL     string  // Ollama server (default: http://localhost:11434)
	Temperature float32 // 0 selects DefaultTemperature
	MaxTokens   int     // 0 selects DefaultMaxTokens
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModelForProvider(c.Provider)
}

func (c Config) temperature() float32 {
	if c.Temperature > 0 {
		return c.Temperature
	}
	return DefaultTemperature
}

func (c Config) maxTokens() int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return DefaultMaxTokens
}

// NewChatModel creates a ChatModel instance based on the provider configuration.
// The returned model accepts tools through model.WithTools.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	temperature := cfg.temperature()
	maxTokens := cfg.maxTokens()

	switch cfg.Provider {
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.model(),
			MaxTokens:   maxTokens,
			Temperature: &temperature,
		})

	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       cfg.model(),
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.model(),
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})

	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.model(),
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s (supported: anthropic, gemini, openai, ollama)", cfg.Provider)
	}
}

// ValidateProvider checks if the given provider string is supported.
func ValidateProvider(p string) (Provider, error) {
	switch Provider(p) {
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderOllama:
		return ProviderOllama, nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", p)
	}
}

// NeedsAPIKey reports whether the provider requires credentials.
func NeedsAPIKey(p Provider) bool {
	return p != ProviderOllama
}
