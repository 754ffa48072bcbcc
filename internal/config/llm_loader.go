package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/zer3az/chatbot/internal/llm"
)

// providerEnvVars lists the environment variables checked for each provider, in order.
var providerEnvVars = map[llm.Provider][]string{
	llm.ProviderAnthropic: {"ANTHROPIC_API_KEY"},
	llm.ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY", "CHATBOT_API_KEY"},
	llm.ProviderOpenAI:    {"OPENAI_API_KEY"},
}

// EnvVarsForProvider returns the environment variables consulted for a provider's key.
func EnvVarsForProvider(p llm.Provider) []string {
	return providerEnvVars[p]
}

// ResolveAPIKey returns the API key for a provider.
// Resolution order: llm.apiKeys.<provider> in v, then the provider's environment variables.
func ResolveAPIKey(v *viper.Viper, p llm.Provider) string {
	if key := strings.TrimSpace(v.GetString("llm.apiKeys." + string(p))); key != "" {
		return key
	}
	for _, env := range providerEnvVars[p] {
		if key := strings.TrimSpace(os.Getenv(env)); key != "" {
			return key
		}
	}
	return ""
}

// ChainConfig builds the provider chain settings from the config.
// Providers are ordered Claude, Gemini, OpenAI, Ollama regardless of how they were listed.
func (c *AppConfig) ChainConfig(v *viper.Viper) llm.ChainConfig {
	wanted := make(map[llm.Provider]bool, len(c.LLM.Providers))
	for _, name := range c.LLM.Providers {
		if p, err := llm.ValidateProvider(name); err == nil {
			wanted[p] = true
		}
	}

	cc := llm.ChainConfig{
		Timeout:       c.LLM.Timeout,
		MaxIterations: c.LLM.MaxIterations,
		EnableTools:   c.LLM.EnableTools,
	}
	for _, p := range llm.DefaultProviderOrder {
		if !wanted[p] {
			continue
		}
		pc := llm.Config{
			Provider:    p,
			Model:       c.LLM.Models[string(p)],
			APIKey:      ResolveAPIKey(v, p),
			Temperature: c.LLM.Temperature,
			MaxTokens:   c.LLM.MaxTokens,
		}
		if p == llm.ProviderOllama {
			pc.BaseURL = c.LLM.OllamaURL
		}
		cc.Providers = append(cc.Providers, pc)
	}
	return cc
}
