package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/zer3az/chatbot/internal/llm"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, vars := range providerEnvVars {
		for _, env := range vars {
			t.Setenv(env, "")
		}
	}
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
		config   string
		env      map[string]string
		want     string
	}{
		{
			name:     "config wins over env",
			provider: llm.ProviderAnthropic,
			config:   "sk-ant-config",
			env:      map[string]string{"ANTHROPIC_API_KEY": "sk-ant-env"},
			want:     "sk-ant-config",
		},
		{
			name:     "env used when config empty",
			provider: llm.ProviderOpenAI,
			env:      map[string]string{"OPENAI_API_KEY": "sk-env"},
			want:     "sk-env",
		},
		{
			name:     "gemini prefers GEMINI_API_KEY",
			provider: llm.ProviderGemini,
			env:      map[string]string{"GEMINI_API_KEY": "g1", "GOOGLE_API_KEY": "g2", "CHATBOT_API_KEY": "g3"},
			want:     "g1",
		},
		{
			name:     "gemini falls back to CHATBOT_API_KEY",
			provider: llm.ProviderGemini,
			env:      map[string]string{"CHATBOT_API_KEY": "g3"},
			want:     "g3",
		},
		{
			name:     "whitespace is trimmed",
			provider: llm.ProviderOpenAI,
			env:      map[string]string{"OPENAI_API_KEY": "  sk-pad  "},
			want:     "sk-pad",
		},
		{
			name:     "ollama needs nothing",
			provider: llm.ProviderOllama,
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeyEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			v := viper.New()
			if tt.config != "" {
				v.Set("llm.apiKeys."+string(tt.provider), tt.config)
			}
			assert.Equal(t, tt.want, ResolveAPIKey(v, tt.provider))
		})
	}
}

func TestEnvVarsForProvider(t *testing.T) {
	assert.Equal(t, []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "CHATBOT_API_KEY"}, EnvVarsForProvider(llm.ProviderGemini))
	assert.Nil(t, EnvVarsForProvider(llm.ProviderOllama))
}
