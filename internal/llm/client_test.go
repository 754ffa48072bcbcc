package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     Provider
		wantErr  bool
	}{
		{name: "valid anthropic", provider: "anthropic", want: ProviderAnthropic},
		{name: "valid gemini", provider: "gemini", want: ProviderGemini},
		{name: "valid openai", provider: "openai", want: ProviderOpenAI},
		{name: "valid ollama", provider: "ollama", want: ProviderOllama},
		{name: "invalid provider", provider: "invalid", wantErr: true},
		{name: "empty provider", provider: "", wantErr: true},
		{name: "case sensitive - OPENAI fails", provider: "OPENAI", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProvider(tt.provider)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultModelForProvider(t *testing.T) {
	tests := []struct {
		provider Provider
		want     string
	}{
		{ProviderAnthropic, "claude-sonnet-4-20250514"},
		{ProviderGemini, "gemini-2.0-flash"},
		{ProviderOpenAI, "gpt-4o-mini"},
		{ProviderOllama, "llama3.2"},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultModelForProvider(tt.provider))
		})
	}
}

func TestGetModel_Aliases(t *testing.T) {
	m := GetModel("claude-sonnet-4")
	require.NotNil(t, m)
	assert.Equal(t, "claude-sonnet-4-20250514", m.ID)
	assert.Equal(t, ProviderAnthropic, m.ProviderID)

	assert.Nil(t, GetModel("no-such-model"))
}

func TestRegistry_OneDefaultPerProvider(t *testing.T) {
	defaults := map[Provider]int{}
	for _, m := range ModelRegistry {
		if m.IsDefault {
			defaults[m.ProviderID]++
		}
	}
	for _, p := range DefaultProviderOrder {
		assert.Equal(t, 1, defaults[p], "provider %s", p)
	}
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "Claude AI (Sonnet 4)", ServiceName(ProviderAnthropic))
	assert.Equal(t, "Gemini AI", ServiceName(ProviderGemini))
	assert.Equal(t, "OpenAI GPT", ServiceName(ProviderOpenAI))
	assert.Equal(t, "custom", ServiceName("custom"))
}

func TestNewChatModel_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "openai requires API key",
			cfg:     Config{Provider: ProviderOpenAI, Model: "gpt-4o"},
			wantErr: "OpenAI API key is required",
		},
		{
			name:    "anthropic requires API key",
			cfg:     Config{Provider: ProviderAnthropic},
			wantErr: "anthropic API key is required",
		},
		{
			name:    "gemini requires API key",
			cfg:     Config{Provider: ProviderGemini},
			wantErr: "gemini API key is required",
		},
		{
			name:    "unsupported provider",
			cfg:     Config{Provider: "unknown", APIKey: "key"},
			wantErr: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChatModel(ctx, tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Provider: ProviderGemini}
	assert.Equal(t, "gemini-2.0-flash", cfg.model())
	assert.InDelta(t, DefaultTemperature, cfg.temperature(), 1e-6)
	assert.Equal(t, DefaultMaxTokens, cfg.maxTokens())

	cfg = Config{Provider: ProviderGemini, Model: "gemini-1.5-pro", Temperature: 0.2, MaxTokens: 100}
	assert.Equal(t, "gemini-1.5-pro", cfg.model())
	assert.InDelta(t, 0.2, cfg.temperature(), 1e-6)
	assert.Equal(t, 100, cfg.maxTokens())
}
